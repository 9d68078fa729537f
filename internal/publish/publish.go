package publish

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/TimXiedada/wikifur-persons-template-bot/internal/wiki"
)

// DefaultSummary is the edit summary used when none is given.
const DefaultSummary = "更新人物模板（自动生成）"

// ErrAttemptsExhausted is returned when every attempt hit a retryable error.
var ErrAttemptsExhausted = errors.New("publish attempts exhausted")

// Outcome is the result of a successful publish.
type Outcome int

const (
	// OutcomeUnchanged means the page already held the text.
	OutcomeUnchanged Outcome = iota

	// OutcomeUpdated means the page was edited.
	OutcomeUpdated
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeUpdated:
		return "updated"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// PageEditor reads and edits wiki pages. *wiki.Client satisfies it.
type PageEditor interface {
	ReadPage(ctx context.Context, title string) (*wiki.Page, error)
	Edit(ctx context.Context, req wiki.EditRequest) error
}

// RetryPolicy decides how often and how long to retry a failed edit.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// Backoff returns the wait after the given failed attempt (0-based).
	Backoff func(attempt int) time.Duration

	// Retryable reports whether an error is worth another attempt.
	Retryable func(err error) bool
}

// DefaultRetryPolicy retries edit conflicts up to three attempts in total,
// waiting 1s, then 2s, between them.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Backoff:     ExponentialBackoff,
		Retryable: func(err error) bool {
			return errors.Is(err, wiki.ErrEditConflict)
		},
	}
}

// ExponentialBackoff waits 2^attempt seconds.
func ExponentialBackoff(attempt int) time.Duration {
	return time.Duration(math.Pow(2, float64(attempt))) * time.Second
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Publisher writes text to wiki pages.
type Publisher struct {
	editor PageEditor
	policy RetryPolicy
	sleep  SleepFunc
	logger *slog.Logger
	bot    bool
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithRetryPolicy replaces the default retry policy.
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(p *Publisher) {
		p.policy = policy
	}
}

// WithSleep replaces the function used to wait between attempts.
func WithSleep(sleep SleepFunc) Option {
	return func(p *Publisher) {
		p.sleep = sleep
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithBotFlag marks edits as bot edits.
func WithBotFlag(bot bool) Option {
	return func(p *Publisher) {
		p.bot = bot
	}
}

// New creates a Publisher writing through editor.
func New(editor PageEditor, opts ...Option) *Publisher {
	p := &Publisher{
		editor: editor,
		policy: DefaultRetryPolicy(),
		sleep:  sleepContext,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.policy.MaxAttempts < 1 {
		p.policy.MaxAttempts = 1
	}
	return p
}

// Publish saves text to the page title. An empty summary selects
// DefaultSummary. Every attempt rereads the page, so a retry after a
// conflict edits against the newest revision.
func (p *Publisher) Publish(ctx context.Context, text, title, summary string) (Outcome, error) {
	if summary == "" {
		summary = DefaultSummary
	}

	var lastErr error
	for attempt := range p.policy.MaxAttempts {
		outcome, err := p.attempt(ctx, text, title, summary)
		if err == nil {
			return outcome, nil
		}
		lastErr = err

		if p.policy.Retryable == nil || !p.policy.Retryable(err) {
			return 0, err
		}
		if attempt == p.policy.MaxAttempts-1 {
			break
		}

		var wait time.Duration
		if p.policy.Backoff != nil {
			wait = p.policy.Backoff(attempt)
		}
		p.logger.Warn("edit conflict, retrying",
			"page", title,
			"wait", wait,
			"attempt", attempt+1,
			"max_attempts", p.policy.MaxAttempts,
		)
		if err := p.sleep(ctx, wait); err != nil {
			return 0, fmt.Errorf("publish %s interrupted: %w", title, err)
		}
	}

	return 0, fmt.Errorf("%w after %d attempts: %w", ErrAttemptsExhausted, p.policy.MaxAttempts, lastErr)
}

func (p *Publisher) attempt(ctx context.Context, text, title, summary string) (Outcome, error) {
	p.logger.Debug("reading current page", "page", title)
	page, err := p.editor.ReadPage(ctx, title)
	if err != nil {
		return 0, err
	}
	if page.Exists && page.Text == text {
		p.logger.Info("page content unchanged, nothing to update", "page", title)
		return OutcomeUnchanged, nil
	}

	p.logger.Info("pushing new content", "page", title, "bytes", len(text))
	err = p.editor.Edit(ctx, wiki.EditRequest{
		Title:          title,
		Text:           text,
		Summary:        summary,
		BaseTimestamp:  page.Timestamp,
		StartTimestamp: page.StartTimestamp,
		Bot:            p.bot,
	})
	if err != nil {
		return 0, err
	}

	p.logger.Info("page updated", "page", title)
	return OutcomeUpdated, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
