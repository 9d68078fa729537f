package romanize

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
	"golang.org/x/text/width"

	"github.com/TimXiedada/wikifur-persons-template-bot/internal/model"
)

// Romanizer converts titles to their romanized form.
// It holds no mutable state and is safe for concurrent use.
type Romanizer struct {
	args pinyin.Args
	kana KanaTable
}

// Option configures a Romanizer.
type Option func(*Romanizer)

// WithKanaTable replaces the embedded kana table.
func WithKanaTable(table KanaTable) Option {
	return func(r *Romanizer) {
		r.kana = table
	}
}

// New creates a Romanizer backed by the embedded kana table.
func New(opts ...Option) (*Romanizer, error) {
	args := pinyin.NewArgs()
	args.Style = pinyin.Normal
	// Han characters missing from the pinyin dictionary are kept as is.
	args.Fallback = func(r rune, _ pinyin.Args) []string {
		return []string{string(r)}
	}

	r := &Romanizer{args: args}
	for _, opt := range opts {
		opt(r)
	}

	if r.kana == nil {
		table, err := DefaultKanaTable()
		if err != nil {
			return nil, err
		}
		r.kana = table
	}
	return r, nil
}

// Romanize returns the romanized form of title. Syllables are concatenated
// without separators, e.g. "小明" becomes "xiaoming" and "さくら" becomes "sakura".
func (r *Romanizer) Romanize(title string) string {
	runes := []rune(width.Fold.String(title))

	var b strings.Builder
	for i := 0; i < len(runes); {
		if unicode.Is(unicode.Han, runes[i]) {
			j := i
			for j < len(runes) && unicode.Is(unicode.Han, runes[j]) {
				j++
			}
			for _, syllable := range pinyin.LazyPinyin(string(runes[i:j]), r.args) {
				b.WriteString(syllable)
			}
			i = j
			continue
		}

		if romaji, n, ok := r.kana.lookup(runes[i:]); ok {
			b.WriteString(romaji)
			i += n
			continue
		}

		b.WriteRune(runes[i])
		i++
	}
	return b.String()
}

// RomanizeRecords romanizes every record, preserving order.
func (r *Romanizer) RomanizeRecords(records []model.PageRecord) []model.RomanizedRecord {
	out := make([]model.RomanizedRecord, len(records))
	for i, rec := range records {
		out[i] = model.NewRomanizedRecord(rec, r.Romanize(rec.Title))
	}
	return out
}
