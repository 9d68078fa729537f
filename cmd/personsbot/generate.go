package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/TimXiedada/wikifur-persons-template-bot/internal/config"
	"github.com/TimXiedada/wikifur-persons-template-bot/internal/log"
	"github.com/TimXiedada/wikifur-persons-template-bot/internal/model"
	"github.com/TimXiedada/wikifur-persons-template-bot/internal/partition"
	"github.com/TimXiedada/wikifur-persons-template-bot/internal/pipeline"
	"github.com/TimXiedada/wikifur-persons-template-bot/internal/publish"
	"github.com/TimXiedada/wikifur-persons-template-bot/internal/report"
	"github.com/TimXiedada/wikifur-persons-template-bot/internal/romanize"
	"github.com/TimXiedada/wikifur-persons-template-bot/internal/wiki"
	"github.com/spf13/cobra"
)

// addGenerateFlags registers the flags of the generation run.
func addGenerateFlags(cmd *cobra.Command) {
	// Output mode flags
	cmd.Flags().Bool("send", false,
		"Publish the template to the wiki (default: print it to stdout)")
	cmd.Flags().Bool("dry-run", false,
		"Show the diff against the current page without publishing")

	// Template flags
	cmd.Flags().String("page", config.DefaultPage,
		"Title of the template page")
	cmd.Flags().String("summary", "",
		"Edit summary (default: "+publish.DefaultSummary+")")
	cmd.Flags().Int("max-group-size", config.DefaultMaxGroupSize,
		"Maximum number of entries in one template group")

	// Site flags
	cmd.Flags().String("api", config.DefaultAPIEndpoint,
		"URL of the wiki's api.php")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .personsbot in current or home directory)")

	// Output flags
	cmd.Flags().String("report", "",
		"Write a run summary to the given file (.md, .json or text)")
	cmd.Flags().Bool("log-json", false,
		"Write logs as JSON")
}

// runGenerateCmd executes the generation run.
func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	cfg, path, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	logJSON, err := cmd.Flags().GetBool("log-json")
	if err != nil {
		return err
	}
	logger := setupLogger(cmd.ErrOrStderr(), cfg, logJSON)
	slog.SetDefault(logger)
	if path != "" {
		logger.Debug("loaded configuration file", "path", path)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runGenerate(ctx, cfg, logger, cmd.OutOrStdout())
}

// buildConfig loads the configuration file and the environment, then
// overlays every flag the user set explicitly.
func buildConfig(cmd *cobra.Command) (*config.Config, string, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", err
	}

	cfg, path, err := config.Load(configPath, os.Getenv)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, "", fmt.Errorf("%w: %s", err, configPath)
		}
		return nil, "", fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	flags := cmd.Flags()
	if flags.Changed("page") {
		if cfg.Page, err = flags.GetString("page"); err != nil {
			return nil, "", err
		}
	}
	if flags.Changed("summary") {
		if cfg.Summary, err = flags.GetString("summary"); err != nil {
			return nil, "", err
		}
	}
	if flags.Changed("max-group-size") {
		if cfg.MaxGroupSize, err = flags.GetInt("max-group-size"); err != nil {
			return nil, "", err
		}
	}
	if flags.Changed("api") {
		if cfg.APIEndpoint, err = flags.GetString("api"); err != nil {
			return nil, "", err
		}
	}

	if cfg.Send, err = flags.GetBool("send"); err != nil {
		return nil, "", err
	}
	if cfg.DryRun, err = flags.GetBool("dry-run"); err != nil {
		return nil, "", err
	}
	if cfg.ReportFile, err = flags.GetString("report"); err != nil {
		return nil, "", err
	}
	if cfg.Verbose, err = flags.GetBool("verbose"); err != nil {
		return nil, "", err
	}
	if cfg.Quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, "", err
	}

	return cfg, path, nil
}

// setupLogger creates the redacting logger for the configured verbosity.
func setupLogger(w io.Writer, cfg *config.Config, jsonOutput bool) *slog.Logger {
	level := log.LevelFor(cfg.Verbose, cfg.Quiet)
	if jsonOutput {
		return log.NewSecureJSONLogger(w, level)
	}
	return log.NewSecureLogger(w, level)
}

// runGenerate builds the template and prints, diffs or publishes it.
func runGenerate(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer) error {
	logger.Info("connecting to wiki", "api", cfg.APIEndpoint)
	client, err := wiki.New(cfg.APIEndpoint,
		wiki.WithUserAgent(cfg.UserAgent),
		wiki.WithTimeout(cfg.Timeout),
		wiki.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create wiki client: %w", err)
	}

	info, err := client.SiteInfo(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to wiki: %w", err)
	}
	logger.Info("connected", "site", info.Name, "generator", info.Generator)

	if cfg.HasCredentials() {
		if err := client.Login(ctx, cfg.Username, cfg.Password); err != nil {
			return fmt.Errorf("failed to connect to wiki: %w", err)
		}
		logger.Info("logged in", "user", cfg.Username)
	} else {
		logger.Debug("no credentials configured, reading anonymously")
	}

	romanizer, err := romanize.New()
	if err != nil {
		return fmt.Errorf("failed to load romanizer: %w", err)
	}
	partitioner := partition.New(cfg.MaxGroupSize, partition.WithLogger(logger))

	run := model.NewRun(cfg.PrimaryCategory, cfg.DeceasedCategory)
	p := pipeline.Default(client, romanizer, partitioner, pipeline.WithLogger(logger))
	if err := p.Execute(ctx, run); err != nil {
		return fmt.Errorf("failed to generate template: %w", err)
	}
	logger.Info("template generated",
		"records", len(run.Records),
		"groups", len(run.Plan.Groups),
		"variance", run.Plan.Variance,
	)

	if cfg.ReportFile != "" {
		if err := writeReport(cfg.ReportFile, run); err != nil {
			return err
		}
		logger.Info("run summary written", "path", cfg.ReportFile)
	}

	if cfg.DryRun && cfg.Send {
		logger.Warn("--dry-run and --send both given, ignoring --dry-run and publishing")
	}

	switch {
	case cfg.Send:
		return publishTemplate(ctx, cfg, client, run.Rendered, logger)
	case cfg.DryRun:
		return showDiff(ctx, client, cfg.Page, run.Rendered, out, logger)
	default:
		logger.Debug("printing template to stdout")
		_, err := fmt.Fprintln(out, run.Rendered)
		return err
	}
}

// showDiff prints a unified diff from the live page to the generated template.
func showDiff(ctx context.Context, client *wiki.Client, title, text string, out io.Writer, logger *slog.Logger) error {
	logger.Info("reading current page", "page", title)
	page, err := client.ReadPage(ctx, title)
	if err != nil {
		return fmt.Errorf("failed to read current page: %w", err)
	}

	changed, err := report.WriteUnifiedDiff(out, page.Text, text)
	if err != nil {
		return fmt.Errorf("failed to write diff: %w", err)
	}
	if !changed {
		logger.Info("current page matches the generated template, no update needed", "page", title)
	}
	return nil
}

// publishTemplate pushes the template, retrying on edit conflicts.
func publishTemplate(ctx context.Context, cfg *config.Config, client *wiki.Client, text string, logger *slog.Logger) error {
	policy := publish.DefaultRetryPolicy()
	policy.MaxAttempts = cfg.MaxAttempts

	publisher := publish.New(client,
		publish.WithRetryPolicy(policy),
		publish.WithBotFlag(cfg.BotEdit),
		publish.WithLogger(logger),
	)

	logger.Info("publishing template", "page", cfg.Page)
	outcome, err := publisher.Publish(ctx, text, cfg.Page, cfg.Summary)
	if err != nil {
		return fmt.Errorf("failed to publish template: %w", err)
	}
	logger.Info("publish finished", "page", cfg.Page, "outcome", outcome)
	return nil
}

// writeReport writes the run summary in the format chosen by the file extension.
func writeReport(path string, run *model.Run) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided report path is intentional
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if _, err := report.NewWriter(report.FormatForPath(path), f).Write(run); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
