package main

import (
	"fmt"
	"os"

	"github.com/TimXiedada/wikifur-persons-template-bot/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command. Running it without a subcommand
// generates the template.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "personsbot",
		Short: "Generate and publish the WikiFur persons template",
		Long: `personsbot rebuilds the persons navigation template (模板:人物) of the
Chinese WikiFur.

It lists every page in the person category and the deceased category,
romanizes the titles with Hanyu Pinyin and a kana table, buckets them by
first letter and splits the buckets into balanced groups of at most
--max-group-size entries. The result is a {{Navbox}} template.

By default the template is printed to stdout. --dry-run prints a unified
diff against the live page instead, and --send publishes it, retrying on
edit conflicts.

Examples:
  # Print the generated template
  personsbot

  # Show what would change on the wiki
  personsbot --dry-run

  # Publish with a custom summary
  personsbot --send --summary "按月更新"

  # Write a Markdown summary of the grouping
  personsbot --report run.md

Credentials are read from the configuration file (.personsbot) or from the
` + config.EnvUsername + ` and ` + config.EnvPassword + ` environment variables.`,
		Version:       getVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGenerateCmd,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false,
		"Only log warnings and errors")

	addGenerateFlags(cmd)

	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
