package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/TimXiedada/wikifur-persons-template-bot/internal/config"
	"github.com/spf13/cobra"
)

//go:embed templates/personsbot.yaml
var configTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new personsbot configuration file",
		Long: `Initialize creates a new .personsbot configuration file in the current directory.

The generated file includes:
- The API endpoint and source categories of the Chinese WikiFur
- Template and publishing settings with their defaults
- A commented credentials section for the bot password

Examples:
  # Create .personsbot in current directory
  personsbot init

  # Create config file at a specific path
  personsbot init -o ~/.config/personsbot/config.yaml

  # Force overwrite existing file
  personsbot init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile("templates/personsbot.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// The file may hold the bot password.
	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to configure:")
	fmt.Fprintln(out, "  - The bot password used by --send")
	fmt.Fprintln(out, "  - The template page and group size")
	fmt.Fprintf(out, "  - Or set %s and %s instead of storing credentials\n", config.EnvUsername, config.EnvPassword)

	return nil
}
