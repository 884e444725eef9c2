package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ChamsBouzaiene/couch/internal/config"
	"github.com/ChamsBouzaiene/couch/internal/logging"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and edit couch configuration",
	}

	configCmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file location",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				m, err := configManager(opts.configPath)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), m.GetConfigPath())
				return err
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Store a setting in the config file (an empty value removes it)",
			Example: `  couch config set username Sam
  couch config set llm_provider anthropic`,
			Args: cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := configManager(opts.configPath)
				if err != nil {
					return err
				}
				if err := m.Set(args[0], args[1]); err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s updated in %s\n", args[0], m.GetConfigPath())
				return err
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective settings with the API key redacted",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if _, err := loadConfig(opts.configPath, commandLogger(cmd, opts)); err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(config.Effective().Redacted())
			},
		},
	)

	return configCmd
}

func commandLogger(cmd *cobra.Command, opts *rootOptions) *slog.Logger {
	return logging.New(logging.Options{
		Writer:  cmd.ErrOrStderr(),
		Verbose: opts.verbose,
		NoColor: opts.noColor,
	})
}
