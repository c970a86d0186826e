// Copyright 2025 Vitor Carvalho. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/lightningspirit/wp-redirects/blob/master/LICENSE.txt.

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lightningspirit/wp-redirects/internal/slogpretty"
	"github.com/lightningspirit/wp-redirects/rulestore"
)

// app carries the resolved configuration and logger shared by all commands.
type app struct {
	cfg Config
	log *slog.Logger
}

func (a *app) store() (*rulestore.File, error) {
	return rulestore.NewFile(a.cfg.Rules, rulestore.WithLogHandler(a.log.Handler()))
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile   string
		rulesPath string
		verbosity int
		logJSON   bool
	)

	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "wp-redirects",
		Short: "Manage and serve path redirect rules",
		Long: `wp-redirects resolves request paths against an ordered list of redirect
rules. Source patterns may contain "*" wildcards whose matched segments are
substituted into the target as $1, $2, and so on. Rules are kept in a JSON
file that can be edited from the command line or over the administrative
HTTP endpoint of the serve command.`,
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgFile)
			if err != nil {
				return err
			}
			if rulesPath != "" {
				cfg.Rules = rulesPath
			}
			a.cfg = cfg

			errw := cmd.ErrOrStderr()
			var handler slog.Handler
			if logJSON {
				handler = slog.NewJSONHandler(errw, &slog.HandlerOptions{Level: verbosityLevel(verbosity)})
			} else {
				handler = slogpretty.New(errw, errw, verbosityLevel(verbosity))
			}
			a.log = slog.New(handler)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/wp-redirects/config.toml)")
	rootCmd.PersistentFlags().StringVar(&rulesPath, "rules", "", "rule collection file (default is $XDG_DATA_HOME/wp-redirects/rules.json)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "emit logs as JSON instead of pretty text")

	rootCmd.AddCommand(
		newListCmd(a),
		newAddCmd(a),
		newDeleteCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newTestCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)

	return rootCmd
}

func verbosityLevel(verbosity int) slog.Level {
	switch verbosity {
	case 0:
		return slog.LevelWarn
	case 1:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
