// Copyright 2025 Vitor Carvalho. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/lightningspirit/wp-redirects/blob/master/LICENSE.txt.

package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	redirects "github.com/lightningspirit/wp-redirects"
)

func newExportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export the stored rules as JSON",
		Long:  "Export the stored rules as JSON to the given file, or to stdout when the file is omitted or \"-\".",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store()
			if err != nil {
				return err
			}
			rules, err := store.Rules()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Create(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}
			return writeRulesJSON(out, rules)
		},
	}
	return cmd
}

func writeRulesJSON(w io.Writer, rules []redirects.Rule) error {
	if rules == nil {
		rules = []redirects.Rule{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(rules)
}
