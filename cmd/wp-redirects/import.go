// Copyright 2025 Vitor Carvalho. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/lightningspirit/wp-redirects/blob/master/LICENSE.txt.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	redirects "github.com/lightningspirit/wp-redirects"
)

func newImportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Replace the stored rules with a JSON document",
		Long: "Replace the stored rules with the JSON array read from the given file, or from stdin " +
			"when the file is omitted or \"-\". A document containing any invalid rule is rejected " +
			"without touching the store.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			rules, err := decodeRules(in)
			if err != nil {
				return err
			}

			store, err := a.store()
			if err != nil {
				return err
			}
			if err := store.Replace(rules); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported %d rule(s)\n", len(rules))
			return nil
		},
	}
	return cmd
}

func decodeRules(r io.Reader) ([]redirects.Rule, error) {
	var rules []redirects.Rule
	dec := json.NewDecoder(r)
	if err := dec.Decode(&rules); err != nil {
		return nil, fmt.Errorf("decoding rules: %w", err)
	}
	return rules, nil
}
