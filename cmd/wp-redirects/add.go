// Copyright 2025 Vitor Carvalho. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/lightningspirit/wp-redirects/blob/master/LICENSE.txt.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	redirects "github.com/lightningspirit/wp-redirects"
)

func newAddCmd(a *app) *cobra.Command {
	var status int

	cmd := &cobra.Command{
		Use:   "add <from> <to>",
		Short: "Add a redirect rule to the store",
		Long: "Add a redirect rule to the store. The source may contain * wildcards and the " +
			"target may reference their captures as $1..$n. A later rule with the same source " +
			"takes precedence over earlier ones.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rule, err := redirects.NewRule(args[0], args[1], status)
			if err != nil {
				return err
			}

			store, err := a.store()
			if err != nil {
				return err
			}
			if err := store.Update(func(rules []redirects.Rule) ([]redirects.Rule, error) {
				return append(rules, rule), nil
			}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", rule)
			return nil
		},
	}

	cmd.Flags().IntVar(&status, "type", redirects.StatusMovedPermanently, "redirect status code")
	return cmd
}
