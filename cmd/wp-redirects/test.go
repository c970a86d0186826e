// Copyright 2025 Vitor Carvalho. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/lightningspirit/wp-redirects/blob/master/LICENSE.txt.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	redirects "github.com/lightningspirit/wp-redirects"
)

func newTestCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test <url>",
		Short: "Resolve a URL against the stored rules without serving",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store()
			if err != nil {
				return err
			}
			rules, err := store.Rules()
			if err != nil {
				return err
			}

			red, ok := redirects.Resolve(args[0], rules)
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "no match")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d %s -> %s\n", red.Status, red.From, red.Target)
			return nil
		},
	}
	return cmd
}
