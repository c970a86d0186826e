// Copyright 2025 Vitor Carvalho. All rights reserved.
// Mount of this source code is governed by a Apache-2.0 license that can be found
// at https://github.com/lightningspirit/wp-redirects/blob/master/LICENSE.txt.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	redirects "github.com/lightningspirit/wp-redirects"
)

func newDeleteCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <from>",
		Short: "Delete every rule whose source matches the given path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from := redirects.NormalizeSource(args[0])
			if from == "" {
				return fmt.Errorf("%w: empty source", redirects.ErrInvalidRule)
			}

			store, err := a.store()
			if err != nil {
				return err
			}

			removed := 0
			if err := store.Update(func(rules []redirects.Rule) ([]redirects.Rule, error) {
				kept := rules[:0]
				for _, rule := range rules {
					if rule.From() == from {
						removed++
						continue
					}
					kept = append(kept, rule)
				}
				if removed == 0 {
					return nil, fmt.Errorf("%w: %s", redirects.ErrRuleNotFound, from)
				}
				return kept, nil
			}); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d rule(s) for %s\n", removed, from)
			return nil
		},
	}
	return cmd
}
