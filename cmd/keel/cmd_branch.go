package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBranchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "branch",
		Short: "List branches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepository()
			if err != nil {
				return err
			}
			defer r.Free()

			current, err := r.Branches().Current()
			if err != nil {
				return err
			}
			branches, err := r.Branches().All()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, b := range branches {
				marker := " "
				if b.Name == current {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s %s\n", marker, b.Name, b.Ref.Target)
			}
			return nil
		},
	}
}
