package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExistsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exists <oid>",
		Short: "Report whether an object is stored",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepository()
			if err != nil {
				return err
			}
			defer r.Free()

			ok, err := r.ExistsHex(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ok)
			return nil
		},
	}
}
