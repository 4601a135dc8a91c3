package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keelvcs/keel/pkg/repo"
)

func newRefsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refs",
		Short: "List references and the resolved head",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepository()
			if err != nil {
				return err
			}
			defer r.Free()

			out := cmd.OutOrStdout()

			head, err := r.References().Head()
			switch {
			case errors.Is(err, repo.ErrUnbornHead):
				fmt.Fprintln(out, "HEAD (unborn)")
			case err != nil:
				return err
			default:
				fmt.Fprintf(out, "HEAD -> %s (%s)\n", head.Name, head.Target)
			}

			refs, err := r.References().All()
			if err != nil {
				return err
			}
			for _, ref := range refs {
				fmt.Fprintf(out, "%s %s\n", ref.Target, ref.Name)
			}
			return nil
		},
	}
}
