package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/keelvcs/keel/pkg/repo"
)

func newInitCmd() *cobra.Command {
	var bare bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Create an empty keel repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			abs, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolve path: %w", err)
			}
			if err := os.MkdirAll(abs, 0o755); err != nil {
				return fmt.Errorf("create directory: %w", err)
			}

			r, err := repo.Open(abs, &repo.Options{CreateIfMissing: true, Bare: bare})
			if err != nil {
				return err
			}
			defer r.Free()

			if !r.Created() {
				fmt.Fprintf(cmd.OutOrStdout(), "reinitialized existing keel repository in %s\n", r.StoreDir())
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "initialized empty keel repository in %s\n", r.StoreDir())
			return nil
		},
	}

	cmd.Flags().BoolVar(&bare, "bare", false, "create a bare repository with no working directory")
	return cmd
}
