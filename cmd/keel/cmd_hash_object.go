package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/keelvcs/keel/pkg/object"
)

func newHashObjectCmd() *cobra.Command {
	var typeName string
	var write bool

	cmd := &cobra.Command{
		Use:   "hash-object <file>",
		Short: "Compute an object identifier, optionally storing the object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := object.TypeFromName(typeName)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			if !write {
				fmt.Fprintln(cmd.OutOrStdout(), object.HashObject(t, data))
				return nil
			}

			r, err := openRepository()
			if err != nil {
				return err
			}
			defer r.Free()

			id, err := r.Database().Write(t, data)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "blob", "object type to hash as")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "store the object in the repository")
	return cmd
}
