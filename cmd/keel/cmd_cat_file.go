package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keelvcs/keel/pkg/object"
	"github.com/keelvcs/keel/pkg/repo"
)

func newCatFileCmd() *cobra.Command {
	var showType bool

	cmd := &cobra.Command{
		Use:   "cat-file <oid>",
		Short: "Print a stored object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := openRepository()
			if err != nil {
				return err
			}
			defer r.Free()

			obj, err := r.LookupHex(args[0], object.TypeAny)
			if err != nil {
				return err
			}

			if showType {
				fmt.Fprintln(cmd.OutOrStdout(), obj.Type())
				return nil
			}

			out := cmd.OutOrStdout()
			switch o := obj.(type) {
			case *repo.Blob:
				out.Write(o.Contents)
			case *repo.Commit:
				fmt.Fprintf(out, "tree %s\n", o.TreeID)
				for _, p := range o.ParentIDs {
					fmt.Fprintf(out, "parent %s\n", p)
				}
				fmt.Fprintf(out, "author %s\n", object.FormatSignature(o.Author))
				fmt.Fprintf(out, "committer %s\n", object.FormatSignature(o.Committer))
				fmt.Fprintf(out, "\n%s\n", o.Message)
			case *repo.Tree:
				for _, e := range o.Entries {
					fmt.Fprintf(out, "%s %s %s\n", e.Mode, e.ID, e.Name)
				}
			case *repo.Tag:
				fmt.Fprintf(out, "object %s\n", o.TargetID)
				fmt.Fprintf(out, "type %s\n", o.TargetType)
				fmt.Fprintf(out, "tag %s\n", o.Name)
				fmt.Fprintf(out, "tagger %s\n", object.FormatSignature(o.Tagger))
				fmt.Fprintf(out, "\n%s\n", o.Message)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showType, "type", "t", false, "print the object's type instead of its content")
	return cmd
}
