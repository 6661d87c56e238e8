package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newModelsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "models",
		Aliases: []string{"registry"},
		Short:   "Manage the model registry",
		Long: `Commands for the SQLite model registry (--store, default dtwgesture.db).
Models are added with "dtwgesture train --name".`,
	}
	cmd.AddCommand(newModelsListCmd(a), newModelsExportCmd(a), newModelsDeleteCmd(a))
	return cmd
}

func newModelsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored models",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()
			recs, err := st.List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tKIND\tDIMS\tLABELS\tCREATED")
			for _, r := range recs {
				labels := make([]string, len(r.Labels))
				for i, l := range r.Labels {
					labels[i] = fmt.Sprint(l)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
					r.ID, r.Name, r.Kind, r.Dims, strings.Join(labels, ","), r.CreatedAt.Format(time.RFC3339))
			}
			return w.Flush()
		},
	}
}

func newModelsExportCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export REF",
		Short: "Write a stored model (by name or id) to a model file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()
			rec, err := st.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, rec.Model, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %s to %s\n", rec.ID, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "model.grt", "model file to write")
	return cmd
}

func newModelsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a stored model",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid model id %q: %w", args[0], err)
			}
			st, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
			return nil
		},
	}
}
