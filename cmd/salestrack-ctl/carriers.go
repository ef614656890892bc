package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/BearBump/SalesTrack/internal/carriers"
	"github.com/spf13/cobra"
)

func newCarriersCmd() *cobra.Command {
	var file string

	registry := func() (*carriers.Registry, error) {
		if file == "" {
			return carriers.NewDefault(), nil
		}
		return carriers.LoadFile(file)
	}

	cmd := &cobra.Command{
		Use:   "carriers",
		Short: "Inspect the carrier registry",
	}
	cmd.PersistentFlags().StringVar(&file, "file", "", "carrier registry YAML (built-in list when empty)")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List registered carriers",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := registry()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tNAME\tACTIVE\tPATTERN")
			for _, cr := range r.List() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", cr.Code, cr.Name, yesNo(cr.Active), cr.Pattern)
			}
			return tw.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "detect <tracking-number>...",
		Short: "Detect carriers for tracking numbers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := registry()
			if err != nil {
				return err
			}
			for _, tn := range args {
				code, ok := r.Detect(tn)
				if !ok {
					code = "-"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", tn, code)
			}
			return nil
		},
	})
	return cmd
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
