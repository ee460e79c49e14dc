package commands

import (
	"fmt"

	"github.com/de-tools/stat-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/stat-atlas/pkg/services/indicators"
	"github.com/spf13/cobra"
)

type CatalogProvider func() (indicators.Catalog, error)

func NewIndicatorsCmd(provider CatalogProvider, reporter *export.Reporter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "indicators",
		Short: "Manage the local indicator catalogue",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List catalogued indicators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := provider()
			if err != nil {
				return err
			}
			list, err := catalog.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list indicators: %w", err)
			}
			return reporter.Indicators(list)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add NAME",
		Short: "Add an indicator to the catalogue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := provider()
			if err != nil {
				return err
			}
			indicator, err := catalog.Add(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to add indicator: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added indicator %d: %s\n", indicator.ID, indicator.Name)
			return nil
		},
	})

	return cmd
}
