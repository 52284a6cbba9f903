package cli

import (
	"github.com/spf13/cobra"
)

func newMapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Map styling commands",
	}

	cmd.AddCommand(newMapStylesCmd())
	cmd.AddCommand(newMapLegendCmd())
	cmd.AddCommand(newMapOverlapsCmd())
	cmd.AddCommand(newMapCountriesCmd())

	return cmd
}

func newMapStylesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "Show the computed style of every region",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []RegionStyle

			if err := client.Get("/api/v1/map/styles", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMapLegendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "legend",
		Short: "Show the participant legend",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []LegendEntry

			if err := client.Get("/api/v1/map/legend", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMapOverlapsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overlaps",
		Short: "Show countries visited by more than one participant",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Overlap

			if err := client.Get("/api/v1/map/overlaps", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMapCountriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List the selectable countries",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Country

			if err := client.Get("/api/v1/countries", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
