package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newPaletteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Colour palette commands",
	}

	cmd.AddCommand(newPaletteListCmd())
	cmd.AddCommand(newPaletteGetCmd())
	cmd.AddCommand(newPaletteColoursCmd())

	return cmd
}

func newPaletteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all palettes",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Palette

			if err := client.Get("/api/v1/palettes", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPaletteGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Show one palette",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Palette

			if err := client.Get("/api/v1/palettes/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPaletteColoursCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "colours",
		Short: "List every colour in picker order",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Colour

			if err := client.Get("/api/v1/colours", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
