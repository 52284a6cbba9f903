package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newVisitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visits",
		Short: "Visit tracking commands",
	}

	cmd.AddCommand(newVisitsAddCmd())
	cmd.AddCommand(newVisitsSetCmd())
	cmd.AddCommand(newVisitsClearCmd())

	return cmd
}

func newVisitsAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <id> <code>...",
		Short: "Record visited countries for a participant",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string][]string{"codes": args[1:]}
			var result Participant

			if err := client.Post("/api/v1/participants/"+url.PathEscape(args[0])+"/visits", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newVisitsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <id> [code]...",
		Short: "Replace a participant's visited countries",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codes := args[1:]
			if codes == nil {
				codes = []string{}
			}

			req := map[string][]string{"codes": codes}
			var result Participant

			if err := client.Put("/api/v1/participants/"+url.PathEscape(args[0])+"/visits", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newVisitsClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <id>",
		Short: "Clear a participant's visited countries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/participants/" + url.PathEscape(args[0]) + "/visits"); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Cleared visits for %s", args[0]))
			return nil
		},
	}
}
