package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newParticipantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "participant",
		Short: "Participant management commands",
	}

	cmd.AddCommand(newParticipantListCmd())
	cmd.AddCommand(newParticipantAddCmd())
	cmd.AddCommand(newParticipantGetCmd())
	cmd.AddCommand(newParticipantRecolourCmd())
	cmd.AddCommand(newParticipantStatsCmd())
	cmd.AddCommand(newParticipantDeleteCmd())

	return cmd
}

func newParticipantListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all participants",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Participant

			if err := client.Get("/api/v1/participants", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newParticipantAddCmd() *cobra.Command {
	var colour string

	cmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Add a participant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if colour == "" {
				return fmt.Errorf("--colour is required")
			}

			req := map[string]string{
				"id":     args[0],
				"colour": colour,
			}
			var result Participant

			if err := client.Post("/api/v1/participants", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&colour, "colour", "", "Hex colour, e.g. #16697A (required)")
	_ = cmd.MarkFlagRequired("colour")

	return cmd
}

func newParticipantGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a participant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Participant

			if err := client.Get("/api/v1/participants/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newParticipantRecolourCmd() *cobra.Command {
	var colour string

	cmd := &cobra.Command{
		Use:   "recolour <id>",
		Short: "Change a participant's colour",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if colour == "" {
				return fmt.Errorf("--colour is required")
			}

			req := map[string]string{"colour": colour}
			var result Participant

			if err := client.Patch("/api/v1/participants/"+url.PathEscape(args[0])+"/colour", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&colour, "colour", "", "Hex colour, e.g. #16697A (required)")
	_ = cmd.MarkFlagRequired("colour")

	return cmd
}

func newParticipantStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <id>",
		Short: "Show a participant's visit statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Stats

			if err := client.Get("/api/v1/participants/"+url.PathEscape(args[0])+"/stats", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newParticipantDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a participant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/participants/" + url.PathEscape(args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Deleted participant " + args[0])
			return nil
		},
	}
}
