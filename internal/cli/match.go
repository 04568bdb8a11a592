package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Live match commands",
	}

	cmd.AddCommand(newMatchCreateCmd())
	cmd.AddCommand(newMatchGetCmd())
	cmd.AddCommand(newMatchSelectCmd())
	cmd.AddCommand(newMatchAnswerCmd())
	cmd.AddCommand(newMatchPlayAgainCmd())
	cmd.AddCommand(newMatchEndCmd())
	cmd.AddCommand(newMatchSaveCmd())
	cmd.AddCommand(newMatchRestoreCmd())

	return cmd
}

func newMatchCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <player>...",
		Short: "Start a new match with players in turn order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string][]string{"players": args}
			var result Match

			if err := client.Post(cmd.Context(), "/api/v1/matches", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newMatchGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Match

			if err := client.Get(cmd.Context(), pathf("/api/v1/matches/%s", args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newMatchSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select <id> <category> <value>",
		Short: "Choose a board cell for the current player",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid value: %w", err)
			}

			req := map[string]any{"category": args[1], "value": value}
			var result Match

			if err := client.Post(cmd.Context(), pathf("/api/v1/matches/%s/select", args[0]), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newMatchAnswerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "answer <id> <choice>",
		Short: "Answer the active question (choice 1-4)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			choice, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid choice: %w", err)
			}

			req := map[string]int{"choice": choice - 1}
			var result Match

			if err := client.Post(cmd.Context(), pathf("/api/v1/matches/%s/answer", args[0]), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newMatchPlayAgainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play-again <id>",
		Short: "Start a fresh round with the same players",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Match

			if err := client.Post(cmd.Context(), pathf("/api/v1/matches/%s/play-again", args[0]), nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newMatchEndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end <id>",
		Short: "Discard a match and return to the menu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(cmd.Context(), pathf("/api/v1/matches/%s", args[0])); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage("Match ended")
			return nil
		},
	}
}

func newMatchSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <id> <name>",
		Short: "Save a match under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"name": args[1]}

			if err := client.Post(cmd.Context(), pathf("/api/v1/matches/%s/save", args[0]), req, nil); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage(fmt.Sprintf("Saved as %q", args[1]))
			return nil
		},
	}
}

func newMatchRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id> <name>",
		Short: "Replace a match's state with a save",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"name": args[1]}
			var result Match

			if err := client.Post(cmd.Context(), pathf("/api/v1/matches/%s/restore", args[0]), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}
