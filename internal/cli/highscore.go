package cli

import (
	"github.com/spf13/cobra"
)

func newHighScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "highscore",
		Short: "Show the high score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HighScore

			if err := client.Get(cmd.Context(), "/api/v1/highscore", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Clear the high score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(cmd.Context(), "/api/v1/highscore"); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage("High score reset")
			return nil
		},
	})

	return cmd
}
