package cmd

import (
	"fmt"

	"github.com/abhisek/mathpractice/internal/client"
	"github.com/abhisek/mathpractice/internal/play"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Practice in the terminal against a running server",
	RunE: func(cmd *cobra.Command, args []string) error {
		server, _ := cmd.Flags().GetString("server")
		if err := play.Run(cmd.Context(), client.New(server)); err != nil {
			return fmt.Errorf("run terminal client: %w", err)
		}
		return nil
	},
}

func init() {
	playCmd.Flags().StringP("server", "s", "http://localhost:8080", "Base URL of the mathpractice server")
}
