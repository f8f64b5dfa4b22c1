package cmd

import (
	"fmt"

	"github.com/abhisek/mathpractice/internal/problemgen"
	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the Primary 5 topics problems are drawn from",
	Run: func(cmd *cobra.Command, args []string) {
		for i, t := range problemgen.Topics {
			fmt.Printf("%2d. %s\n", i+1, t)
		}
	},
}
