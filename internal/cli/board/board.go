package board

import "github.com/spf13/cobra"

var BoardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Leaderboard commands",
	Long:  "View challenge leaderboard rankings",
}
