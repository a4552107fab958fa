package stats

import "github.com/spf13/cobra"

var StatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Stats and achievement commands",
	Long:  "View your watch stats, level, and achievements",
}
