package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reelhub/internal/cli/auth"
	"reelhub/internal/cli/board"
	configcmd "reelhub/internal/cli/config"
	"reelhub/internal/cli/stats"
)

var rootCmd = &cobra.Command{
	Use:   "reelhub",
	Short: "ReelHub command line client",
	Long:  "Browse the leaderboard, track your stats, and manage your ReelHub account from the terminal",
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("host", "", "Server host")
	rootCmd.PersistentFlags().Int("port", 0, "Server port")
	viper.BindPFlag("server.host", rootCmd.PersistentFlags().Lookup("host"))
	viper.BindPFlag("server.port", rootCmd.PersistentFlags().Lookup("port"))

	rootCmd.AddCommand(auth.AuthCmd)
	rootCmd.AddCommand(configcmd.ConfigCmd)
	rootCmd.AddCommand(board.BoardCmd)
	rootCmd.AddCommand(stats.StatsCmd)
}

func initConfig() {
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)

	home, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(filepath.Join(home, ".reelhub"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.ReadInConfig()
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
