package board

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Show the top leaderboard entries",
	Long:  "Display the ranked leaderboard, optionally filtered by time window and challenge type",
	RunE: func(cmd *cobra.Command, args []string) error {
		window, _ := cmd.Flags().GetString("window")
		challenge, _ := cmd.Flags().GetString("challenge")

		params := url.Values{}
		params.Set("window", window)
		params.Set("challenge", challenge)

		serverURL := fmt.Sprintf("http://%s:%d/api/leaderboard?%s",
			viper.GetString("server.host"),
			viper.GetInt("server.port"),
			params.Encode())

		resp, err := http.Get(serverURL)
		if err != nil {
			return fmt.Errorf("failed to get leaderboard: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		var result map[string]interface{}
		json.Unmarshal(respBody, &result)

		if result["success"] != true {
			return fmt.Errorf("failed: %v", result["error"])
		}

		data := result["data"].(map[string]interface{})
		entries, _ := data["entries"].([]interface{})
		total, _ := data["total"].(float64)

		fmt.Printf("\nLeaderboard (%s / %s) — %d entries:\n\n", window, challenge, int(total))

		for _, e := range entries {
			entry := e.(map[string]interface{})
			rank := int(entry["rank"].(float64))
			duration := int(entry["duration"].(float64))

			username := "anonymous"
			if u, ok := entry["username"].(string); ok && u != "" {
				username = u
			}

			fmt.Printf("%2d. %s\n", rank, username)
			fmt.Printf("    Challenge: %s\n", entry["challenge_type"].(string))
			fmt.Printf("    Survived: %dm %ds\n", duration/60, duration%60)
			if videos, ok := entry["videos_watched"].(float64); ok && videos > 0 {
				fmt.Printf("    Videos: %.0f\n", videos)
			}
			fmt.Println()
		}

		return nil
	},
}

func init() {
	topCmd.Flags().String("window", "all", "Time window (all, week, month)")
	topCmd.Flags().String("challenge", "all", "Challenge type filter")
	BoardCmd.AddCommand(topCmd)
}
