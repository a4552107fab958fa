package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your stats summary",
	Long:  "Display your XP, level, and stat counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		token := viper.GetString("user.token")
		if token == "" {
			return fmt.Errorf("not logged in. Please run: reelhub auth login")
		}

		serverURL := fmt.Sprintf("http://%s:%d/api/gamification/summary",
			viper.GetString("server.host"),
			viper.GetInt("server.port"))

		req, _ := http.NewRequest("GET", serverURL, nil)
		req.Header.Set("Authorization", "Bearer "+token)

		client := &http.Client{}
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		var result map[string]interface{}
		json.Unmarshal(respBody, &result)

		if result["success"] != true {
			return fmt.Errorf("failed: %v", result["error"])
		}

		data := result["data"].(map[string]interface{})
		level := int(data["level"].(float64))
		progress := data["level_progress"].(float64)
		unlocked, _ := data["unlocked"].([]interface{})

		fmt.Printf("\nLevel %d (%.0f%% to next)\n", level, progress)
		fmt.Printf("Achievements unlocked: %d\n\n", len(unlocked))

		stats, _ := data["stats"].(map[string]interface{})
		counters, _ := stats["counters"].(map[string]interface{})

		keys := make([]string, 0, len(counters))
		for k := range counters {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			fmt.Printf("  %-32s %.0f\n", k, counters[k].(float64))
		}

		return nil
	},
}

func init() {
	StatsCmd.AddCommand(showCmd)
}
