package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "List achievements and progress",
	Long:  "Display the full achievement catalog with unlock state and progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		token := viper.GetString("user.token")
		if token == "" {
			return fmt.Errorf("not logged in. Please run: reelhub auth login")
		}

		serverURL := fmt.Sprintf("http://%s:%d/api/gamification/achievements",
			viper.GetString("server.host"),
			viper.GetInt("server.port"))

		req, _ := http.NewRequest("GET", serverURL, nil)
		req.Header.Set("Authorization", "Bearer "+token)

		client := &http.Client{}
		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("failed to get achievements: %w", err)
		}
		defer resp.Body.Close()

		respBody, _ := io.ReadAll(resp.Body)
		var result map[string]interface{}
		json.Unmarshal(respBody, &result)

		if result["success"] != true {
			return fmt.Errorf("failed: %v", result["error"])
		}

		achievements, _ := result["data"].([]interface{})

		fmt.Printf("\nAchievements (%d):\n\n", len(achievements))

		for _, a := range achievements {
			item := a.(map[string]interface{})
			mark := " "
			if item["unlocked"] == true {
				mark = "✓"
			}
			progress := item["progress"].(float64)

			fmt.Printf("[%s] %s (%s)\n", mark, item["name"].(string), item["tier"].(string))
			fmt.Printf("    %s\n", item["description"].(string))
			if item["unlocked"] != true {
				fmt.Printf("    Progress: %.0f%%\n", progress)
			}
			fmt.Println()
		}

		return nil
	},
}

func init() {
	StatsCmd.AddCommand(achievementsCmd)
}
