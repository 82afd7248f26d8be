package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/opencourse/courseport/pkg/coursera"

	"github.com/spf13/cobra"
)

var saveDetailJSON bool

// courseCmd represents the course command
var courseCmd = &cobra.Command{
	Use:   "course [slug]",
	Short: "Fetch details for a single course",
	Long: `Given a course slug (the identifier from the course URL), this command
fetches the course details and prints the basic fields. The full JSON
response can optionally be saved alongside.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		slug := args[0] // machine-learning, python, etc.
		client := coursera.NewClient()

		details, err := client.GetCourseDetails(context.Background(), slug)
		if err != nil {
			panic(err)
		}

		if saveDetailJSON {
			out, err := json.MarshalIndent(details, "", "  ")
			if err != nil {
				panic(err)
			}
			name := slug + "_details.json"
			if err := os.WriteFile(name, out, 0644); err != nil {
				panic(err)
			}
			log.Println("Full details saved to", name)
		}

		info, err := coursera.ExtractBasicInfo(details)
		if err != nil {
			panic(err)
		}
		keys := make([]string, 0, len(info))
		for k := range info {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%s: %s\n", k, info[k])
		}
	},
}

func init() {
	rootCmd.AddCommand(courseCmd)

	courseCmd.Flags().BoolVar(&saveDetailJSON, "json", false, "Save the full JSON response to <slug>_details.json")
}
