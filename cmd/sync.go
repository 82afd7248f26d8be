package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"cloud.google.com/go/pubsub"
	"github.com/opencourse/courseport/pkg/config"
	"github.com/opencourse/courseport/pkg/coursera"
	"github.com/opencourse/courseport/pkg/database"

	"github.com/spf13/cobra"
)

var (
	syncLimit int
	dryRun    bool
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync catalog data to BigQuery",
	Long: `Extracts the course catalog and merges it into the BigQuery courses
table, then publishes a catalog-refreshed event.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		client := coursera.NewClient()

		courses, err := client.ExtractCourses(context.Background(), syncLimit)
		if err != nil {
			panic(err)
		}
		rows := coursera.FlattenAll(courses)
		log.Println("Found", len(rows), "courses")

		// Connect to BigQuery
		bq, err := database.NewBigQuery(cfg.ProjectID, cfg.DatasetID)
		if err != nil {
			panic(fmt.Errorf("failed to connect to bigquery: %v", err))
		}
		defer bq.Close()

		// Insert (merge) the catalog rows
		if !dryRun {
			if err := bq.InsertCourses(rows); err != nil {
				panic(fmt.Errorf("failed to insert courses: %v", err))
			}
		} else {
			fmt.Println("Dry run: data will not be inserted")
		}

		// Connect to PubSub
		ctx := context.Background()
		psClient, err := pubsub.NewClient(ctx, cfg.ProjectID)
		if err != nil {
			log.Fatalf("Failed to create client: %v", err)
		}

		msg, err := json.Marshal(struct {
			CourseCount int `json:"courseCount"`
		}{len(rows)})
		if err != nil {
			log.Fatalf("Failed to create message: %v", err)
		}

		// Publish an event
		topic := psClient.Topic(cfg.TopicID)
		res := topic.Publish(ctx, &pubsub.Message{Data: msg})
		if _, err := res.Get(ctx); err != nil {
			log.Fatalf("Failed to publish message: %v", err)
		}

		fmt.Println("Done.")
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().IntVar(&syncLimit, "limit", 1000, "Page size of the catalog request")
	syncCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Run without modifying the database (default: false)")
}
