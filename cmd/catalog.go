package cmd

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/opencourse/courseport/pkg/coursera"
	"github.com/opencourse/courseport/pkg/database"
	"github.com/opencourse/courseport/pkg/report"
	"github.com/opencourse/courseport/pkg/storage"

	"github.com/spf13/cobra"
)

var dbFile = "/courseport/courseport.db"

var (
	catalogLimit   int
	catalogFields  string
	catalogOutput  string
	catalogBucket  string
	catalogPublic  bool
	browseCategory string
)

// catalogCmd represents the catalog command
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Extract the course catalog to a CSV file",
	Long: `Fetches one page of the course catalog and writes it to a CSV file.
The results are also inserted into a local SQLite database, and the
CSV can optionally be uploaded to a Cloud Storage bucket.

Only a single page is requested, so --limit must be at least the
catalog size for a complete export. If the catalog API is unavailable
the browse page is scraped for embedded course data instead.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		client := coursera.NewClient()

		var fields []string
		if catalogFields != "" {
			fields = strings.Split(catalogFields, ",")
		}

		courses, err := client.ExtractCourses(ctx, catalogLimit, fields...)
		if err != nil {
			log.Println("Catalog API failed, falling back to browse page:", err)
			courses, err = client.BrowseCourses(c, browseCategory)
			if err != nil {
				panic(err)
			}
		}
		log.Println("Found", len(courses), "courses")
		rows := coursera.FlattenAll(courses)

		// Keep a local history of everything we've seen
		userCacheDir, _ := os.UserCacheDir()
		sqlite := database.NewSqlite(userCacheDir + dbFile)
		if err := sqlite.SaveCourses(rows); err != nil {
			panic(err)
		}
		_ = sqlite.Close()
		log.Println("Saved to database", dbFile)

		// Write to CSV
		path, err := report.WriteCatalog(rows, catalogOutput)
		if err != nil {
			panic(err)
		}
		log.Println("Wrote to file", path)

		if catalogBucket == "" {
			return
		}
		gcs, err := storage.NewGCS(ctx)
		if err != nil {
			panic(err)
		}
		defer gcs.Close()
		result, err := gcs.Uploader().Upload(ctx, path, catalogBucket, "", catalogPublic)
		if err != nil {
			panic(err)
		}
		log.Println("Uploaded to", result.Path)
		if result.URL != "" {
			log.Println("Public URL:", result.URL)
		}
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)

	catalogCmd.Flags().IntVar(&catalogLimit, "limit", 20, "Page size of the catalog request")
	catalogCmd.Flags().StringVar(&catalogFields, "fields", "", "Comma-separated field selector (default: the standard set)")
	catalogCmd.Flags().StringVar(&catalogOutput, "output", "", "CSV output path (default: timestamped file in the working directory)")
	catalogCmd.Flags().StringVar(&catalogBucket, "bucket", "", "Upload the CSV to this Cloud Storage bucket")
	catalogCmd.Flags().BoolVar(&catalogPublic, "public", false, "Make the uploaded object publicly readable")
	catalogCmd.Flags().StringVar(&browseCategory, "browse-category", coursera.DefaultBrowseCategory, "Browse page category used by the HTML fallback")
}
