package cmd

import (
	"fmt"
	"os"

	"github.com/gocolly/colly/v2"
	"github.com/spf13/cobra"
)

var c *colly.Collector

var cacheDir = "/courseport/web-cache"
var noCache bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "courseport",
	Short: "A tool for exporting Coursera catalog data",
	Long: `Pulls course data from the Coursera API into a format suitable for
analysis. Given a catalog size or a course slug, this application can
generate a CSV file, upload it to Cloud Storage, or send the results
to BigQuery.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initColly)

	rootCmd.PersistentFlags().BoolVar(&noCache, "no-cache", false, "Bypass the web cache (default: false)")
}

// initColly prepares the shared collector used by the browse-page fallback.
func initColly() {
	c = colly.NewCollector()
	if !noCache {
		userCacheDir, _ := os.UserCacheDir()
		c.CacheDir = userCacheDir + cacheDir
	}
}
