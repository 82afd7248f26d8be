package cmd

import (
	"context"
	"log"

	"github.com/opencourse/courseport/pkg/config"
	"github.com/opencourse/courseport/pkg/storage"

	"github.com/spf13/cobra"
)

var (
	uploadBucket  string
	uploadDest    string
	uploadPublic  bool
	ensureBucket  bool
	grantViewer   string
	uploadViaSFTP bool
)

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a file to Cloud Storage or SFTP",
	Long: `Uploads a local file (typically a catalog CSV) to a Cloud Storage
bucket, or to the SFTP host configured in the environment when --sftp
is set. The destination name defaults to the local filename.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		localPath := args[0]
		ctx := context.Background()
		cfg := config.Load()

		if uploadViaSFTP {
			remotePath, err := storage.UploadSFTP(ctx, cfg.SFTP, localPath, uploadDest)
			if err != nil {
				panic(err)
			}
			log.Println("Uploaded to", cfg.SFTP.Host+":"+remotePath)
			return
		}

		if uploadBucket == "" {
			log.Fatal("--bucket is required unless --sftp is set")
		}
		gcs, err := storage.NewGCS(ctx)
		if err != nil {
			panic(err)
		}
		defer gcs.Close()

		if ensureBucket {
			if err := gcs.EnsureBucket(ctx, cfg.ProjectID, uploadBucket, cfg.BucketLocation, grantViewer); err != nil {
				panic(err)
			}
		}

		result, err := gcs.Uploader().Upload(ctx, localPath, uploadBucket, uploadDest, uploadPublic)
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
	rootCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().StringVar(&uploadBucket, "bucket", "", "Target Cloud Storage bucket")
	uploadCmd.Flags().StringVar(&uploadDest, "dest", "", "Destination object name (default: local filename)")
	uploadCmd.Flags().BoolVar(&uploadPublic, "public", false, "Make the uploaded object publicly readable")
	uploadCmd.Flags().BoolVar(&ensureBucket, "ensure-bucket", false, "Create the bucket first if it doesn't exist")
	uploadCmd.Flags().StringVar(&grantViewer, "grant-viewer", "", "Grant object-viewer access to this user email when ensuring the bucket")
	uploadCmd.Flags().BoolVar(&uploadViaSFTP, "sftp", false, "Upload over SFTP using SFTP_* environment settings")
}
