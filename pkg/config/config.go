package config

import (
	"os"
	"strconv"

	"github.com/opencourse/courseport/pkg/storage"
)

// Config holds the environment-driven settings for the cloud targets.
type Config struct {
	// Google Cloud
	ProjectID      string
	DatasetID      string
	TopicID        string
	BucketLocation string

	// SFTP
	SFTP storage.SFTPConfig
}

func Load() Config {
	return Config{
		ProjectID:      getenv("COURSEPORT_PROJECT_ID", "courseport-catalog"),
		DatasetID:      getenv("COURSEPORT_DATASET_ID", "coursera"),
		TopicID:        getenv("COURSEPORT_TOPIC_ID", "catalog-refreshed"),
		BucketLocation: getenv("COURSEPORT_BUCKET_LOCATION", "us-central1"),

		SFTP: storage.SFTPConfig{
			Host:      os.Getenv("SFTP_HOST"),
			Port:      getenvInt("SFTP_PORT", 22),
			User:      os.Getenv("SFTP_USER"),
			Pass:      os.Getenv("SFTP_PASS"),
			RemoteDir: getenv("SFTP_REMOTE_DIR", "/"),
		},
	}
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(k string, def int) int {
	v, err := strconv.Atoi(os.Getenv(k))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
