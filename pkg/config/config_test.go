package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	// Shield the test from variables exported in the developer's shell.
	for _, k := range []string{
		"COURSEPORT_PROJECT_ID", "COURSEPORT_DATASET_ID", "COURSEPORT_TOPIC_ID",
		"COURSEPORT_BUCKET_LOCATION", "SFTP_HOST", "SFTP_PORT", "SFTP_USER",
		"SFTP_PASS", "SFTP_REMOTE_DIR",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()

	if cfg.ProjectID != "courseport-catalog" {
		t.Errorf("ProjectID = %q, want default", cfg.ProjectID)
	}
	if cfg.DatasetID != "coursera" {
		t.Errorf("DatasetID = %q, want coursera", cfg.DatasetID)
	}
	if cfg.TopicID != "catalog-refreshed" {
		t.Errorf("TopicID = %q, want catalog-refreshed", cfg.TopicID)
	}
	if cfg.SFTP.Port != 22 {
		t.Errorf("SFTP.Port = %d, want 22", cfg.SFTP.Port)
	}
	if cfg.SFTP.RemoteDir != "/" {
		t.Errorf("SFTP.RemoteDir = %q, want /", cfg.SFTP.RemoteDir)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("COURSEPORT_PROJECT_ID", "my-project")
	t.Setenv("SFTP_HOST", "sftp.example.com")
	t.Setenv("SFTP_PORT", "2222")
	t.Setenv("SFTP_USER", "sync")

	cfg := Load()
	if cfg.ProjectID != "my-project" {
		t.Errorf("ProjectID = %q, want my-project", cfg.ProjectID)
	}
	if cfg.SFTP.Host != "sftp.example.com" {
		t.Errorf("SFTP.Host = %q, want sftp.example.com", cfg.SFTP.Host)
	}
	if cfg.SFTP.Port != 2222 {
		t.Errorf("SFTP.Port = %d, want 2222", cfg.SFTP.Port)
	}
	if cfg.SFTP.User != "sync" {
		t.Errorf("SFTP.User = %q, want sync", cfg.SFTP.User)
	}
}

func TestLoadBadPortFallsBack(t *testing.T) {
	t.Setenv("SFTP_PORT", "not-a-number")

	if cfg := Load(); cfg.SFTP.Port != 22 {
		t.Errorf("SFTP.Port = %d, want fallback 22", cfg.SFTP.Port)
	}
}
