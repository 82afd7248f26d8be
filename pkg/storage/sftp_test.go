package storage

import (
	"context"
	"testing"
)

func TestUploadSFTPRequiresCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  SFTPConfig
	}{
		{name: "empty config", cfg: SFTPConfig{}},
		{name: "missing user", cfg: SFTPConfig{Host: "example.com", Pass: "secret"}},
		{name: "missing password", cfg: SFTPConfig{Host: "example.com", User: "sync"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote, err := UploadSFTP(context.Background(), tt.cfg, "catalog.csv", "")
			if err == nil {
				t.Fatal("expected a configuration error")
			}
			if remote != "" {
				t.Fatalf("expected empty remote path, got %q", remote)
			}
		})
	}
}
