package storage

import (
	"context"
	"errors"
	"io"
	"mime"
	"os"
	"path/filepath"
	"testing"
)

type fakeBucket struct {
	name         string
	objects      map[string][]byte
	contentTypes map[string]string
	public       map[string]bool
	putErr       error
	aclErr       error
}

func newFakeBucket(name string) *fakeBucket {
	return &fakeBucket{
		name:         name,
		objects:      make(map[string][]byte),
		contentTypes: make(map[string]string),
		public:       make(map[string]bool),
	}
}

func (b *fakeBucket) Put(ctx context.Context, object, contentType string, r io.Reader) error {
	if b.putErr != nil {
		return b.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	b.objects[object] = data
	b.contentTypes[object] = contentType
	return nil
}

func (b *fakeBucket) SetPublicRead(ctx context.Context, object string) error {
	if b.aclErr != nil {
		return b.aclErr
	}
	b.public[object] = true
	return nil
}

func uploaderFor(b *fakeBucket) *Uploader {
	return &Uploader{Buckets: func(name string) Bucket {
		b.name = name
		return b
	}}
}

func tempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestUploadPublic(t *testing.T) {
	bucket := newFakeBucket("")
	path := tempCSV(t, "id,name\n1,ML\n")

	result, err := uploaderFor(bucket).Upload(context.Background(), path, "exports", "catalog.csv", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Path != "gs://exports/catalog.csv" {
		t.Errorf("Path = %q, want gs://exports/catalog.csv", result.Path)
	}
	if result.URL != "https://storage.googleapis.com/exports/catalog.csv" {
		t.Errorf("URL = %q, want public object URL", result.URL)
	}
	if string(bucket.objects["catalog.csv"]) != "id,name\n1,ML\n" {
		t.Errorf("uploaded bytes mismatch: %q", bucket.objects["catalog.csv"])
	}
	if !bucket.public["catalog.csv"] {
		t.Error("object was not made public")
	}
	if want := mime.TypeByExtension(".csv"); want != "" && bucket.contentTypes["catalog.csv"] != want {
		t.Errorf("content type = %q, want %q", bucket.contentTypes["catalog.csv"], want)
	}
}

func TestUploadPrivateHasNoURL(t *testing.T) {
	bucket := newFakeBucket("")
	path := tempCSV(t, "data")

	result, err := uploaderFor(bucket).Upload(context.Background(), path, "exports", "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.URL != "" {
		t.Errorf("URL = %q, want empty for a private upload", result.URL)
	}
	if len(bucket.public) != 0 {
		t.Error("ACL call issued for a private upload")
	}
}

func TestUploadDefaultsObjectToBasename(t *testing.T) {
	bucket := newFakeBucket("")
	path := tempCSV(t, "data")

	result, err := uploaderFor(bucket).Upload(context.Background(), path, "exports", "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Object != "catalog.csv" {
		t.Errorf("Object = %q, want local basename", result.Object)
	}
}

func TestUploadProviderFailure(t *testing.T) {
	bucket := newFakeBucket("")
	bucket.putErr = errors.New("permission denied")
	path := tempCSV(t, "data")

	result, err := uploaderFor(bucket).Upload(context.Background(), path, "exports", "", false)
	if err == nil {
		t.Fatal("expected an error")
	}
	if result != nil {
		t.Fatalf("expected nil result, got %+v", result)
	}
}

func TestUploadACLFailure(t *testing.T) {
	bucket := newFakeBucket("")
	bucket.aclErr = errors.New("forbidden")
	path := tempCSV(t, "data")

	result, err := uploaderFor(bucket).Upload(context.Background(), path, "exports", "", true)
	if err == nil {
		t.Fatal("expected an error")
	}
	if result != nil {
		t.Fatalf("expected nil result, got %+v", result)
	}
}

func TestUploadMissingLocalFile(t *testing.T) {
	bucket := newFakeBucket("")

	result, err := uploaderFor(bucket).Upload(context.Background(), filepath.Join(t.TempDir(), "absent.csv"), "exports", "", false)
	if err == nil {
		t.Fatal("expected an error")
	}
	if result != nil {
		t.Fatalf("expected nil result, got %+v", result)
	}
}

func TestUploadMissingBucketName(t *testing.T) {
	bucket := newFakeBucket("")
	path := tempCSV(t, "data")

	if _, err := uploaderFor(bucket).Upload(context.Background(), path, "", "", false); err == nil {
		t.Fatal("expected an error for a missing bucket name")
	}
}
