package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"cloud.google.com/go/iam"
	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

const viewerRole iam.RoleName = "roles/storage.objectViewer"

// Bucket is the slice of bucket operations the uploader needs. The concrete
// GCS handle satisfies it in production; tests substitute fakes.
type Bucket interface {
	Put(ctx context.Context, object, contentType string, r io.Reader) error
	SetPublicRead(ctx context.Context, object string) error
}

// BucketResolver maps a bucket name to a Bucket.
type BucketResolver func(name string) Bucket

// UploadResult describes where an uploaded object ended up.
type UploadResult struct {
	Bucket string
	Object string
	Path   string // gs://<bucket>/<object>
	URL    string // public URL, set only when the object was made public
}

// Uploader copies local files into cloud storage buckets.
type Uploader struct {
	Buckets BucketResolver
}

// Upload copies the file at localPath into the named bucket. The object name
// defaults to the local basename and the content type is guessed from the
// file extension. With makePublic set, the object is given public-read ACL
// and the result carries its public URL. The local file is closed on every
// exit path.
func (u *Uploader) Upload(ctx context.Context, localPath, bucketName, object string, makePublic bool) (*UploadResult, error) {
	if bucketName == "" {
		return nil, errors.New("storage: bucket name is required")
	}
	if object == "" {
		object = filepath.Base(localPath)
	}

	file, err := os.Open(localPath)
	if err != nil {
		return nil, fmt.Errorf("storage: open local file: %w", err)
	}
	defer file.Close()

	contentType := mime.TypeByExtension(filepath.Ext(localPath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	bucket := u.Buckets(bucketName)
	if err := bucket.Put(ctx, object, contentType, file); err != nil {
		return nil, fmt.Errorf("storage: upload %s to %s: %w", object, bucketName, err)
	}

	result := &UploadResult{
		Bucket: bucketName,
		Object: object,
		Path:   fmt.Sprintf("gs://%s/%s", bucketName, object),
	}
	if makePublic {
		if err := bucket.SetPublicRead(ctx, object); err != nil {
			return nil, fmt.Errorf("storage: make %s public: %w", object, err)
		}
		result.URL = fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucketName, object)
	}
	return result, nil
}

// GCS wraps a Google Cloud Storage client.
type GCS struct {
	client *gcs.Client
}

// NewGCS connects to Google Cloud Storage with ambient credentials.
func NewGCS(ctx context.Context, opts ...option.ClientOption) (*GCS, error) {
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: create client: %w", err)
	}
	return &GCS{client: client}, nil
}

// Uploader returns an Uploader backed by this client's buckets.
func (g *GCS) Uploader() *Uploader {
	return &Uploader{
		Buckets: func(name string) Bucket {
			return gcsBucket{g.client.Bucket(name)}
		},
	}
}

// EnsureBucket creates the bucket if it doesn't exist and, when viewerEmail
// is set, grants that user object-viewer access without duplicating an
// existing binding.
func (g *GCS) EnsureBucket(ctx context.Context, projectID, name, location, viewerEmail string) error {
	bucket := g.client.Bucket(name)

	_, err := bucket.Attrs(ctx)
	if errors.Is(err, gcs.ErrBucketNotExist) {
		attrs := &gcs.BucketAttrs{Location: location}
		if err := bucket.Create(ctx, projectID, attrs); err != nil {
			return fmt.Errorf("storage: create bucket %s: %w", name, err)
		}
	} else if err != nil {
		return fmt.Errorf("storage: stat bucket %s: %w", name, err)
	}

	if viewerEmail == "" {
		return nil
	}
	policy, err := bucket.IAM().Policy(ctx)
	if err != nil {
		return fmt.Errorf("storage: get iam policy for %s: %w", name, err)
	}
	member := "user:" + viewerEmail
	if policy.HasRole(member, viewerRole) {
		return nil
	}
	policy.Add(member, viewerRole)
	if err := bucket.IAM().SetPolicy(ctx, policy); err != nil {
		return fmt.Errorf("storage: grant viewer access on %s: %w", name, err)
	}
	return nil
}

func (g *GCS) Close() error {
	return g.client.Close()
}

type gcsBucket struct {
	handle *gcs.BucketHandle
}

func (b gcsBucket) Put(ctx context.Context, object, contentType string, r io.Reader) error {
	w := b.handle.Object(object).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func (b gcsBucket) SetPublicRead(ctx context.Context, object string) error {
	return b.handle.Object(object).ACL().Set(ctx, gcs.AllUsers, gcs.RoleReader)
}
