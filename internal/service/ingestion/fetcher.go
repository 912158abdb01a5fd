package ingestion

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/rudidomingues/censotec/internal/config"
)

// S3Fetcher downloads dataset files from S3-compatible object storage so
// they can be ingested like local CSVs.
type S3Fetcher struct {
	client *s3.Client
}

// NewS3Fetcher creates a fetcher from the optional S3 block of the config.
func NewS3Fetcher(cfg *config.Config) (*S3Fetcher, error) {
	if !cfg.HasS3Config() {
		return nil, fmt.Errorf("S3 config is incomplete")
	}

	endpoint := fmt.Sprintf("https://%s", *cfg.S3Endpoint)

	client := s3.New(s3.Options{
		Region: *cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			*cfg.S3KeyID, *cfg.S3Secret, "",
		),
		BaseEndpoint: aws.String(endpoint),
		UsePathStyle: true, // required by most S3-compatible providers
	})

	return &S3Fetcher{client: client}, nil
}

// Fetch downloads the object at s3Path into destDir and returns the local
// file path.
func (f *S3Fetcher) Fetch(ctx context.Context, s3Path, destDir string) (string, error) {
	bucket, key, err := ParseS3Path(s3Path)
	if err != nil {
		return "", err
	}

	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close() //nolint:errcheck

	local := filepath.Join(destDir, filepath.Base(key))
	dst, err := os.Create(local) //nolint:gosec // destDir is caller-controlled
	if err != nil {
		return "", fmt.Errorf("create %s: %w", local, err)
	}
	defer dst.Close() //nolint:errcheck

	if _, err := io.Copy(dst, out.Body); err != nil {
		return "", fmt.Errorf("download s3://%s/%s: %w", bucket, key, err)
	}
	return local, nil
}

// ParseS3Path splits an s3://bucket/key URI into bucket and key.
func ParseS3Path(p string) (bucket, key string, err error) {
	trimmed, ok := strings.CutPrefix(p, "s3://")
	if !ok {
		return "", "", fmt.Errorf("not an s3:// path: %q", p)
	}
	bucket, key, ok = strings.Cut(trimmed, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("malformed s3 path: %q", p)
	}
	return bucket, key, nil
}
