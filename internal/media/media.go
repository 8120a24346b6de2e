// Package media stores uploaded images on an S3 compatible object store and
// hands back their public URLs.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const MaxFileSize = 5 << 20

var (
	ErrUnsupportedType = errors.New("file type not supported")
	ErrTooLarge        = errors.New("file exceeds 5 MiB")
	ErrEmpty           = errors.New("file is empty")
)

var allowedTypes = map[string]string{
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".png":  "image/png",
	".svg":  "image/svg+xml",
}

// File is an upload received from a client.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

type Uploader interface {
	Upload(ctx context.Context, folder string, f File) (string, error)
}

// Validate checks the extension, the declared content type and the size.
// Both the extension and the content type must name a supported image type.
func Validate(f File) error {
	ext := strings.ToLower(path.Ext(f.Name))
	want, ok := allowedTypes[ext]
	if !ok {
		return ErrUnsupportedType
	}
	ct := strings.ToLower(strings.TrimSpace(strings.SplitN(f.ContentType, ";", 2)[0]))
	if ct != want && !(want == "image/jpeg" && ct == "image/jpg") {
		return ErrUnsupportedType
	}
	if f.Size <= 0 {
		return ErrEmpty
	}
	if f.Size > MaxFileSize {
		return ErrTooLarge
	}
	return nil
}

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Uploader struct {
	client    objectPutter
	bucket    string
	publicURL string
	timeout   time.Duration
}

func NewS3Uploader(ctx context.Context, cfg *config.Config) (*S3Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})

	publicURL := cfg.MediaPublicURL
	if publicURL == "" {
		publicURL = defaultPublicURL(cfg)
	}

	return newS3Uploader(client, cfg.S3Bucket, publicURL), nil
}

func newS3Uploader(client objectPutter, bucket, publicURL string) *S3Uploader {
	return &S3Uploader{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		timeout:   30 * time.Second,
	}
}

func defaultPublicURL(cfg *config.Config) string {
	if cfg.S3Endpoint != "" {
		return strings.TrimRight(cfg.S3Endpoint, "/") + "/" + cfg.S3Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, cfg.S3Region)
}

// Upload validates f and stores it under folder with a random key.
func (u *S3Uploader) Upload(ctx context.Context, folder string, f File) (string, error) {
	if err := Validate(f); err != nil {
		return "", err
	}

	key := ObjectKey(folder, f.Name)
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          f.Body,
		ContentType:   aws.String(allowedTypes[strings.ToLower(path.Ext(f.Name))]),
		ContentLength: aws.Int64(f.Size),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return u.publicURL + "/" + key, nil
}

// ObjectKey builds folder/YYYY/MM/DD/<uuid><ext>.
func ObjectKey(folder, name string) string {
	d := time.Now().UTC()
	ext := strings.ToLower(path.Ext(name))
	return fmt.Sprintf("%s/%d/%02d/%02d/%s%s", strings.Trim(folder, "/"), d.Year(), d.Month(), d.Day(), uuid.New(), ext)
}
