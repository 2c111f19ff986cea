package r2

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Config holds the Cloudflare R2 connection settings. R2 speaks the S3 API,
// so the client is a stock S3 client pointed at the account endpoint.
type Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

// Uploader stores product images in an R2 bucket and hands back the public
// URL they will be served from.
type Uploader interface {
	Upload(ctx context.Context, key string, content []byte, contentType string) (string, error)
	PublicURL(key string) string
}

type uploader struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewUploader(ctx context.Context, cfg Config) (Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = sdkaws.String(cfg.Endpoint)
	})

	return &uploader{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
	}, nil
}

// Upload implements Uploader. Uploads are plain puts: re-uploading a key
// replaces the previous object, which is exactly what re-importing a
// product's images should do.
func (u *uploader) Upload(ctx context.Context, key string, content []byte, contentType string) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      sdkaws.String(u.bucket),
		Key:         sdkaws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: sdkaws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return u.PublicURL(key), nil
}

// PublicURL implements Uploader.
func (u *uploader) PublicURL(key string) string {
	return fmt.Sprintf("%s/%s", u.publicURL, key)
}
