package publish

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/mount/internal/errors"
)

// ObjectPutter is the part of *s3.Client the S3Store needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store stores documents in an S3 bucket.
type S3Store struct {
	client ObjectPutter
	bucket string
	prefix string
}

// NewS3Store creates a new S3 store.
//
// Parameters:
//   - client: S3 client (usually from NewS3Client)
//   - bucket: bucket name
//   - prefix: key prefix (e.g., "pages/")
func NewS3Store(client ObjectPutter, bucket, prefix string) *S3Store {
	return &S3Store{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// Put uploads body to prefix+key.
func (s *S3Store) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	if s.bucket == "" || s.client == nil {
		return "", errors.New(errors.CodePublishDisabled).WithDetail("no S3 bucket configured")
	}

	objectKey := s.prefix + key
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
		Metadata: map[string]string{
			"publish-time": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", errors.New(errors.CodePublishFailed).
			WithDetailf("s3 upload of %s failed", objectKey).
			Wrap(err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, objectKey), nil
}

// S3Options configures NewS3Client.
type S3Options struct {
	// Region is the AWS region. If empty, the region comes from the
	// environment or the shared config files.
	Region string

	// Endpoint overrides the service endpoint, for S3-compatible stores.
	Endpoint string

	// PathStyle addresses buckets as host/bucket instead of bucket.host.
	PathStyle bool
}

// NewS3Client creates an S3 client from the default AWS configuration chain
// (environment, shared config and credentials files, then instance roles).
func NewS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(opts.Region))
	if err != nil {
		return nil, errors.New(errors.CodePublishFailed).
			WithDetail("could not load AWS configuration").
			Wrap(err)
	}
	return s3.NewFromConfig(cfg, withEndpoint(opts.Endpoint), withPathStyle(opts.PathStyle)), nil
}

// withEndpoint points the client at endpoint when it is set.
func withEndpoint(endpoint string) func(*s3.Options) {
	return func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}
}

func withPathStyle(pathStyle bool) func(*s3.Options) {
	return func(o *s3.Options) {
		o.UsePathStyle = pathStyle
	}
}
