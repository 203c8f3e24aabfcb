package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 30 * time.Second

// ErrPublisherNotConfigured is returned when bucket or credentials are missing
var ErrPublisherNotConfigured = errors.New("S3 publisher not configured")

// S3Settings holds the connection details for an S3 compatible store
type S3Settings struct {
	AccessKey string
	SecretKey string
	Endpoint  string
	Region    string
	Bucket    string
}

// Configured reports whether enough settings are present to upload
func (s S3Settings) Configured() bool {
	return s.Bucket != "" && s.AccessKey != "" && s.SecretKey != ""
}

// objectPutter is the subset of the S3 client the publisher uses
type objectPutter interface {
	PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error)
}

// S3Publisher uploads rendered images to a bucket
type S3Publisher struct {
	bucket string
	client objectPutter
	logger core.Logger
}

// NewS3Publisher creates a publisher with path-style addressing so custom
// endpoints (MinIO, R2, Spaces) work alongside AWS
func NewS3Publisher(settings S3Settings, logger core.Logger) (*S3Publisher, error) {
	if !settings.Configured() {
		return nil, ErrPublisherNotConfigured
	}

	s3Config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(settings.AccessKey, settings.SecretKey, ""),
		Region:           aws.String(settings.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if settings.Endpoint != "" {
		s3Config.Endpoint = aws.String(settings.Endpoint)
	}

	sess, err := session.NewSession(s3Config)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return newS3Publisher(settings.Bucket, s3.New(sess), logger), nil
}

func newS3Publisher(bucket string, client objectPutter, logger core.Logger) *S3Publisher {
	return &S3Publisher{bucket: bucket, client: client, logger: logger}
}

// Publish uploads data under key with the given content type
func (p *S3Publisher) Publish(ctx context.Context, key string, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	size := int64(len(data))
	_, err := p.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	if p.logger != nil {
		p.logger.Printf("Uploaded %s to s3://%s (%d bytes)\n", key, p.bucket, size)
	}
	return nil
}
