// Package objstore presigns uploads to an S3-compatible object store
// (AWS S3 or MinIO).
package objstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// seams for tests
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

const defaultPresignExpiry = 15 * time.Minute

type S3Config struct {
	Bucket       string
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
	Expires      time.Duration
}

// S3Presigner issues presigned PUT URLs for a single bucket.
type S3Presigner struct {
	bucket  string
	expires time.Duration
	client  *s3.PresignClient
}

// NewS3Presigner builds a presign client. Static credentials are used when
// both keys are set; otherwise the default AWS credential chain applies.
// A non-empty BaseEndpoint switches to path-style addressing, which MinIO
// requires.
func NewS3Presigner(ctx context.Context, c S3Config) (*S3Presigner, error) {
	if c.Bucket == "" {
		return nil, errors.New("s3 bucket is not set")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(c.Region)}
	if c.AccessKey != "" && c.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, ""),
		))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if c.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(c.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	expires := c.Expires
	if expires <= 0 {
		expires = defaultPresignExpiry
	}

	return &S3Presigner{bucket: c.Bucket, expires: expires, client: s3.NewPresignClient(client)}, nil
}

// PresignPut returns a URL that accepts a single PUT of the object key.
func (p *S3Presigner) PresignPut(ctx context.Context, key string) (string, error) {
	req, err := presignPutObject(p.client, ctx, &s3.PutObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(p.expires))
	if err != nil {
		return "", fmt.Errorf("presign put %s: %w", key, err)
	}
	return req.URL, nil
}
