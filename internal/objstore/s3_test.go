package objstore

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() S3Config {
	return S3Config{
		Bucket:       "vault",
		Region:       "us-east-1",
		BaseEndpoint: "http://127.0.0.1:9000",
		AccessKey:    "admin",
		SecretKey:    "secretpassword",
	}
}

func TestNewS3Presigner_RequiresBucket(t *testing.T) {
	c := testConfig()
	c.Bucket = ""
	_, err := NewS3Presigner(context.Background(), c)
	require.Error(t, err)
}

func TestNewS3Presigner_ConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = orig })

	boom := errors.New("boom")
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, boom
	}

	_, err := NewS3Presigner(context.Background(), testConfig())
	require.ErrorIs(t, err, boom)
}

func TestPresignPut_PathStyleURL(t *testing.T) {
	p, err := NewS3Presigner(context.Background(), testConfig())
	require.NoError(t, err)

	raw, err := p.PresignPut(context.Background(), "backups/2026/01/02/x.json")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", u.Host)
	assert.Equal(t, "/vault/backups/2026/01/02/x.json", u.Path)
	assert.NotEmpty(t, u.Query().Get("X-Amz-Signature"))
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
}

func TestPresignPut_Error(t *testing.T) {
	orig := presignPutObject
	t.Cleanup(func() { presignPutObject = orig })

	boom := errors.New("presign failed")
	presignPutObject = func(*s3.PresignClient, context.Context, *s3.PutObjectInput, ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, boom
	}

	p, err := NewS3Presigner(context.Background(), testConfig())
	require.NoError(t, err)

	_, err = p.PresignPut(context.Background(), "k")
	require.ErrorIs(t, err, boom)
}
