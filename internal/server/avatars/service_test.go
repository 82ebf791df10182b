package avatars

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sc "github.com/forumkit/forumkit/internal/server/config"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	cfg := &sc.Config{
		S3Region:       "us-east-1",
		S3RootUser:     "minioadmin",
		S3RootPassword: "minioadmin",
		S3BaseEndpoint: "http://127.0.0.1:9000",
		S3Bucket:       "avatars",
	}
	return NewService(cfg)
}

func stubPresignSeams(t *testing.T) {
	t.Helper()

	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	origNewPre := newS3PresignClient
	origPut := presignPutObject
	origGet := presignGetObject
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		presignPutObject = origPut
		presignGetObject = origGet
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return &s3.PresignClient{}
	}
}

func TestStorageKeyFor(t *testing.T) {
	key1 := StorageKeyFor("u1")
	key2 := StorageKeyFor("u1")

	assert.True(t, strings.HasPrefix(key1, "avatars/u1/"))
	assert.NotEqual(t, key1, key2)
}

func TestGetPresignClient(t *testing.T) {
	svc := newTestService(t)

	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	origNewPre := newS3PresignClient
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "us-east-1", lo.Region)
		return aws.Config{}, nil
	}

	var capturedBaseEndpoint string
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		require.NotNil(t, opts.BaseEndpoint)
		capturedBaseEndpoint = *opts.BaseEndpoint
		return &s3.Client{}
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		require.NotNil(t, c)
		return &s3.PresignClient{}
	}

	pc, err := svc.getPresignClient()
	require.NoError(t, err)
	require.NotNil(t, pc)
	assert.Equal(t, "http://127.0.0.1:9000", capturedBaseEndpoint)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}

	_, err = svc.getPresignClient()
	assert.Error(t, err)
}

func TestGetPresignedPutUrl(t *testing.T) {
	svc := newTestService(t)
	stubPresignSeams(t)

	var capturedBucket, capturedKey string
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		capturedBucket = *in.Bucket
		capturedKey = *in.Key
		return &v4.PresignedHTTPRequest{URL: "http://signed/put"}, nil
	}

	key, url, err := svc.GetPresignedPutUrl(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "http://signed/put", url)
	assert.Equal(t, "avatars", capturedBucket)
	assert.Equal(t, capturedKey, key)
	assert.True(t, strings.HasPrefix(key, "avatars/u1/"))
}

func TestGetPresignedPutUrl_Error(t *testing.T) {
	svc := newTestService(t)
	stubPresignSeams(t)

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("presign-fail")
	}

	_, _, err := svc.GetPresignedPutUrl(context.Background(), "u1")
	assert.Error(t, err)
}

func TestGetPresignedGetUrl(t *testing.T) {
	svc := newTestService(t)
	stubPresignSeams(t)

	var capturedKey string
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		capturedKey = *in.Key
		return &v4.PresignedHTTPRequest{URL: "http://signed/get"}, nil
	}

	url, err := svc.GetPresignedGetUrl(context.Background(), "avatars/u1/x.png")
	require.NoError(t, err)
	assert.Equal(t, "http://signed/get", url)
	assert.Equal(t, "avatars/u1/x.png", capturedKey)
}
