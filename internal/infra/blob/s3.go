package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/pilotdata/project/internal/config"
)

// ErrBucketNotFound is returned when the addressed bucket does not exist.
var ErrBucketNotFound = errors.New("bucket not found")

// Storage performs bucket and object operations against an S3 compatible
// endpoint.
type Storage struct {
	Client   *s3.Client
	Uploader *manager.Uploader
	region   string
}

// AWSConfig loads the SDK configuration with the static credentials of cfg
// when they are set.
func AWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	loadOpts := []func(*awsCfg.LoadOptions) error{
		awsCfg.WithRegion(cfg.S3.Region),
	}
	if cfg.S3.AccessKey != "" && cfg.S3.SecretKey != "" {
		loadOpts = append(loadOpts, awsCfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3.AccessKey, cfg.S3.SecretKey, ""),
		))
	}
	return awsCfg.LoadDefaultConfig(ctx, loadOpts...)
}

// Endpoint normalizes the configured endpoint into an absolute URL.
func Endpoint(raw string) (string, bool) {
	ep := strings.TrimSpace(raw)
	if ep == "" {
		return "", false
	}
	if !strings.HasPrefix(ep, "http://") && !strings.HasPrefix(ep, "https://") {
		ep = "https://" + ep
	}
	u, err := url.Parse(ep)
	if err != nil {
		return "", false
	}
	return strings.TrimRight(u.String(), "/"), true
}

func NewS3(ctx context.Context, cfg *config.Config) (*Storage, error) {
	acfg, err := AWSConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(acfg, func(o *s3.Options) {
		if ep, ok := Endpoint(cfg.S3.Endpoint); ok {
			o.BaseEndpoint = aws.String(ep)
		}
		o.UsePathStyle = cfg.S3.UsePathStyle
	})

	return &Storage{
		Client:   client,
		Uploader: manager.NewUploader(client),
		region:   cfg.S3.Region,
	}, nil
}

func isBucketNotFound(err error) bool {
	var nsb *s3types.NoSuchBucket
	if errors.As(err, &nsb) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchBucket"
}

func (s *Storage) CreateBucket(ctx context.Context, name string) error {
	in := &s3.CreateBucketInput{Bucket: aws.String(name)}
	if s.region != "" && s.region != "us-east-1" {
		in.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(s.region),
		}
	}
	if _, err := s.Client.CreateBucket(ctx, in); err != nil {
		return fmt.Errorf("create bucket %s: %w", name, err)
	}
	return nil
}

func (s *Storage) EnableVersioning(ctx context.Context, name string) error {
	_, err := s.Client.PutBucketVersioning(ctx, &s3.PutBucketVersioningInput{
		Bucket: aws.String(name),
		VersioningConfiguration: &s3types.VersioningConfiguration{
			Status: s3types.BucketVersioningStatusEnabled,
		},
	})
	if err != nil {
		return fmt.Errorf("enable versioning on %s: %w", name, err)
	}
	return nil
}

// EnableEncryption turns on SSE-S3 default encryption for the bucket.
func (s *Storage) EnableEncryption(ctx context.Context, name string) error {
	_, err := s.Client.PutBucketEncryption(ctx, &s3.PutBucketEncryptionInput{
		Bucket: aws.String(name),
		ServerSideEncryptionConfiguration: &s3types.ServerSideEncryptionConfiguration{
			Rules: []s3types.ServerSideEncryptionRule{{
				ApplyServerSideEncryptionByDefault: &s3types.ServerSideEncryptionByDefault{
					SSEAlgorithm: s3types.ServerSideEncryptionAes256,
				},
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("enable encryption on %s: %w", name, err)
	}
	return nil
}

// RemoveBucket deletes an empty bucket. A missing bucket yields
// ErrBucketNotFound.
func (s *Storage) RemoveBucket(ctx context.Context, name string) error {
	if _, err := s.Client.DeleteBucket(ctx, &s3.DeleteBucketInput{Bucket: aws.String(name)}); err != nil {
		if isBucketNotFound(err) {
			return fmt.Errorf("remove bucket %s: %w", name, ErrBucketNotFound)
		}
		return fmt.Errorf("remove bucket %s: %w", name, err)
	}
	return nil
}

// PutObject uploads body under bucket/key. A missing bucket yields
// ErrBucketNotFound.
func (s *Storage) PutObject(ctx context.Context, bucket, key string, body io.Reader, contentType string) error {
	_, err := s.Uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		if isBucketNotFound(err) {
			return fmt.Errorf("put %s/%s: %w", bucket, key, ErrBucketNotFound)
		}
		return fmt.Errorf("put %s/%s: %w", bucket, key, err)
	}
	return nil
}
