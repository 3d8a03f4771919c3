// Package objectstore uploads generated comics to S3 compatible storage.
package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// presigned GET links are capped at seven days by SigV4
const presignExpiry = 7 * 24 * time.Hour

type Options struct {
	Bucket        string
	Region        string
	Endpoint      string // custom endpoint (minio, r2); empty uses AWS
	AccessKey     string // empty uses the default credential chain
	SecretKey     string
	PublicBaseURL string // when set, objects are addressed as PublicBaseURL/key
}

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// stores images in a single bucket
type S3Store struct {
	client        putObjectAPI
	presign       func(ctx context.Context, bucket, key string) (string, error)
	bucket        string
	publicBaseURL string
}

// allows tests to swap the AWS config loader
var loadDefaultAWSConfig = config.LoadDefaultConfig

func NewS3(ctx context.Context, opts Options) (*S3Store, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(opts.Region),
	}

	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := loadDefaultAWSConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	presignClient := s3.NewPresignClient(client)

	return &S3Store{
		client: client,
		presign: func(ctx context.Context, bucket, key string) (string, error) {
			req, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
				Bucket: aws.String(bucket),
				Key:    aws.String(key),
			}, s3.WithPresignExpires(presignExpiry))
			if err != nil {
				return "", err
			}

			return req.URL, nil
		},
		bucket:        opts.Bucket,
		publicBaseURL: strings.TrimRight(opts.PublicBaseURL, "/"),
	}, nil
}

// uploads data under key and returns a URL a browser can load
func (s *S3Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(s.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key, nil
	}

	url, err := s.presign(ctx, s.bucket, key)
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", key, err)
	}

	return url, nil
}

// returns a date-partitioned object key for a comic image
func ComicKey(now time.Time, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		ext = "png"
	}

	return fmt.Sprintf("comics/%d/%02d/%02d/%s.%s", now.Year(), now.Month(), now.Day(), uuid.New(), ext)
}
