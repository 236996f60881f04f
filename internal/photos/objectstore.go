package photos

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var ErrNotObjectURI = errors.New("not an s3:// uri for this bucket")

// ObjectStore keeps captured image bytes and hands out readable URLs.
type ObjectStore interface {
	// Put stores data and returns the URI to record in the album.
	Put(ctx context.Context, data []byte, contentType string, takenAt time.Time) (string, error)
	// PresignURL turns a URI returned by Put into a time-limited GET URL.
	PresignURL(ctx context.Context, uri string) (string, error)
}

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type presignAPI interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Store puts photos under progress/<date>/ in one bucket.
type S3Store struct {
	client  s3API
	presign presignAPI
	bucket  string
	ttl     time.Duration
}

var _ ObjectStore = (*S3Store)(nil)

// NewS3Store loads the default AWS credential chain for region.
func NewS3Store(ctx context.Context, bucket, region string, ttl time.Duration) (*S3Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return &S3Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
		ttl:     ttl,
	}, nil
}

func (s *S3Store) Put(ctx context.Context, data []byte, contentType string, takenAt time.Time) (string, error) {
	key := objectKey(takenAt, contentType)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload photo to S3: %w", err)
	}
	return "s3://" + s.bucket + "/" + key, nil
}

func (s *S3Store) PresignURL(ctx context.Context, uri string) (string, error) {
	key, ok := strings.CutPrefix(uri, "s3://"+s.bucket+"/")
	if !ok || key == "" {
		return "", ErrNotObjectURI
	}
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.ttl))
	if err != nil {
		return "", fmt.Errorf("failed to sign request: %w", err)
	}
	return req.URL, nil
}

func objectKey(takenAt time.Time, contentType string) string {
	ext := ".jpg"
	switch contentType {
	case "image/png":
		ext = ".png"
	case "image/heic":
		ext = ".heic"
	case "image/webp":
		ext = ".webp"
	}
	return path.Join("progress", takenAt.UTC().Format("2006-01-02"), uuid.NewString()+ext)
}
