package storage

import (
	"context"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/outlaw-hq/admin-api/internal/config"
)

const presignTTL = 15 * time.Minute

// Store hands out presigned URLs for the user/idea artifacts kept in S3
// (avatars, CVs, pitch decks, voice notes). The API itself never proxies
// object bytes.
type Store struct {
	bucket    string
	presigner *s3.PresignClient
}

func New(cfg *config.Config) *Store {
	awsCfg := aws.Config{
		Region: cfg.S3Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKeyID,
			cfg.S3SecretAccessKey,
			"",
		),
	}

	client := s3.NewFromConfig(awsCfg)

	return &Store{
		bucket:    cfg.S3Bucket,
		presigner: s3.NewPresignClient(client),
	}
}

// DownloadURL presigns a GET for the stored key. Empty keys stay empty and
// absolute URLs (rows written before the move to private buckets) pass
// through untouched.
func (s *Store) DownloadURL(ctx context.Context, key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return key, nil
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// UploadURL presigns a PUT so the admin frontend can replace an artifact
// without routing the file through the API.
func (s *Store) UploadURL(ctx context.Context, key, contentType string) (string, error) {
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(presignTTL))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
