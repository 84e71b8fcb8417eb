package s3

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"locustbot/internal/objstore"
)

// Store uploads objects to an S3-compatible storage endpoint
type Store struct {
	client  *awss3.Client
	bucket  string
	baseURL string
}

// New creates a Store talking to the given S3-compatible endpoint with
// static credentials. baseURL is the public base used to derive retrieval
// URLs, which is distinct from the S3 API endpoint.
func New(ctx context.Context, endpoint, region, accessKey, secretKey, bucket, baseURL string) (*Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKey, secretKey, "",
		)))
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	client := awss3.NewFromConfig(cfg, func(o *awss3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &Store{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

// Upload puts the object into the bucket and returns its public URL.
// PutObject overwrites an existing object of the same name.
func (s *Store) Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectName),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", objectName, err)
	}
	return objstore.PublicURL(s.baseURL, s.bucket, objectName), nil
}
