package objectstore

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"

	"github.com/edvault/edvault/conf"
)

// S3Provider reads documents out of a private S3 (or S3-compatible)
// bucket using the service's own credentials.
type S3Provider struct {
	client *s3.Client
	bucket string
}

// NewS3Provider builds an S3-backed store from configuration. Credentials
// come from the default AWS chain of the service's execution environment.
func NewS3Provider(ctx context.Context, config conf.StorageConfiguration) (*S3Provider, error) {
	if config.Bucket == "" {
		return nil, errors.New("No bucket configured for the s3 object store")
	}

	opts := []func(*awsconfig.LoadOptions) error{}
	if config.Region != "" {
		opts = append(opts, awsconfig.WithRegion(config.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "loading AWS config")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if config.Endpoint != "" {
			o.BaseEndpoint = aws.String(config.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Provider{
		client: client,
		bucket: config.Bucket,
	}, nil
}

// Download fetches the object at key from the private bucket.
func (p *S3Provider) Download(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	out, err := p.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, 0, errors.Wrapf(err, "downloading object %s", key)
	}
	return out.Body, aws.ToInt64(out.ContentLength), nil
}
