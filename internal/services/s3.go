package services

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/marcoviana/awsvault/internal/vault"
)

type S3 struct {
	client *s3.Client
}

func NewS3(sess *vault.Session) *S3 {
	return &S3{client: s3.NewFromConfig(sess.Config())}
}

type Bucket struct {
	Name      string `json:"name"`
	CreatedAt string `json:"created_at,omitempty"`
}

type Object struct {
	Key          string `json:"key"`
	Size         int64  `json:"size"`
	LastModified string `json:"last_modified,omitempty"`
	StorageClass string `json:"storage_class,omitempty"`
}

func (s *S3) ListBuckets(ctx context.Context) ([]Bucket, error) {
	out, err := s.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, err
	}
	buckets := make([]Bucket, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		bucket := Bucket{Name: aws.ToString(b.Name)}
		if b.CreationDate != nil {
			bucket.CreatedAt = b.CreationDate.Format("2006-01-02 15:04:05")
		}
		buckets = append(buckets, bucket)
	}
	return buckets, nil
}

// ListObjects returns up to max objects under prefix. A max of zero
// lets the server default apply.
func (s *S3) ListObjects(ctx context.Context, bucket, prefix string, max int32) ([]Object, error) {
	input := &s3.ListObjectsV2Input{Bucket: aws.String(bucket)}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}
	if max > 0 {
		input.MaxKeys = aws.Int32(max)
	}

	out, err := s.client.ListObjectsV2(ctx, input)
	if err != nil {
		return nil, err
	}
	objects := make([]Object, 0, len(out.Contents))
	for _, o := range out.Contents {
		obj := Object{
			Key:          aws.ToString(o.Key),
			Size:         aws.ToInt64(o.Size),
			StorageClass: string(o.StorageClass),
		}
		if o.LastModified != nil {
			obj.LastModified = o.LastModified.Format("2006-01-02 15:04:05")
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

// BucketRegion resolves the region a bucket lives in. An empty
// LocationConstraint means us-east-1.
func (s *S3) BucketRegion(ctx context.Context, bucket string) (string, error) {
	out, err := s.client.GetBucketLocation(ctx, &s3.GetBucketLocationInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return "", err
	}
	if out.LocationConstraint == "" {
		return "us-east-1", nil
	}
	return string(out.LocationConstraint), nil
}
