package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// PutObjectAPI 為上傳所需的 S3 能力。
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config 為報表封存設定。
type S3Config struct {
	Bucket string
	Prefix string
	Region string
}

// S3Uploader 將產生的報表封存到 S3。
type S3Uploader struct {
	client PutObjectAPI
	bucket string
	prefix string
}

// NewS3Uploader 以預設 AWS 憑證鏈建立 uploader。
func NewS3Uploader(ctx context.Context, cfg S3Config) (*S3Uploader, error) {
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	log.Printf("s3 uploader ready bucket=%s prefix=%s region=%s", cfg.Bucket, cfg.Prefix, region)
	return NewS3UploaderWithClient(s3.NewFromConfig(awsCfg), cfg.Bucket, cfg.Prefix), nil
}

// NewS3UploaderWithClient 以既有 client 建立 uploader。
func NewS3UploaderWithClient(client PutObjectAPI, bucket, prefix string) *S3Uploader {
	return &S3Uploader{client: client, bucket: bucket, prefix: prefix}
}

// Key 回傳檔名在 bucket 中的物件路徑。
func (u *S3Uploader) Key(filename string) string {
	return path.Join(u.prefix, filename)
}

// Upload 上傳報表並回傳 s3:// 位置。
func (u *S3Uploader) Upload(ctx context.Context, filename string, body []byte) (string, error) {
	key := u.Key(filename)
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(xlsxContentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return fmt.Sprintf("s3://%s/%s", u.bucket, key), nil
}
