package minio

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/pkg/errors"

	"github.com/linkdeck/link-bio-service/pkg/fileurl"
)

type Config struct {
	IsEnabled       bool   `yaml:"is-enable"`
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
}

// MinIO 通过 S3 兼容接口访问 MinIO 服务
type MinIO struct {
	S3Client *s3.Client
	Config   *Config
}

var clients = make(map[string]*MinIO)

// NewClient 创建 MinIO 存储实例，按 Endpoint 复用已有连接
// MinIO 要求 path-style 访问
func NewClient(conf *Config) (*MinIO, error) {
	key := conf.Endpoint + conf.AccessKeyID
	if clients[key] != nil {
		return clients[key], nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.AccessKeySecret, "")),
		config.WithRegion(conf.Region),
	)
	if err != nil {
		return nil, errors.Wrap(err, "minio")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(conf.Endpoint)
		o.UsePathStyle = true
	})

	clients[key] = &MinIO{
		S3Client: client,
		Config:   conf,
	}
	return clients[key], nil
}

func (p *MinIO) fileKey(pathKey string) string {
	return fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + pathKey
}

// SendFile 上传文件流
func (p *MinIO) SendFile(pathKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	_, err := p.S3Client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(p.Config.BucketName),
		Key:         aws.String(p.fileKey(pathKey)),
		Body:        file,
		ContentType: aws.String(cType),
	})
	if err != nil {
		return "", errors.Wrap(err, "minio")
	}
	return pathKey, nil
}

// SendContent 上传字节内容
func (p *MinIO) SendContent(pathKey string, content []byte, modTime time.Time) (string, error) {
	_, err := p.S3Client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket: aws.String(p.Config.BucketName),
		Key:    aws.String(p.fileKey(pathKey)),
		Body:   bytes.NewReader(content),
	})
	if err != nil {
		return "", errors.Wrap(err, "minio")
	}
	return pathKey, nil
}

func (p *MinIO) Delete(pathKey string) error {
	_, err := p.S3Client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(p.Config.BucketName),
		Key:    aws.String(p.fileKey(pathKey)),
	})
	return errors.Wrap(err, "minio")
}
