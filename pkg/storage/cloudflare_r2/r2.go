package cloudflare_r2

import (
	"bytes"
	"context"
	"fmt"
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
	AccountID       string `yaml:"account-id"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
}

// R2 Cloudflare R2 存储，复用 S3 兼容接口
type R2 struct {
	S3Client *s3.Client
	Config   *Config
}

var clients = make(map[string]*R2)

// NewClient 创建 R2 存储实例，按 AccessKeyID 复用已有连接
func NewClient(conf *Config) (*R2, error) {
	if clients[conf.AccessKeyID] != nil {
		return clients[conf.AccessKeyID], nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(conf.AccessKeyID, conf.AccessKeySecret, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "cloudflare_r2")
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", conf.AccountID))
	})

	clients[conf.AccessKeyID] = &R2{
		S3Client: client,
		Config:   conf,
	}
	return clients[conf.AccessKeyID], nil
}

func (p *R2) fileKey(pathKey string) string {
	return fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + pathKey
}

// SendFile 上传文件流
func (p *R2) SendFile(pathKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	_, err := p.S3Client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(p.Config.BucketName),
		Key:         aws.String(p.fileKey(pathKey)),
		Body:        file,
		ContentType: aws.String(cType),
	})
	if err != nil {
		return "", errors.Wrap(err, "cloudflare_r2")
	}
	return pathKey, nil
}

// SendContent 上传字节内容
func (p *R2) SendContent(pathKey string, content []byte, modTime time.Time) (string, error) {
	_, err := p.S3Client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket: aws.String(p.Config.BucketName),
		Key:    aws.String(p.fileKey(pathKey)),
		Body:   bytes.NewReader(content),
	})
	if err != nil {
		return "", errors.Wrap(err, "cloudflare_r2")
	}
	return pathKey, nil
}

func (p *R2) Delete(pathKey string) error {
	_, err := p.S3Client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(p.Config.BucketName),
		Key:    aws.String(p.fileKey(pathKey)),
	})
	return errors.Wrap(err, "cloudflare_r2")
}
