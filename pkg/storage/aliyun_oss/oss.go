package aliyun_oss

import (
	"bytes"
	"io"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/pkg/errors"

	"github.com/linkdeck/link-bio-service/pkg/fileurl"
)

type Config struct {
	IsEnabled       bool   `yaml:"is-enable"`
	Endpoint        string `yaml:"endpoint"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	CustomPath      string `yaml:"custom-path"`
}

// OSS 阿里云对象存储
type OSS struct {
	Client *oss.Client
	Bucket *oss.Bucket
	Config *Config
}

var clients = make(map[string]*OSS)

// NewClient 创建 OSS 存储实例，按 AccessKeyID 复用已有连接
func NewClient(conf *Config) (*OSS, error) {
	if clients[conf.AccessKeyID] != nil {
		return clients[conf.AccessKeyID], nil
	}

	client, err := oss.New(conf.Endpoint, conf.AccessKeyID, conf.AccessKeySecret)
	if err != nil {
		return nil, errors.Wrap(err, "aliyun_oss")
	}
	bucket, err := client.Bucket(conf.BucketName)
	if err != nil {
		return nil, errors.Wrap(err, "aliyun_oss")
	}

	clients[conf.AccessKeyID] = &OSS{
		Client: client,
		Bucket: bucket,
		Config: conf,
	}
	return clients[conf.AccessKeyID], nil
}

func (p *OSS) fileKey(pathKey string) string {
	return fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/") + pathKey
}

// SendFile 上传文件流
func (p *OSS) SendFile(pathKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	if err := p.Bucket.PutObject(p.fileKey(pathKey), file, oss.ContentType(cType)); err != nil {
		return "", errors.Wrap(err, "aliyun_oss")
	}
	return pathKey, nil
}

// SendContent 上传字节内容
func (p *OSS) SendContent(pathKey string, content []byte, modTime time.Time) (string, error) {
	if err := p.Bucket.PutObject(p.fileKey(pathKey), bytes.NewReader(content)); err != nil {
		return "", errors.Wrap(err, "aliyun_oss")
	}
	return pathKey, nil
}

func (p *OSS) Delete(pathKey string) error {
	return errors.Wrap(p.Bucket.DeleteObject(p.fileKey(pathKey)), "aliyun_oss")
}
