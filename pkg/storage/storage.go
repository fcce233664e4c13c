// Package storage provides a unified uploader over multiple object
// storage backends. Avatars and other public assets are written
// through the Storager interface regardless of backend.
// storage 包为多种对象存储后端提供统一的上传接口
package storage

import (
	"io"
	"time"

	"github.com/linkdeck/link-bio-service/pkg/code"
	"github.com/linkdeck/link-bio-service/pkg/storage/aliyun_oss"
	"github.com/linkdeck/link-bio-service/pkg/storage/aws_s3"
	"github.com/linkdeck/link-bio-service/pkg/storage/cloudflare_r2"
	"github.com/linkdeck/link-bio-service/pkg/storage/local_fs"
	"github.com/linkdeck/link-bio-service/pkg/storage/minio"
	"github.com/linkdeck/link-bio-service/pkg/storage/webdav"
)

type Type = string

const OSS Type = "oss"
const R2 Type = "r2"
const S3 Type = "s3"
const LOCAL Type = "localfs"
const MinIO Type = "minio"
const WebDAV Type = "webdav"

var StorageTypeMap = map[Type]bool{
	OSS:    true,
	R2:     true,
	S3:     true,
	LOCAL:  true,
	MinIO:  true,
	WebDAV: true,
}

// Config Unified storage configuration
// Config 统一的存储配置
type Config struct {
	Type Type `yaml:"type" default:"localfs"`

	// Common settings
	IsEnabled  bool   `yaml:"is-enable" default:"true"`
	CustomPath string `yaml:"custom-path"`
	// PublicURL 对外访问的基础地址，为空时使用请求 Host 拼接
	PublicURL string `yaml:"public-url"`

	// Cloud Storage (S3/OSS/MinIO/R2)
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	AccountID       string `yaml:"account-id"` // Cloudflare R2 specific

	// WebDAV
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Path     string `yaml:"path"`

	// Local FS
	SavePath       string `yaml:"save-path" default:"storage/uploads"`
	HttpfsIsEnable bool   `yaml:"httpfs-is-enable" default:"true"`
}

// Storager 存储后端统一接口
type Storager interface {
	SendFile(pathKey string, file io.Reader, cType string, modTime time.Time) (string, error)
	SendContent(pathKey string, content []byte, modTime time.Time) (string, error)
	Delete(pathKey string) error
}

// NewClient 根据配置类型创建对应的存储客户端
func NewClient(config *Config) (Storager, error) {
	if config == nil {
		return nil, code.ErrorInvalidStorageType
	}

	switch config.Type {
	case LOCAL:
		return local_fs.NewClient(&local_fs.Config{
			IsEnabled:      config.IsEnabled,
			HttpfsIsEnable: config.HttpfsIsEnable,
			SavePath:       config.SavePath,
			CustomPath:     config.CustomPath,
		})
	case OSS:
		return aliyun_oss.NewClient(&aliyun_oss.Config{
			IsEnabled:       config.IsEnabled,
			Endpoint:        config.Endpoint,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		})
	case R2:
		return cloudflare_r2.NewClient(&cloudflare_r2.Config{
			IsEnabled:       config.IsEnabled,
			AccountID:       config.AccountID,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		})
	case S3:
		return aws_s3.NewClient(&aws_s3.Config{
			IsEnabled:       config.IsEnabled,
			Region:          config.Region,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		})
	case MinIO:
		return minio.NewClient(&minio.Config{
			IsEnabled:       config.IsEnabled,
			Endpoint:        config.Endpoint,
			Region:          config.Region,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		})
	case WebDAV:
		return webdav.NewClient(&webdav.Config{
			IsEnabled:  config.IsEnabled,
			Endpoint:   config.Endpoint,
			Path:       config.Path,
			User:       config.User,
			Password:   config.Password,
			CustomPath: config.CustomPath,
		})
	}
	return nil, code.ErrorInvalidStorageType
}
