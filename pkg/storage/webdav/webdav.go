package webdav

import (
	"io"
	"path"
	"time"

	"github.com/pkg/errors"
	"github.com/studio-b12/gowebdav"

	"github.com/linkdeck/link-bio-service/pkg/fileurl"
)

type Config struct {
	IsEnabled  bool   `yaml:"is-enable"`
	Endpoint   string `yaml:"endpoint"`
	Path       string `yaml:"path"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	CustomPath string `yaml:"custom-path"`
}

// WebDAV 客户端
type WebDAV struct {
	Client *gowebdav.Client
	Config *Config
}

var clients = make(map[string]*WebDAV)

// NewClient 创建 WebDAV 客户端实例，按连接信息复用
func NewClient(conf *Config) (*WebDAV, error) {
	key := conf.Endpoint + conf.Path + conf.User + conf.CustomPath
	if clients[key] != nil {
		return clients[key], nil
	}

	c := gowebdav.NewClient(conf.Endpoint, conf.User, conf.Password)
	if err := c.Connect(); err != nil {
		return nil, errors.Wrap(err, "webdav")
	}

	clients[key] = &WebDAV{
		Client: c,
		Config: conf,
	}
	return clients[key], nil
}

func (p *WebDAV) fileKey(pathKey string) string {
	return path.Join(p.Config.Path, fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/")+pathKey)
}

// SendFile 上传文件流
func (p *WebDAV) SendFile(pathKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	key := p.fileKey(pathKey)
	if err := p.Client.MkdirAll(path.Dir(key), 0o755); err != nil {
		return "", errors.Wrap(err, "webdav")
	}
	if err := p.Client.WriteStream(key, file, 0o644); err != nil {
		return "", errors.Wrap(err, "webdav")
	}
	return pathKey, nil
}

// SendContent 上传字节内容
func (p *WebDAV) SendContent(pathKey string, content []byte, modTime time.Time) (string, error) {
	key := p.fileKey(pathKey)
	if err := p.Client.MkdirAll(path.Dir(key), 0o755); err != nil {
		return "", errors.Wrap(err, "webdav")
	}
	if err := p.Client.Write(key, content, 0o644); err != nil {
		return "", errors.Wrap(err, "webdav")
	}
	return pathKey, nil
}

func (p *WebDAV) Delete(pathKey string) error {
	return errors.Wrap(p.Client.Remove(p.fileKey(pathKey)), "webdav")
}
