package local_fs

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/linkdeck/link-bio-service/pkg/fileurl"

	"github.com/pkg/errors"
)

type Config struct {
	IsEnabled      bool   `yaml:"is-enable" default:"true"`
	HttpfsIsEnable bool   `yaml:"httpfs-is-enable" default:"true"`
	SavePath       string `yaml:"save-path" default:"storage/uploads"`
	CustomPath     string `yaml:"custom-path"`
}

// LocalFS 本地文件系统存储
type LocalFS struct {
	Config *Config
}

func NewClient(conf *Config) (*LocalFS, error) {
	return &LocalFS{Config: conf}, nil
}

func (p *LocalFS) fullPath(pathKey string) string {
	return filepath.Join(p.Config.SavePath, fileurl.PathSuffixCheckAdd(p.Config.CustomPath, "/")+pathKey)
}

// SendFile 将文件流写入本地保存目录
func (p *LocalFS) SendFile(pathKey string, file io.Reader, cType string, modTime time.Time) (string, error) {
	dst := p.fullPath(pathKey)
	if err := fileurl.CreatePath(dst, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	if !modTime.IsZero() {
		_ = os.Chtimes(dst, modTime, modTime)
	}
	return pathKey, nil
}

// SendContent 将字节内容写入本地保存目录
func (p *LocalFS) SendContent(pathKey string, content []byte, modTime time.Time) (string, error) {
	dst := p.fullPath(pathKey)
	if err := fileurl.CreatePath(dst, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	if err := os.WriteFile(dst, content, 0o644); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	if !modTime.IsZero() {
		_ = os.Chtimes(dst, modTime, modTime)
	}
	return pathKey, nil
}

func (p *LocalFS) Delete(pathKey string) error {
	err := os.Remove(p.fullPath(pathKey))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "local_fs")
	}
	return nil
}
