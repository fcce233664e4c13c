package fileurl

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// IsDir determines if the given path is a directory
// IsDir 判断所给路径是否为文件夹
func IsDir(path string) bool {
	s, err := os.Stat(path)
	if err != nil {
		return false
	}
	return s.IsDir()
}

// GetFileExt gets file extension
// GetFileExt 获取文件后缀
func GetFileExt(name string) string {
	return path.Ext(name)
}

// IsContainExt determines if file extension is within the allowed range
// IsContainExt 判断文件后缀是否在允许范围内
func IsContainExt(name string, allowExts []string) bool {
	ext := strings.ToUpper(GetFileExt(name))
	for _, allowExt := range allowExts {
		if strings.ToUpper(allowExt) == ext {
			return true
		}
	}
	return false
}

// IsExist determines if the given path exists
// IsExist 判断所给路径是否存在
func IsExist(dst string) bool {
	_, err := os.Stat(dst)
	if err != nil {
		return os.IsExist(err)
	}
	return true
}

// CreatePath creates the parent directory of a path
// CreatePath 创建路径的父目录
func CreatePath(dst string, perm os.FileMode) error {
	dir := filepath.Dir(dst)
	return os.MkdirAll(dir, perm)
}

// PathSuffixCheckAdd checks path suffix, adds it if not exists
// PathSuffixCheckAdd 检查路径后缀，如果没有则添加
func PathSuffixCheckAdd(path string, suffix string) string {
	if path == "" {
		return path
	}
	if !strings.HasSuffix(path, suffix) {
		path = path + suffix
	}
	return path
}
