// Package service 实现业务逻辑层
package service

// ServiceConfig Service 层配置，由应用容器从 AppConfig 提取注入
type ServiceConfig struct {
	User   UserServiceConfig
	Upload UploadServiceConfig
}

// UserServiceConfig 用户服务配置
type UserServiceConfig struct {
	// RegisterIsEnable 是否开放注册
	RegisterIsEnable bool
}

// UploadServiceConfig 上传相关配置
type UploadServiceConfig struct {
	// AvatarMaxSizeMB 头像文件大小上限（MB）
	AvatarMaxSizeMB int
	// AvatarAllowExts 允许的头像扩展名
	AvatarAllowExts []string
	// PublicURL 上传文件的公开访问基础地址
	PublicURL string
}
