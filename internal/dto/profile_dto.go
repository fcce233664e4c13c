package dto

import "github.com/linkdeck/link-bio-service/pkg/timex"

// ProfileSaveRequest 保存个人资料请求参数（multipart 表单，头像文件单独读取）
type ProfileSaveRequest struct {
	FirstName string `json:"firstName" form:"firstName" binding:"required"`
	LastName  string `json:"lastName" form:"lastName" binding:"required"`
	Email     string `json:"email" form:"email" binding:"omitempty,email"`
}

// ProfileDTO 个人资料数据传输对象
type ProfileDTO struct {
	ID        int64      `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	AvatarURL string     `json:"avatarUrl"`
	CreatedAt timex.Time `json:"createdAt"`
	UpdatedAt timex.Time `json:"updatedAt"`
}

// PreviewDTO 公开预览载荷：个人资料 + 可见链接
type PreviewDTO struct {
	Profile *ProfileDTO `json:"profile"`
	Links   []*LinkDTO  `json:"links"`
}
