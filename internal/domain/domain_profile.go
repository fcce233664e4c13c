package domain

import "time"

// Profile 用户个人资料领域模型，每用户至多一条
type Profile struct {
	ID        int64
	UID       int64
	FirstName string
	LastName  string
	Email     string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasAvatar 判断是否设置过头像
func (p *Profile) HasAvatar() bool {
	return p.AvatarURL != ""
}
