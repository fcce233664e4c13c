package model

import "github.com/linkdeck/link-bio-service/pkg/timex"

const TableNameProfile = "profile"

// Profile mapped from table <profile>
// 每个用户至多一行，uid 上有唯一索引
type Profile struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id" form:"id"`
	UID       int64      `gorm:"column:uid;not null;uniqueIndex:idx_profile_uid" json:"uid" form:"uid"`
	FirstName string     `gorm:"column:first_name" json:"firstName" form:"firstName"`
	LastName  string     `gorm:"column:last_name" json:"lastName" form:"lastName"`
	Email     string     `gorm:"column:email" json:"email" form:"email"`
	AvatarURL string     `gorm:"column:avatar_url" json:"avatarUrl" form:"avatarUrl"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Profile's table name
func (*Profile) TableName() string {
	return TableNameProfile
}
