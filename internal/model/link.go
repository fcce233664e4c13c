package model

import "github.com/linkdeck/link-bio-service/pkg/timex"

const TableNameLink = "link"

// Link mapped from table <link>
type Link struct {
	ID        string     `gorm:"column:id;primaryKey;type:varchar(36)" json:"id" form:"id"`
	UID       int64      `gorm:"column:uid;not null;index:idx_link_uid" json:"uid" form:"uid"`
	Platform  string     `gorm:"column:platform;not null" json:"platform" form:"platform"`
	Title     string     `gorm:"column:title" json:"title" form:"title"`
	URL       string     `gorm:"column:url" json:"url" form:"url"`
	Position  int        `gorm:"column:position;not null;default:0" json:"position" form:"position"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;default:NULL;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;type:datetime;default:NULL;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Link's table name
func (*Link) TableName() string {
	return TableNameLink
}
