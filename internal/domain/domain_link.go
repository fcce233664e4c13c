package domain

import "time"

// Link 用户外链领域模型
// Position 是展示顺序，保存成功后保持 0..n-1 连续
type Link struct {
	ID        string
	UID       int64
	Platform  string
	Title     string
	URL       string
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPersisted 判断链接是否已经持久化（持久化后 ID 不再变化）
func (l *Link) IsPersisted() bool {
	return l.ID != ""
}

// PositionUpdate 批量排序的单条更新
type PositionUpdate struct {
	ID       string
	Position int
}
