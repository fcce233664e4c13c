package dto

import "github.com/linkdeck/link-bio-service/pkg/timex"

// LinkCreateRequest 创建链接请求参数
type LinkCreateRequest struct {
	Platform string `json:"platform" form:"platform" binding:"required"`
	URL      string `json:"url" form:"url" binding:"required,url"`
	Position *int   `json:"position" form:"position"`
}

// LinkUpdateRequest 更新链接请求参数
type LinkUpdateRequest struct {
	Platform string `json:"platform" form:"platform" binding:"required"`
	URL      string `json:"url" form:"url" binding:"required,url"`
}

// LinkReorderRequest 批量排序请求参数
type LinkReorderRequest struct {
	Positions []LinkPosition `json:"positions" binding:"required,min=1,dive"`
}

// LinkPosition 单条链接的位置
type LinkPosition struct {
	ID       string `json:"id" binding:"required"`
	Position int    `json:"position" binding:"min=0"`
}

// LinkSaveRequest 批量对账保存请求：完整的待保存集合（记录 + 标记）
type LinkSaveRequest struct {
	Links     []PendingLink `json:"links" binding:"dive"`
	Reordered bool          `json:"reordered"`
}

// PendingLink 一条携带待保存标记的链接记录
type PendingLink struct {
	ID        string `json:"id"`
	Platform  string `json:"platform" binding:"required"`
	URL       string `json:"url"`
	Position  int    `json:"position" binding:"min=0"`
	New       bool   `json:"isNew"`
	Modified  bool   `json:"isModified"`
	Deleted   bool   `json:"isDeleted"`
	Reordered bool   `json:"isReordered"`
}

// LinkDTO 链接数据传输对象
type LinkDTO struct {
	ID        string     `json:"id"`
	Platform  string     `json:"platform"`
	Title     string     `json:"title"`
	URL       string     `json:"url"`
	Position  int        `json:"position"`
	CreatedAt timex.Time `json:"createdAt"`
	UpdatedAt timex.Time `json:"updatedAt"`
}
