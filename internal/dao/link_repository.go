package dao

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/linkdeck/link-bio-service/internal/domain"
	"github.com/linkdeck/link-bio-service/internal/model"
	"github.com/linkdeck/link-bio-service/pkg/timex"
)

// linkRepository 实现 domain.LinkRepository 接口
type linkRepository struct {
	dao *Dao
}

// NewLinkRepository 创建 LinkRepository 实例
func NewLinkRepository(dao *Dao) domain.LinkRepository {
	return &linkRepository{dao: dao}
}

var _ domain.LinkRepository = (*linkRepository)(nil)

func (r *linkRepository) db() *gorm.DB {
	return r.dao.useModel("Link")
}

func (r *linkRepository) toDomain(m *model.Link) *domain.Link {
	if m == nil {
		return nil
	}
	return &domain.Link{
		ID:        m.ID,
		UID:       m.UID,
		Platform:  m.Platform,
		Title:     m.Title,
		URL:       m.URL,
		Position:  m.Position,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
}

func (r *linkRepository) toModel(l *domain.Link) *model.Link {
	if l == nil {
		return nil
	}
	return &model.Link{
		ID:        l.ID,
		UID:       l.UID,
		Platform:  l.Platform,
		Title:     l.Title,
		URL:       l.URL,
		Position:  l.Position,
		CreatedAt: timex.Time(l.CreatedAt),
		UpdatedAt: timex.Time(l.UpdatedAt),
	}
}

// ListByUID 获取用户全部链接，按 Position 升序
func (r *linkRepository) ListByUID(ctx context.Context, uid int64) ([]*domain.Link, error) {
	var ms []*model.Link
	err := r.db().WithContext(ctx).
		Where("uid = ?", uid).
		Order("position ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	links := make([]*domain.Link, 0, len(ms))
	for _, m := range ms {
		links = append(links, r.toDomain(m))
	}
	return links, nil
}

// GetByID 获取用户的单条链接
func (r *linkRepository) GetByID(ctx context.Context, id string, uid int64) (*domain.Link, error) {
	var m model.Link
	err := r.db().WithContext(ctx).
		Where("id = ? AND uid = ?", id, uid).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建链接，ID 为空时生成新的 uuid
func (r *linkRepository) Create(ctx context.Context, link *domain.Link) (*domain.Link, error) {
	m := r.toModel(link)
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	m.CreatedAt = timex.Now()
	m.UpdatedAt = timex.Now()

	if err := r.db().WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Update 更新链接内容字段，Position 仅通过 UpdatePositions 变更
func (r *linkRepository) Update(ctx context.Context, link *domain.Link) (*domain.Link, error) {
	err := r.db().WithContext(ctx).
		Model(&model.Link{}).
		Where("id = ? AND uid = ?", link.ID, link.UID).
		Updates(map[string]interface{}{
			"platform":   link.Platform,
			"title":      link.Title,
			"url":        link.URL,
			"updated_at": timex.Now(),
		}).Error
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, link.ID, link.UID)
}

// Delete 删除链接
func (r *linkRepository) Delete(ctx context.Context, id string, uid int64) error {
	result := r.db().WithContext(ctx).
		Where("id = ? AND uid = ?", id, uid).
		Delete(&model.Link{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdatePositions 事务内批量更新链接位置，任一条失败整体回滚
func (r *linkRepository) UpdatePositions(ctx context.Context, uid int64, updates []domain.PositionUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := timex.Now()
		for _, u := range updates {
			err := tx.Model(&model.Link{}).
				Where("id = ? AND uid = ?", u.ID, uid).
				Updates(map[string]interface{}{
					"position":   u.Position,
					"updated_at": now,
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// ListUIDs 列出拥有链接的全部用户
func (r *linkRepository) ListUIDs(ctx context.Context) ([]int64, error) {
	var uids []int64
	err := r.db().WithContext(ctx).
		Model(&model.Link{}).
		Distinct("uid").
		Pluck("uid", &uids).Error
	if err != nil {
		return nil, err
	}
	return uids, nil
}

// CompactPositions 将用户的链接位置压缩为连续的 0..n-1
// 失败的批量保存可能留下空洞，由后台任务定期修复
func (r *linkRepository) CompactPositions(ctx context.Context, uid int64) (int64, error) {
	var changed int64
	err := r.db().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ms []*model.Link
		if err := tx.Where("uid = ?", uid).Order("position ASC").Find(&ms).Error; err != nil {
			return err
		}
		now := timex.Now()
		for i, m := range ms {
			if m.Position == i {
				continue
			}
			err := tx.Model(&model.Link{}).
				Where("id = ? AND uid = ?", m.ID, uid).
				Updates(map[string]interface{}{
					"position":   i,
					"updated_at": now,
				}).Error
			if err != nil {
				return err
			}
			changed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}
