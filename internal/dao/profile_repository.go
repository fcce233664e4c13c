package dao

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/linkdeck/link-bio-service/internal/domain"
	"github.com/linkdeck/link-bio-service/internal/model"
	"github.com/linkdeck/link-bio-service/pkg/timex"
)

// profileRepository 实现 domain.ProfileRepository 接口
type profileRepository struct {
	dao *Dao
}

// NewProfileRepository 创建 ProfileRepository 实例
func NewProfileRepository(dao *Dao) domain.ProfileRepository {
	return &profileRepository{dao: dao}
}

var _ domain.ProfileRepository = (*profileRepository)(nil)

func (r *profileRepository) db() *gorm.DB {
	return r.dao.useModel("Profile")
}

func (r *profileRepository) toDomain(m *model.Profile) *domain.Profile {
	if m == nil {
		return nil
	}
	return &domain.Profile{
		ID:        m.ID,
		UID:       m.UID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		AvatarURL: m.AvatarURL,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
}

func (r *profileRepository) toModel(p *domain.Profile) *model.Profile {
	if p == nil {
		return nil
	}
	return &model.Profile{
		ID:        p.ID,
		UID:       p.UID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		AvatarURL: p.AvatarURL,
		CreatedAt: timex.Time(p.CreatedAt),
		UpdatedAt: timex.Time(p.UpdatedAt),
	}
}

// GetByUID 获取用户的个人资料
// 不存在时透传 gorm.ErrRecordNotFound，由上层判定为合法的空状态
func (r *profileRepository) GetByUID(ctx context.Context, uid int64) (*domain.Profile, error) {
	var m model.Profile
	err := r.db().WithContext(ctx).
		Where("uid = ?", uid).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建个人资料
func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	m := r.toModel(profile)
	m.CreatedAt = timex.Now()
	m.UpdatedAt = timex.Now()

	if err := r.db().WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Update 更新个人资料
func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	m := r.toModel(profile)
	m.UpdatedAt = timex.Now()

	err := r.db().WithContext(ctx).
		Model(&model.Profile{}).
		Where("uid = ?", profile.UID).
		Updates(map[string]interface{}{
			"first_name": m.FirstName,
			"last_name":  m.LastName,
			"email":      m.Email,
			"avatar_url": m.AvatarURL,
			"updated_at": m.UpdatedAt,
		}).Error
	if err != nil {
		return nil, err
	}
	return r.GetByUID(ctx, profile.UID)
}
