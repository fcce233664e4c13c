package dao

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/linkdeck/link-bio-service/internal/domain"
	"github.com/linkdeck/link-bio-service/internal/model"
	"github.com/linkdeck/link-bio-service/pkg/timex"
)

// userRepository 实现 domain.UserRepository 接口
type userRepository struct {
	dao *Dao
}

// NewUserRepository 创建 UserRepository 实例
func NewUserRepository(dao *Dao) domain.UserRepository {
	return &userRepository{dao: dao}
}

var _ domain.UserRepository = (*userRepository)(nil)

func (r *userRepository) db() *gorm.DB {
	return r.dao.useModel("User")
}

// toDomain 将数据库模型转换为领域模型
func (r *userRepository) toDomain(m *model.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		UID:       m.UID,
		Email:     m.Email,
		Nickname:  m.Nickname,
		Password:  m.Password,
		IsDeleted: m.IsDeleted == 1,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
}

// toModel 将领域模型转换为数据库模型
func (r *userRepository) toModel(user *domain.User) *model.User {
	if user == nil {
		return nil
	}
	isDeleted := int64(0)
	if user.IsDeleted {
		isDeleted = 1
	}
	return &model.User{
		UID:       user.UID,
		Email:     user.Email,
		Nickname:  user.Nickname,
		Password:  user.Password,
		IsDeleted: isDeleted,
		CreatedAt: timex.Time(user.CreatedAt),
		UpdatedAt: timex.Time(user.UpdatedAt),
	}
}

// GetByUID 根据UID获取用户
func (r *userRepository) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	var m model.User
	err := r.db().WithContext(ctx).
		Where("uid = ? AND is_deleted = 0", uid).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByEmail 根据邮箱获取用户
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m model.User
	err := r.db().WithContext(ctx).
		Where("email = ? AND is_deleted = 0", email).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m := r.toModel(user)
	m.CreatedAt = timex.Now()
	m.UpdatedAt = timex.Now()

	if err := r.db().WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// UpdatePassword 更新用户密码
func (r *userRepository) UpdatePassword(ctx context.Context, uid int64, password string) error {
	return r.db().WithContext(ctx).
		Model(&model.User{}).
		Where("uid = ?", uid).
		Updates(map[string]interface{}{
			"password":   password,
			"updated_at": timex.Now(),
		}).Error
}
