package domain

import "context"

// UserRepository 用户仓储接口
type UserRepository interface {
	// GetByUID 根据UID获取用户
	GetByUID(ctx context.Context, uid int64) (*User, error)

	// GetByEmail 根据邮箱获取用户
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Create 创建用户
	Create(ctx context.Context, user *User) (*User, error)

	// UpdatePassword 更新用户密码
	UpdatePassword(ctx context.Context, uid int64, password string) error
}

// ProfileRepository 个人资料仓储接口
type ProfileRepository interface {
	// GetByUID 获取用户的个人资料，不存在时返回 gorm.ErrRecordNotFound
	GetByUID(ctx context.Context, uid int64) (*Profile, error)

	// Create 创建个人资料
	Create(ctx context.Context, profile *Profile) (*Profile, error)

	// Update 更新个人资料
	Update(ctx context.Context, profile *Profile) (*Profile, error)
}

// LinkRepository 链接仓储接口
type LinkRepository interface {
	// ListByUID 获取用户全部链接，按 Position 升序
	ListByUID(ctx context.Context, uid int64) ([]*Link, error)

	// GetByID 获取用户的单条链接
	GetByID(ctx context.Context, id string, uid int64) (*Link, error)

	// Create 创建链接
	Create(ctx context.Context, link *Link) (*Link, error)

	// Update 更新链接
	Update(ctx context.Context, link *Link) (*Link, error)

	// Delete 删除链接
	Delete(ctx context.Context, id string, uid int64) error

	// UpdatePositions 事务内批量更新链接位置
	UpdatePositions(ctx context.Context, uid int64, updates []PositionUpdate) error

	// ListUIDs 列出拥有链接的全部用户
	ListUIDs(ctx context.Context) ([]int64, error)

	// CompactPositions 将用户的链接位置压缩为连续的 0..n-1，返回修改条数
	CompactPositions(ctx context.Context, uid int64) (int64, error)
}
