// Package dao 实现数据访问层
package dao

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/haierkeys/gormTracing"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/linkdeck/link-bio-service/internal/model"
	"github.com/linkdeck/link-bio-service/pkg/fileurl"
)

// DatabaseConfig 数据库配置（从 AppConfig 提取，避免包循环依赖）
type DatabaseConfig struct {
	Type            string
	Path            string
	UserName        string
	Password        string
	Host            string
	Name            string
	TablePrefix     string
	AutoMigrate     bool
	Charset         string
	ParseTime       bool
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	RunMode         string
}

// Dao 数据访问层入口，持有数据库连接并缓存迁移状态
type Dao struct {
	db     *gorm.DB
	config *DatabaseConfig
	logger *zap.Logger

	migrateOnce map[string]*sync.Once
	migrateMu   sync.Mutex
}

// Option 配置选项函数类型
type Option func(*Dao)

// WithConfig 注入数据库配置
func WithConfig(cfg *DatabaseConfig) Option {
	return func(d *Dao) {
		d.config = cfg
	}
}

// WithLogger 注入日志器
func WithLogger(lg *zap.Logger) Option {
	return func(d *Dao) {
		d.logger = lg
	}
}

// New 创建 Dao 实例
func New(db *gorm.DB, opts ...Option) *Dao {
	d := &Dao{
		db:          db,
		logger:      zap.NewNop(),
		migrateOnce: make(map[string]*sync.Once),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DB 获取底层 gorm 连接
func (d *Dao) DB() *gorm.DB {
	return d.db
}

// useModel 按需迁移模型对应的数据表，每个模型仅执行一次
func (d *Dao) useModel(key string) *gorm.DB {
	if d.config == nil || d.config.AutoMigrate {
		d.migrateMu.Lock()
		once, ok := d.migrateOnce[key]
		if !ok {
			once = &sync.Once{}
			d.migrateOnce[key] = once
		}
		d.migrateMu.Unlock()

		once.Do(func() {
			if err := model.AutoMigrate(d.db, key); err != nil {
				d.logger.Error("auto migrate failed", zap.String("model", key), zap.Error(err))
			}
		})
	}
	return d.db
}

// NewDBEngine 创建数据库引擎，支持 sqlite / mysql / postgres
func NewDBEngine(c *DatabaseConfig) (*gorm.DB, error) {
	dialector := userDialector(c)
	if dialector == nil {
		return nil, fmt.Errorf("unsupported database type: %s", c.Type)
	}

	logMode := gormlogger.Silent
	if c.RunMode == "debug" {
		logMode = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logMode),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   c.TablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	if c.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(c.ConnMaxLifetime)
	} else {
		sqlDB.SetConnMaxLifetime(time.Minute * 10)
	}

	_ = db.Use(&gormTracing.OpentracingPlugin{})

	return db, nil
}

func userDialector(c *DatabaseConfig) gorm.Dialector {
	switch c.Type {
	case "mysql":
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName,
			c.Password,
			c.Host,
			c.Name,
			c.Charset,
			c.ParseTime,
		))
	case "postgres":
		return postgres.Open(fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable",
			c.Host,
			c.UserName,
			c.Password,
			c.Name,
		))
	case "sqlite":
		if !fileurl.IsExist(c.Path) {
			_ = fileurl.CreatePath(c.Path, os.ModePerm)
		}
		return sqlite.Open(c.Path)
	}
	return nil
}
