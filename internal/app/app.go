// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"
	"gorm.io/gorm"

	"github.com/linkdeck/link-bio-service/internal/dao"
	"github.com/linkdeck/link-bio-service/internal/domain"
	"github.com/linkdeck/link-bio-service/internal/service"
	pkgapp "github.com/linkdeck/link-bio-service/pkg/app"
	"github.com/linkdeck/link-bio-service/pkg/storage"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config  *AppConfig
	logger  *zap.Logger
	DB      *gorm.DB
	Dao     *dao.Dao
	Storage storage.Storager

	// StartTime 进程启动时间，用于健康检查
	StartTime time.Time

	// Repository 层
	UserRepo    domain.UserRepository
	ProfileRepo domain.ProfileRepository
	LinkRepo    domain.LinkRepository

	// Service 层
	UserService    service.UserService
	LinkService    service.LinkService
	ProfileService service.ProfileService
	PreviewService service.PreviewService

	// 基础设施组件
	TokenManager pkgapp.TokenManager

	// 关闭控制
	shutdownCh chan struct{}
	wg         sync.WaitGroup

	// 版本检查信息
	checkVersionMu sync.RWMutex
	checkVersion   pkgapp.CheckVersionInfo
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:     cfg,
		logger:     logger,
		DB:         db,
		StartTime:  time.Now(),
		shutdownCh: make(chan struct{}),
	}

	// 分页参数跟随配置
	pkgapp.DefaultPaginationConfig = pkgapp.PaginationConfig{
		DefaultPageSize: cfg.App.DefaultPageSize,
		MaxPageSize:     cfg.App.MaxPageSize,
	}

	// 初始化 DAO（使用依赖注入）
	a.Dao = dao.New(db,
		dao.WithConfig(cfg.GetDatabaseConfig()),
		dao.WithLogger(logger),
	)

	// 初始化存储后端
	storageConf := cfg.Storage
	if storageConf.Type == "" {
		storageConf.Type = storage.LOCAL
	}
	if storageConf.Type == storage.LOCAL && cfg.App.UploadSavePath != "" {
		storageConf.SavePath = cfg.App.UploadSavePath
	}
	store, err := storage.NewClient(&storageConf)
	if err != nil {
		return nil, fmt.Errorf("init storage backend: %w", err)
	}
	a.Storage = store

	// 初始化 TokenManager
	a.TokenManager = pkgapp.NewTokenManager(pkgapp.TokenConfig{
		SecretKey: cfg.Security.AuthTokenKey,
		Issuer:    pkgapp.DefaultTokenIssuer,
		Expiry:    cfg.GetTokenExpiry(),
	})

	// 初始化 Repository 层
	a.UserRepo = dao.NewUserRepository(a.Dao)
	a.ProfileRepo = dao.NewProfileRepository(a.Dao)
	a.LinkRepo = dao.NewLinkRepository(a.Dao)

	// 创建 ServiceConfig（从 AppConfig 提取 Service 层需要的配置）
	svcConfig := &service.ServiceConfig{
		User: service.UserServiceConfig{
			RegisterIsEnable: cfg.User.RegisterIsEnable,
		},
		Upload: service.UploadServiceConfig{
			AvatarMaxSizeMB: cfg.Upload.AvatarMaxSizeMB,
			AvatarAllowExts: cfg.Upload.AvatarAllowExts,
			PublicURL:       cfg.Upload.PublicURL,
		},
	}

	// 初始化 Service 层（依赖注入）
	a.UserService = service.NewUserService(a.UserRepo, a.TokenManager, logger, svcConfig)
	a.LinkService = service.NewLinkService(a.LinkRepo, logger)
	a.ProfileService = service.NewProfileService(a.ProfileRepo, a.Storage, logger, svcConfig)
	a.PreviewService = service.NewPreviewService(a.ProfileService, a.LinkService)

	logger.Info("App container initialized successfully",
		zap.String("storageType", string(storageConf.Type)),
		zap.String("databaseType", cfg.Database.Type))

	return a, nil
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// CheckVersion 获取版本检查信息
func (a *App) CheckVersion() pkgapp.CheckVersionInfo {
	a.checkVersionMu.RLock()
	defer a.checkVersionMu.RUnlock()

	cv := a.checkVersion

	if !cv.VersionIsNew {
		cv.VersionNewName = ""
	}

	// 返回给客户端的版本号不带 v 前缀
	cv.VersionNewName = strings.TrimPrefix(cv.VersionNewName, "v")
	if cv.VersionNewLink == "" && cv.VersionNewName != "" {
		cv.VersionNewLink = "https://github.com/linkdeck/link-bio-service/releases/tag/" + cv.VersionNewName
	}

	return cv
}

// SetCheckVersionInfo 设置版本检查信息
// 与当前运行版本比较后记录是否存在更新
func (a *App) SetCheckVersionInfo(latest string) {
	a.checkVersionMu.Lock()
	defer a.checkVersionMu.Unlock()

	v1 := Version
	if !strings.HasPrefix(v1, "v") {
		v1 = "v" + v1
	}
	v2 := latest
	if !strings.HasPrefix(v2, "v") {
		v2 = "v" + v2
	}

	a.checkVersion = pkgapp.CheckVersionInfo{
		VersionIsNew:   semver.Compare(v2, v1) > 0,
		VersionNewName: latest,
	}
}

// GetAuthTokenKey 获取 Token 密钥
func (a *App) GetAuthTokenKey() string {
	return a.config.Security.AuthTokenKey
}

// IsProductionMode 是否为生产模式
// 根据日志配置中的 Production 字段判断
func (a *App) IsProductionMode() bool {
	return a.config.Log.Production
}

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown 优雅关闭应用容器
// ctx 用于控制关闭超时，如果为 nil 则使用默认 30 秒超时
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("App container shutting down...")

	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
	}

	select {
	case <-a.shutdownCh:
		// 已经关闭
		return nil
	default:
		close(a.shutdownCh)
	}

	var errs []error

	// 等待所有后台操作完成
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		a.logger.Info("All background operations completed")
	case <-ctx.Done():
		a.logger.Warn("Shutdown timeout waiting for background operations")
		errs = append(errs, fmt.Errorf("background operations timeout: %w", ctx.Err()))
	}

	if err := a.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		a.logger.Warn("App container shutdown completed with errors",
			zap.Int("errorCount", len(errs)))
		return fmt.Errorf("shutdown completed with %d errors: %v", len(errs), errs)
	}

	a.logger.Info("App container shutdown completed successfully")
	return nil
}

// IsShuttingDown 检查应用是否正在关闭
func (a *App) IsShuttingDown() bool {
	select {
	case <-a.shutdownCh:
		return true
	default:
		return false
	}
}

// ShutdownCh 返回关闭信号通道（用于监听关闭事件）
func (a *App) ShutdownCh() <-chan struct{} {
	return a.shutdownCh
}

// TrackOperation 跟踪后台操作（用于优雅关闭时等待）
// 返回一个函数，在操作完成时调用
func (a *App) TrackOperation() func() {
	a.wg.Add(1)
	return func() {
		a.wg.Done()
	}
}
