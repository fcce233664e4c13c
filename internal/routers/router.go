package routers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"

	"github.com/linkdeck/link-bio-service/internal/app"
	"github.com/linkdeck/link-bio-service/internal/middleware"
	"github.com/linkdeck/link-bio-service/internal/routers/api_router"
	"github.com/linkdeck/link-bio-service/pkg/limiter"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/user/login",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
	limiter.BucketRule{
		Key:          "/api/user/register",
		FillInterval: time.Second,
		Capacity:     5,
		Quantum:      5,
	},
)

// NewRouter 创建 HTTP 路由
func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	cfg := appContainer.Config()

	r := gin.New()

	authTokenKey := cfg.Security.AuthTokenKey

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfo(app.Name, appContainer.Version().Version))
		api.Use(middleware.TraceMiddleware())
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		userHandler := api_router.NewUserHandler(appContainer)
		linkHandler := api_router.NewLinkHandler(appContainer)
		profileHandler := api_router.NewProfileHandler(appContainer)
		previewHandler := api_router.NewPreviewHandler(appContainer)
		versionHandler := api_router.NewVersionHandler(appContainer)
		healthHandler := api_router.NewHealthHandler(appContainer)

		api.POST("/user/register", userHandler.Register)
		api.POST("/user/login", userHandler.Login)

		// 无需认证的系统接口
		api.GET("/version", versionHandler.ServerVersion)
		api.GET("/health", healthHandler.Check)

		auth := api.Group("", middleware.UserAuthTokenWithConfig(authTokenKey))

		auth.POST("/user/change_password", userHandler.UserChangePassword)
		auth.GET("/user/info", userHandler.UserInfo)

		auth.GET("/links", linkHandler.List)
		auth.POST("/links", linkHandler.Create)
		auth.PUT("/links/reorder", linkHandler.Reorder)
		auth.POST("/links/save", linkHandler.Save)
		auth.PUT("/links/:id", linkHandler.Update)
		auth.DELETE("/links/:id", linkHandler.Delete)

		auth.GET("/profile", profileHandler.Get)
		auth.POST("/profile", profileHandler.Save)

		auth.GET("/preview", previewHandler.Get)
	}

	// 本地存储模式下直接暴露上传目录
	if cfg.App.UploadSavePath != "" {
		r.StaticFS("/uploads", http.Dir(cfg.App.UploadSavePath))
	}
	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}
