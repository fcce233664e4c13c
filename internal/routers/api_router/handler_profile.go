package api_router

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/linkdeck/link-bio-service/internal/app"
	"github.com/linkdeck/link-bio-service/internal/dto"
	"github.com/linkdeck/link-bio-service/internal/middleware"
	pkgapp "github.com/linkdeck/link-bio-service/pkg/app"
	"github.com/linkdeck/link-bio-service/pkg/code"
	apperrors "github.com/linkdeck/link-bio-service/pkg/errors"
)

// ProfileHandler 个人资料 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type ProfileHandler struct {
	*Handler
}

// NewProfileHandler 创建 ProfileHandler 实例
func NewProfileHandler(a *app.App) *ProfileHandler {
	return &ProfileHandler{
		Handler: NewHandler(a),
	}
}

// Get 获取当前用户的个人资料
// 新用户尚未保存资料时返回空数据
func (h *ProfileHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	profile, err := h.App.ProfileService.Get(ctx, uid)
	if err != nil {
		h.logError(ctx, "ProfileHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(profile))
}

// Save 保存当前用户的个人资料
// multipart 表单提交，avatar 字段为可选的暂存头像文件
func (h *ProfileHandler) Save(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ProfileSaveRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ProfileHandler.Save.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	// 头像文件可选，缺省时保留已有头像
	avatar, err := c.FormFile("avatar")
	if err != nil {
		avatar = nil
	}

	ctx := c.Request.Context()

	profile, err := h.App.ProfileService.Save(ctx, uid, params, avatar)
	if err != nil {
		if avatar != nil {
			avatarUploadTotal.WithLabelValues("fail").Inc()
		}
		h.logError(ctx, "ProfileHandler.Save", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	if avatar != nil {
		avatarUploadTotal.WithLabelValues("success").Inc()
	}

	response.ToResponse(code.Success.WithData(profile))
}

// logError 记录错误日志，包含 Trace ID
func (h *ProfileHandler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", traceID),
	)
}
