package api_router

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/linkdeck/link-bio-service/internal/app"
	"github.com/linkdeck/link-bio-service/internal/middleware"
	pkgapp "github.com/linkdeck/link-bio-service/pkg/app"
	"github.com/linkdeck/link-bio-service/pkg/code"
	apperrors "github.com/linkdeck/link-bio-service/pkg/errors"
)

// PreviewHandler 预览页 API 路由处理器
type PreviewHandler struct {
	*Handler
}

// NewPreviewHandler 创建 PreviewHandler 实例
func NewPreviewHandler(a *app.App) *PreviewHandler {
	return &PreviewHandler{
		Handler: NewHandler(a),
	}
}

// Get 聚合当前用户的个人资料与链接列表
func (h *PreviewHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	preview, err := h.App.PreviewService.Get(ctx, uid)
	if err != nil {
		h.logError(ctx, "PreviewHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(preview))
}

// logError 记录错误日志，包含 Trace ID
func (h *PreviewHandler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", traceID),
	)
}
