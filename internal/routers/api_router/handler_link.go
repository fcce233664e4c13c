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

// LinkHandler 链接 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type LinkHandler struct {
	*Handler
}

// NewLinkHandler 创建 LinkHandler 实例
func NewLinkHandler(a *app.App) *LinkHandler {
	return &LinkHandler{
		Handler: NewHandler(a),
	}
}

// List 获取当前用户的链接列表，按位置升序，带分页
func (h *LinkHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	links, err := h.App.LinkService.List(ctx, uid)
	if err != nil {
		h.logError(ctx, "LinkHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	total := len(links)
	offset := pkgapp.GetPageOffset(pkgapp.GetPage(c), pkgapp.GetPageSize(c))
	if offset > total {
		offset = total
	}
	end := offset + pkgapp.GetPageSize(c)
	if end > total {
		end = total
	}

	response.ToResponseList(code.Success, links[offset:end], total)
}

// Create 创建链接
func (h *LinkHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.LinkCreateRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("LinkHandler.Create.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	link, err := h.App.LinkService.Create(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "LinkHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(link))
}

// Update 更新链接内容
func (h *LinkHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.LinkUpdateRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("LinkHandler.Update.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	id := c.Param("id")
	if id == "" {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("id is required"))
		return
	}

	ctx := c.Request.Context()

	link, err := h.App.LinkService.Update(ctx, uid, id, params)
	if err != nil {
		h.logError(ctx, "LinkHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(link))
}

// Delete 删除链接
func (h *LinkHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	id := c.Param("id")
	if id == "" {
		response.ToResponse(code.ErrorInvalidParams.WithDetails("id is required"))
		return
	}

	ctx := c.Request.Context()

	if err := h.App.LinkService.Delete(ctx, uid, id); err != nil {
		h.logError(ctx, "LinkHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// Reorder 批量更新链接位置
func (h *LinkHandler) Reorder(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.LinkReorderRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("LinkHandler.Reorder.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	if err := h.App.LinkService.Reorder(ctx, uid, params); err != nil {
		h.logError(ctx, "LinkHandler.Reorder", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// Save 对账保存一个完整的待保存集合
// 一次请求内并发分发创建、更新、删除与排序，整体成功后返回刷新的列表
func (h *LinkHandler) Save(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.LinkSaveRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("LinkHandler.Save.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	links, err := h.App.LinkService.SavePending(ctx, uid, params)
	if err != nil {
		linkSaveTotal.WithLabelValues("fail").Inc()
		h.logError(ctx, "LinkHandler.Save", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	linkSaveTotal.WithLabelValues("success").Inc()
	linkSaveRecords.Add(float64(len(params.Links)))

	response.ToResponse(code.Success.WithData(links))
}

// logError 记录错误日志，包含 Trace ID
func (h *LinkHandler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", traceID),
	)
}
