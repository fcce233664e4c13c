package service

import (
	"context"

	"github.com/linkdeck/link-bio-service/internal/dto"
)

// PreviewService 定义预览页聚合服务接口
type PreviewService interface {
	// Get 聚合个人资料与链接列表，资料可为空（新用户）
	Get(ctx context.Context, uid int64) (*dto.PreviewDTO, error)
}

type previewService struct {
	profileService ProfileService
	linkService    LinkService
}

// NewPreviewService 创建 PreviewService 实例
func NewPreviewService(profileService ProfileService, linkService LinkService) PreviewService {
	return &previewService{
		profileService: profileService,
		linkService:    linkService,
	}
}

func (s *previewService) Get(ctx context.Context, uid int64) (*dto.PreviewDTO, error) {
	profile, err := s.profileService.Get(ctx, uid)
	if err != nil {
		return nil, err
	}
	links, err := s.linkService.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	return &dto.PreviewDTO{
		Profile: profile,
		Links:   links,
	}, nil
}
