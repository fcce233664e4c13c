package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/linkdeck/link-bio-service/internal/domain"
	"github.com/linkdeck/link-bio-service/internal/dto"
	"github.com/linkdeck/link-bio-service/pkg/code"
	"github.com/linkdeck/link-bio-service/pkg/fileurl"
	"github.com/linkdeck/link-bio-service/pkg/logger"
	"github.com/linkdeck/link-bio-service/pkg/storage"
	"github.com/linkdeck/link-bio-service/pkg/timex"
)

// ProfileService 定义个人资料业务服务接口
type ProfileService interface {
	// Get 获取用户的个人资料；不存在返回 (nil, nil)，这是新用户的合法空状态
	Get(ctx context.Context, uid int64) (*dto.ProfileDTO, error)

	// Save 保存个人资料：先上传暂存头像（如有），再创建或更新资料行
	Save(ctx context.Context, uid int64, params *dto.ProfileSaveRequest, avatar *multipart.FileHeader) (*dto.ProfileDTO, error)
}

// profileService 实现 ProfileService 接口
type profileService struct {
	profileRepo domain.ProfileRepository
	store       storage.Storager
	logger      *zap.Logger
	config      *ServiceConfig
}

// NewProfileService 创建 ProfileService 实例
func NewProfileService(profileRepo domain.ProfileRepository, store storage.Storager, lg *zap.Logger, config *ServiceConfig) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		store:       store,
		logger:      lg,
		config:      config,
	}
}

func domainProfileToDTO(p *domain.Profile) *dto.ProfileDTO {
	if p == nil {
		return nil
	}
	return &dto.ProfileDTO{
		ID:        p.ID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		AvatarURL: p.AvatarURL,
		CreatedAt: timex.Time(p.CreatedAt),
		UpdatedAt: timex.Time(p.UpdatedAt),
	}
}

// Get 获取用户的个人资料
// 记录不存在不是错误：新用户尚未创建资料，返回 nil 由上层处理
func (s *profileService) Get(ctx context.Context, uid int64) (*dto.ProfileDTO, error) {
	profile, err := s.profileRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, code.ErrorProfileQueryFail.WithDetails(err.Error())
	}
	return domainProfileToDTO(profile), nil
}

// Save 保存个人资料
// 有暂存头像时先上传，上传失败则整个保存失败，资料行不动
func (s *profileService) Save(ctx context.Context, uid int64, params *dto.ProfileSaveRequest, avatar *multipart.FileHeader) (*dto.ProfileDTO, error) {
	avatarURL := ""
	if avatar != nil {
		url, err := s.uploadAvatar(uid, avatar)
		if err != nil {
			return nil, err
		}
		avatarURL = url
	}

	existing, err := s.profileRepo.GetByUID(ctx, uid)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorProfileQueryFail.WithDetails(err.Error())
	}

	if existing == nil {
		created, err := s.profileRepo.Create(ctx, &domain.Profile{
			UID:       uid,
			FirstName: params.FirstName,
			LastName:  params.LastName,
			Email:     params.Email,
			AvatarURL: avatarURL,
		})
		if err != nil {
			return nil, code.ErrorProfileSaveFail.WithDetails(err.Error())
		}
		return domainProfileToDTO(created), nil
	}

	if avatarURL == "" {
		avatarURL = existing.AvatarURL
	}
	updated, err := s.profileRepo.Update(ctx, &domain.Profile{
		UID:       uid,
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Email:     params.Email,
		AvatarURL: avatarURL,
	})
	if err != nil {
		return nil, code.ErrorProfileSaveFail.WithDetails(err.Error())
	}
	return domainProfileToDTO(updated), nil
}

// uploadAvatar 上传头像到按用户固定的对象键（覆盖旧图），
// 公开 URL 追加时间戳后缀，强制客户端绕过同地址的缓存
func (s *profileService) uploadAvatar(uid int64, avatar *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(fileurl.GetFileExt(avatar.Filename))
	allowExts := s.config.Upload.AvatarAllowExts
	if len(allowExts) == 0 {
		allowExts = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	}
	if !fileurl.IsContainExt(avatar.Filename, allowExts) {
		return "", code.ErrorInvalidFileExt
	}
	if maxMB := s.config.Upload.AvatarMaxSizeMB; maxMB > 0 && avatar.Size > int64(maxMB)<<20 {
		return "", code.ErrorUploadFileFailed.WithDetails("file too large")
	}

	f, err := avatar.Open()
	if err != nil {
		return "", code.ErrorUploadFileFailed.WithDetails(err.Error())
	}
	defer f.Close()

	pathKey := fmt.Sprintf("avatars/%d/avatar%s", uid, ext)
	cType := avatar.Header.Get("Content-Type")
	if _, err := s.store.SendFile(pathKey, f, cType, time.Now()); err != nil {
		s.logger.Error("avatar upload failed",
			zap.Int64(logger.FieldUID, uid),
			zap.String(logger.FieldFileKey, pathKey),
			zap.Error(err))
		return "", code.ErrorUploadFileFailed.WithDetails(err.Error())
	}

	publicBase := strings.TrimSuffix(s.config.Upload.PublicURL, "/")
	return fmt.Sprintf("%s/%s?v=%d", publicBase, pathKey, time.Now().Unix()), nil
}
