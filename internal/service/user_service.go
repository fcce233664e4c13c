package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/linkdeck/link-bio-service/internal/domain"
	"github.com/linkdeck/link-bio-service/internal/dto"
	"github.com/linkdeck/link-bio-service/pkg/app"
	"github.com/linkdeck/link-bio-service/pkg/code"
	"github.com/linkdeck/link-bio-service/pkg/logger"
	"github.com/linkdeck/link-bio-service/pkg/timex"
	"github.com/linkdeck/link-bio-service/pkg/util"
)

// UserService 定义用户业务服务接口
type UserService interface {
	// Register 用户注册
	Register(ctx context.Context, params *dto.UserRegisterRequest) (*dto.UserDTO, error)

	// Login 用户登录
	Login(ctx context.Context, params *dto.UserLoginRequest, clientIP string) (*dto.UserDTO, error)

	// ChangePassword 修改密码
	ChangePassword(ctx context.Context, uid int64, params *dto.UserChangePasswordRequest) error

	// GetInfo 获取用户信息
	GetInfo(ctx context.Context, uid int64) (*dto.UserDTO, error)
}

// userService 实现 UserService 接口
type userService struct {
	userRepo     domain.UserRepository
	tokenManager app.TokenManager
	logger       *zap.Logger
	config       *ServiceConfig
}

// NewUserService 创建 UserService 实例
func NewUserService(userRepo domain.UserRepository, tokenManager app.TokenManager, lg *zap.Logger, config *ServiceConfig) UserService {
	return &userService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
		logger:       lg,
		config:       config,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *userService) domainToDTO(user *domain.User) *dto.UserDTO {
	if user == nil {
		return nil
	}
	return &dto.UserDTO{
		UID:       user.UID,
		Email:     user.Email,
		Nickname:  user.Nickname,
		CreatedAt: timex.Time(user.CreatedAt),
		UpdatedAt: timex.Time(user.UpdatedAt),
	}
}

// Register 用户注册
func (s *userService) Register(ctx context.Context, params *dto.UserRegisterRequest) (*dto.UserDTO, error) {
	if s.config == nil || !s.config.User.RegisterIsEnable {
		return nil, code.ErrorUserRegisterFail.WithDetails("registration is disabled")
	}

	if params.Password != params.ConfirmPassword {
		return nil, code.ErrorUserRegisterFail.WithDetails("passwords do not match")
	}

	existing, err := s.userRepo.GetByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDBQuery
	}
	if existing != nil {
		return nil, code.ErrorUserEmailExists
	}

	password, err := util.GeneratePasswordHash(params.Password)
	if err != nil {
		return nil, code.ErrorUserRegisterFail.WithDetails(err.Error())
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Email:    params.Email,
		Nickname: params.Nickname,
		Password: password,
	})
	if err != nil {
		return nil, code.ErrorUserRegisterFail.WithDetails(err.Error())
	}

	token, err := s.tokenManager.Generate(user.UID, user.Nickname, "")
	if err != nil {
		return nil, code.ErrorUserGenerateTokenFail.WithDetails(err.Error())
	}

	out := s.domainToDTO(user)
	out.Token = token
	return out, nil
}

// Login 用户登录
// 登录失败统一返回邮箱或密码错误，不暴露账号是否存在
func (s *userService) Login(ctx context.Context, params *dto.UserLoginRequest, clientIP string) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorUserPasswordWrong
		}
		return nil, code.ErrorDBQuery
	}

	if !util.CheckPasswordHash(user.Password, params.Password) {
		return nil, code.ErrorUserPasswordWrong
	}

	token, err := s.tokenManager.Generate(user.UID, user.Nickname, clientIP)
	if err != nil {
		return nil, code.ErrorUserGenerateTokenFail.WithDetails(err.Error())
	}

	s.logger.Info("user login",
		zap.Int64(logger.FieldUID, user.UID),
		zap.String(logger.FieldAction, "login"))

	out := s.domainToDTO(user)
	out.Token = token
	return out, nil
}

// ChangePassword 修改密码
func (s *userService) ChangePassword(ctx context.Context, uid int64, params *dto.UserChangePasswordRequest) error {
	if params.Password != params.ConfirmPassword {
		return code.ErrorInvalidParams.WithDetails("passwords do not match")
	}

	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorUserNotExist
		}
		return code.ErrorDBQuery
	}

	if !util.CheckPasswordHash(user.Password, params.OldPassword) {
		return code.ErrorUserPasswordWrong
	}

	password, err := util.GeneratePasswordHash(params.Password)
	if err != nil {
		return code.ErrorServerInternal.WithDetails(err.Error())
	}
	if err := s.userRepo.UpdatePassword(ctx, uid, password); err != nil {
		return code.ErrorDBQuery
	}
	return nil
}

// GetInfo 获取用户信息
func (s *userService) GetInfo(ctx context.Context, uid int64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorUserNotExist
		}
		return nil, code.ErrorDBQuery
	}
	return s.domainToDTO(user), nil
}
