package service

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/linkdeck/link-bio-service/internal/domain"
	"github.com/linkdeck/link-bio-service/internal/dto"
	"github.com/linkdeck/link-bio-service/internal/editor"
	"github.com/linkdeck/link-bio-service/pkg/code"
	"github.com/linkdeck/link-bio-service/pkg/logger"
	"github.com/linkdeck/link-bio-service/pkg/timex"
)

// LinkService 定义链接业务服务接口
type LinkService interface {
	// List 获取用户全部链接，按位置升序
	List(ctx context.Context, uid int64) ([]*dto.LinkDTO, error)

	// Create 创建链接
	Create(ctx context.Context, uid int64, params *dto.LinkCreateRequest) (*dto.LinkDTO, error)

	// Update 更新链接
	Update(ctx context.Context, uid int64, id string, params *dto.LinkUpdateRequest) (*dto.LinkDTO, error)

	// Delete 删除链接
	Delete(ctx context.Context, uid int64, id string) error

	// Reorder 批量更新位置
	Reorder(ctx context.Context, uid int64, params *dto.LinkReorderRequest) error

	// SavePending 对账保存一个完整的待保存集合，返回刷新后的列表
	SavePending(ctx context.Context, uid int64, params *dto.LinkSaveRequest) ([]*dto.LinkDTO, error)

	// Gateway 返回绑定到指定用户的远端网关
	Gateway(uid int64) editor.Gateway
}

// linkService 实现 LinkService 接口
type linkService struct {
	linkRepo domain.LinkRepository
	logger   *zap.Logger

	// savingUsers 每用户的保存进行中守卫，重叠保存直接拒绝
	savingUsers sync.Map
}

// NewLinkService 创建 LinkService 实例
func NewLinkService(linkRepo domain.LinkRepository, lg *zap.Logger) LinkService {
	return &linkService{
		linkRepo: linkRepo,
		logger:   lg,
	}
}

// domainToDTO 将领域模型转换为 DTO
func domainLinkToDTO(l *domain.Link) *dto.LinkDTO {
	if l == nil {
		return nil
	}
	return &dto.LinkDTO{
		ID:        l.ID,
		Platform:  l.Platform,
		Title:     l.Title,
		URL:       l.URL,
		Position:  l.Position,
		CreatedAt: timex.Time(l.CreatedAt),
		UpdatedAt: timex.Time(l.UpdatedAt),
	}
}

// List 获取用户全部链接
func (s *linkService) List(ctx context.Context, uid int64) ([]*dto.LinkDTO, error) {
	links, err := s.linkRepo.ListByUID(ctx, uid)
	if err != nil {
		return nil, code.ErrorLinkListFail.WithDetails(err.Error())
	}
	out := make([]*dto.LinkDTO, 0, len(links))
	for _, l := range links {
		out = append(out, domainLinkToDTO(l))
	}
	return out, nil
}

// Create 创建链接，未指定位置时排到末尾
func (s *linkService) Create(ctx context.Context, uid int64, params *dto.LinkCreateRequest) (*dto.LinkDTO, error) {
	platform := editor.ParsePlatform(params.Platform)

	position := 0
	if params.Position != nil {
		position = *params.Position
	} else {
		links, err := s.linkRepo.ListByUID(ctx, uid)
		if err != nil {
			return nil, code.ErrorLinkCreateFail.WithDetails(err.Error())
		}
		for _, l := range links {
			if l.Position >= position {
				position = l.Position + 1
			}
		}
	}

	link, err := s.linkRepo.Create(ctx, &domain.Link{
		UID:      uid,
		Platform: platform.String(),
		Title:    platform.Label(),
		URL:      params.URL,
		Position: position,
	})
	if err != nil {
		return nil, code.ErrorLinkCreateFail.WithDetails(err.Error())
	}
	return domainLinkToDTO(link), nil
}

// Update 更新链接内容
func (s *linkService) Update(ctx context.Context, uid int64, id string, params *dto.LinkUpdateRequest) (*dto.LinkDTO, error) {
	if _, err := s.linkRepo.GetByID(ctx, id, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorLinkNotFound
		}
		return nil, code.ErrorDBQuery
	}

	platform := editor.ParsePlatform(params.Platform)
	link, err := s.linkRepo.Update(ctx, &domain.Link{
		ID:       id,
		UID:      uid,
		Platform: platform.String(),
		Title:    platform.Label(),
		URL:      params.URL,
	})
	if err != nil {
		return nil, code.ErrorLinkUpdateFail.WithDetails(err.Error())
	}
	return domainLinkToDTO(link), nil
}

// Delete 删除链接
func (s *linkService) Delete(ctx context.Context, uid int64, id string) error {
	if err := s.linkRepo.Delete(ctx, id, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorLinkNotFound
		}
		return code.ErrorLinkDeleteFail.WithDetails(err.Error())
	}
	return nil
}

// Reorder 批量更新位置，事务内整体生效
func (s *linkService) Reorder(ctx context.Context, uid int64, params *dto.LinkReorderRequest) error {
	updates := make([]domain.PositionUpdate, 0, len(params.Positions))
	for _, p := range params.Positions {
		updates = append(updates, domain.PositionUpdate{ID: p.ID, Position: p.Position})
	}
	if err := s.linkRepo.UpdatePositions(ctx, uid, updates); err != nil {
		return code.ErrorLinkReorderFail.WithDetails(err.Error())
	}
	return nil
}

// SavePending 服务端对账保存
// 将请求中的完整待保存集合装入编辑器核心，针对用户网关执行一次保存，
// 成功后返回远端刷新的列表；同一用户的重叠保存被拒绝
func (s *linkService) SavePending(ctx context.Context, uid int64, params *dto.LinkSaveRequest) ([]*dto.LinkDTO, error) {
	if _, loaded := s.savingUsers.LoadOrStore(uid, struct{}{}); loaded {
		return nil, code.ErrorLinkSaveInFlight
	}
	defer s.savingUsers.Delete(uid)

	collection := editor.NewCollection()
	records := make([]editor.Record, 0, len(params.Links))
	for _, l := range params.Links {
		platform := editor.ParsePlatform(l.Platform)
		records = append(records, editor.Record{
			ID:        l.ID,
			Platform:  platform,
			Title:     platform.Label(),
			URL:       l.URL,
			Position:  l.Position,
			New:       l.New,
			Modified:  l.Modified,
			Deleted:   l.Deleted,
			Reordered: l.Reordered,
		})
	}
	collection.LoadPending(records, params.Reordered)

	saver := editor.NewSaver(collection, s.Gateway(uid))
	if err := saver.Save(ctx); err != nil {
		if errors.Is(err, editor.ErrSaveInFlight) {
			return nil, code.ErrorLinkSaveInFlight
		}
		s.logger.Error("link save failed",
			zap.Int64(logger.FieldUID, uid),
			zap.Error(err))
		return nil, code.ErrorLinkSaveFail.WithDetails(err.Error())
	}

	// 集合内的记录缺少行时间戳，刷新列表统一走仓储查询
	return s.List(ctx, uid)
}

// Gateway 返回绑定到指定用户的远端网关
func (s *linkService) Gateway(uid int64) editor.Gateway {
	return &linkGateway{repo: s.linkRepo, uid: uid}
}

// linkGateway 将仓储适配为编辑器核心的远端网关
type linkGateway struct {
	repo domain.LinkRepository
	uid  int64
}

var _ editor.Gateway = (*linkGateway)(nil)

func (g *linkGateway) FetchAll(ctx context.Context) ([]editor.Record, error) {
	links, err := g.repo.ListByUID(ctx, g.uid)
	if err != nil {
		return nil, err
	}
	records := make([]editor.Record, 0, len(links))
	for _, l := range links {
		records = append(records, editor.Record{
			ID:       l.ID,
			Platform: editor.ParsePlatform(l.Platform),
			Title:    l.Title,
			URL:      l.URL,
			Position: l.Position,
		})
	}
	return records, nil
}

func (g *linkGateway) Create(ctx context.Context, rec editor.Record) (editor.Record, error) {
	link, err := g.repo.Create(ctx, &domain.Link{
		UID:      g.uid,
		Platform: rec.Platform.String(),
		Title:    rec.Platform.Label(),
		URL:      rec.URL,
		Position: rec.Position,
	})
	if err != nil {
		return editor.Record{}, err
	}
	rec.ID = link.ID
	rec.New = false
	return rec, nil
}

func (g *linkGateway) Update(ctx context.Context, rec editor.Record) (editor.Record, error) {
	link, err := g.repo.Update(ctx, &domain.Link{
		ID:       rec.ID,
		UID:      g.uid,
		Platform: rec.Platform.String(),
		Title:    rec.Platform.Label(),
		URL:      rec.URL,
	})
	if err != nil {
		return editor.Record{}, err
	}
	rec.Modified = false
	rec.Position = link.Position
	return rec, nil
}

func (g *linkGateway) Delete(ctx context.Context, id string) error {
	return g.repo.Delete(ctx, id, g.uid)
}

func (g *linkGateway) ReorderBatch(ctx context.Context, updates []editor.PositionUpdate) error {
	batch := make([]domain.PositionUpdate, 0, len(updates))
	for _, u := range updates {
		batch = append(batch, domain.PositionUpdate{ID: u.ID, Position: u.Position})
	}
	return g.repo.UpdatePositions(ctx, g.uid, batch)
}
