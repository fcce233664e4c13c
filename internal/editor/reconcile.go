package editor

import (
	"context"
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ErrSaveInFlight 同一会话上已有保存操作在执行
var ErrSaveInFlight = errors.New("editor: save already in flight")

// PositionUpdate 批量排序的一条 {id, position} 更新
type PositionUpdate struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
}

// Gateway 远端链接存储的能力边界，按用户隔离，身份由实现方携带
type Gateway interface {
	// FetchAll 拉取全部记录，按位置升序，标记位全部为空
	FetchAll(ctx context.Context) ([]Record, error)

	// Create 创建一条记录，返回带远端 ID 的结果
	Create(ctx context.Context, rec Record) (Record, error)

	// Update 更新一条已持久化记录的内容字段
	Update(ctx context.Context, rec Record) (Record, error)

	// Delete 删除一条已持久化记录
	Delete(ctx context.Context, id string) error

	// ReorderBatch 批量更新位置
	ReorderBatch(ctx context.Context, updates []PositionUpdate) error
}

// Saver reconciles a Collection's pending state against a Gateway.
//
// Save 将待保存状态翻译为最小的远端调用批次并发执行：每条调用都跑到
// 完成，全部成功才整体生效。成功后以远端全量数据整体替换本地集合
// （标记随之清空）；任一调用失败则本地状态原样保留，可直接重试。
// 不做部分回滚补偿，"全部成功才刷新"就是一致性边界。
type Saver struct {
	collection *Collection
	gateway    Gateway
	inFlight   atomic.Bool
}

func NewSaver(c *Collection, gw Gateway) *Saver {
	return &Saver{collection: c, gateway: gw}
}

// Collection 返回受管集合
func (s *Saver) Collection() *Collection {
	return s.collection
}

// Save 执行一次对账保存
// 无待保存变更时不发出任何远端调用直接返回；保存执行中再次调用
// 返回 ErrSaveInFlight
func (s *Saver) Save(ctx context.Context) error {
	if !s.collection.HasPendingChanges() {
		return nil
	}
	if !s.inFlight.CompareAndSwap(false, true) {
		return ErrSaveInFlight
	}
	defer s.inFlight.Store(false)

	creates, updates, deletes, reorder := s.partition()

	// 普通 errgroup 而非 WithContext：已派发的调用互不取消，
	// 全部跑完后汇总首个错误
	var g errgroup.Group
	for _, rec := range creates {
		rec := *rec
		g.Go(func() error {
			_, err := s.gateway.Create(ctx, rec)
			return err
		})
	}
	for _, rec := range updates {
		rec := *rec
		g.Go(func() error {
			_, err := s.gateway.Update(ctx, rec)
			return err
		})
	}
	for _, rec := range deletes {
		id := rec.ID
		g.Go(func() error {
			return s.gateway.Delete(ctx, id)
		})
	}
	if len(reorder) > 0 {
		g.Go(func() error {
			return s.gateway.ReorderBatch(ctx, reorder)
		})
	}

	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "save links")
	}

	fresh, err := s.gateway.FetchAll(ctx)
	if err != nil {
		return errors.Wrap(err, "refresh links")
	}
	s.collection.Load(fresh)
	return nil
}

// partition 把完整集合（含已删除）切分为互不相交的工作集
//
// creates: New 且未删除；updates: Modified 且未删除（与 New 互斥）；
// deletes: 已删除且已持久化（从未持久化的删除无需远端调用）；
// reorder: 任一 Reordered 标记或本会话重排过时，对每条未删除的已
// 持久化记录取其当前位置组成 {id, position} 批次。
func (s *Saver) partition() (creates, updates, deletes []*Record, reorder []PositionUpdate) {
	needReorder := s.collection.reordered

	for _, rec := range s.collection.Records() {
		switch {
		case rec.New && !rec.Deleted:
			creates = append(creates, rec)
		case rec.Modified && !rec.Deleted:
			updates = append(updates, rec)
		case rec.Deleted && !rec.New && rec.ID != "":
			deletes = append(deletes, rec)
		}
		if rec.Reordered {
			needReorder = true
		}
	}

	if needReorder {
		for _, rec := range s.collection.Records() {
			if rec.Deleted || !rec.IsPersisted() {
				continue
			}
			reorder = append(reorder, PositionUpdate{ID: rec.ID, Position: rec.Position})
		}
	}
	return creates, updates, deletes, reorder
}
