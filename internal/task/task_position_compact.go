package task

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/linkdeck/link-bio-service/internal/app"
)

// PositionCompactTask 链接位置压实任务
// 删除与排序交错可能留下位置空洞，低峰期统一压缩为连续序列
type PositionCompactTask struct {
	app *app.App
}

func init() {
	RegisterWithApp(func(appContainer *app.App) (Task, error) {
		if appContainer.Config().App.PositionCompactCron == "" {
			return nil, nil
		}
		return &PositionCompactTask{app: appContainer}, nil
	})
}

// Name 返回任务名称
func (t *PositionCompactTask) Name() string {
	return "PositionCompact"
}

// CronSpec 返回执行计划
func (t *PositionCompactTask) CronSpec() string {
	return t.app.Config().App.PositionCompactCron
}

// LoopInterval cron 计划生效时不使用
func (t *PositionCompactTask) LoopInterval() time.Duration {
	return 0
}

// IsStartupRun 是否立即执行一次
func (t *PositionCompactTask) IsStartupRun() bool {
	return false
}

// Run 执行压实任务
func (t *PositionCompactTask) Run(ctx context.Context) error {
	uids, err := t.app.LinkRepo.ListUIDs(ctx)
	if err != nil {
		return err
	}

	var totalChanged int64
	for _, uid := range uids {
		changed, err := t.app.LinkRepo.CompactPositions(ctx, uid)
		if err != nil {
			t.app.Logger().Error("task log",
				zap.String("task", t.Name()),
				zap.Int64("uid", uid),
				zap.String("msg", "failed"),
				zap.Error(err))
			continue
		}
		totalChanged += changed
	}

	t.app.Logger().Info("task log",
		zap.String("task", t.Name()),
		zap.Int("users", len(uids)),
		zap.Int64("changed", totalChanged),
		zap.String("msg", "success"))

	return nil
}
