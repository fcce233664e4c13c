package task

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/linkdeck/link-bio-service/internal/app"
	"github.com/linkdeck/link-bio-service/pkg/fileurl"
)

// tempFileMaxAge 临时文件保留时长
const tempFileMaxAge = 24 * time.Hour

// TempCleanTask 临时目录清理任务
// 清理上传中断等场景遗留的过期临时文件
type TempCleanTask struct {
	app *app.App
}

func init() {
	RegisterWithApp(func(appContainer *app.App) (Task, error) {
		cfg := appContainer.Config().App
		if cfg.TempCleanCron == "" || cfg.TempPath == "" {
			return nil, nil
		}
		return &TempCleanTask{app: appContainer}, nil
	})
}

// Name 返回任务名称
func (t *TempCleanTask) Name() string {
	return "TempClean"
}

// CronSpec 返回执行计划
func (t *TempCleanTask) CronSpec() string {
	return t.app.Config().App.TempCleanCron
}

// LoopInterval cron 计划生效时不使用
func (t *TempCleanTask) LoopInterval() time.Duration {
	return 0
}

// IsStartupRun 是否立即执行一次
func (t *TempCleanTask) IsStartupRun() bool {
	return true
}

// Run 执行清理任务
func (t *TempCleanTask) Run(ctx context.Context) error {
	tempPath := t.app.Config().App.TempPath
	if !fileurl.IsExist(tempPath) {
		return nil
	}

	deadline := time.Now().Add(-tempFileMaxAge)
	var removed int

	err := filepath.Walk(tempPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if info.ModTime().Before(deadline) {
			if rmErr := os.Remove(path); rmErr != nil {
				t.app.Logger().Warn("task log",
					zap.String("task", t.Name()),
					zap.String("file", path),
					zap.Error(rmErr))
				return nil
			}
			removed++
		}
		return nil
	})
	if err != nil {
		return err
	}

	t.app.Logger().Info("task log",
		zap.String("task", t.Name()),
		zap.Int("removed", removed),
		zap.String("msg", "success"))

	return nil
}
