package task

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/linkdeck/link-bio-service/internal/app"
)

// ShieldsJSON shields.io 版本徽章响应
type ShieldsJSON struct {
	Message string `json:"message"`
}

// CheckVersionTask 服务端新版本检查任务
type CheckVersionTask struct {
	app *app.App
	url string
}

func init() {
	RegisterWithApp(func(appContainer *app.App) (Task, error) {
		url := appContainer.Config().App.CheckVersionURL
		if url == "" {
			return nil, nil
		}
		return &CheckVersionTask{app: appContainer, url: url}, nil
	})
}

// Name 返回任务名称
func (t *CheckVersionTask) Name() string {
	return "CheckVersion"
}

// CronSpec 固定间隔执行，不使用 cron 计划
func (t *CheckVersionTask) CronSpec() string {
	return ""
}

// LoopInterval 返回执行间隔
func (t *CheckVersionTask) LoopInterval() time.Duration {
	return 30 * time.Minute
}

// IsStartupRun 是否立即执行一次
func (t *CheckVersionTask) IsStartupRun() bool {
	return true
}

// Run 拉取最新发布版本并更新容器内的版本检查信息
func (t *CheckVersionTask) Run(ctx context.Context) error {
	latest, err := t.fetchVersion(ctx, t.url)
	if err != nil {
		return err
	}

	t.app.SetCheckVersionInfo(latest)
	return nil
}

func (t *CheckVersionTask) fetchVersion(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var sj ShieldsJSON
	if err := json.Unmarshal(body, &sj); err != nil {
		return "", err
	}

	return sj.Message, nil
}
