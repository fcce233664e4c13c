package task

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/linkdeck/link-bio-service/pkg/safe_close"
)

// Task 定义任务接口
type Task interface {
	Name() string                  // 任务名称
	Run(ctx context.Context) error // 执行任务
	LoopInterval() time.Duration   // 执行间隔，CronSpec 为空时生效
	CronSpec() string              // cron 表达式（分 时 日 月 周），非空时优先
	IsStartupRun() bool            // 是否立即执行一次
}

// Scheduler 任务调度器
type Scheduler struct {
	logger *zap.Logger
	tasks  []Task
	sc     *safe_close.SafeClose
	parser cron.Parser
}

// NewScheduler 创建任务调度器
func NewScheduler(logger *zap.Logger, sc *safe_close.SafeClose) *Scheduler {
	return &Scheduler{
		logger: logger,
		tasks:  make([]Task, 0),
		sc:     sc,
		parser: cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow),
	}
}

// AddTask 添加任务
func (s *Scheduler) AddTask(task Task) {
	s.tasks = append(s.tasks, task)
}

// Start 启动所有任务
func (s *Scheduler) Start() {
	if len(s.tasks) == 0 {
		s.logger.Info("no tasks to schedule")
		return
	}

	s.logger.Info("tasks starting", zap.Int("count", len(s.tasks)))

	for _, task := range s.tasks {
		s.startTask(task)
	}
}

// startTask 启动单个任务
func (s *Scheduler) startTask(task Task) {

	var schedule cron.Schedule
	if spec := task.CronSpec(); spec != "" {
		parsed, err := s.parser.Parse(spec)
		if err != nil {
			s.logger.Error("failed to parse cron expression",
				zap.String("name", task.Name()),
				zap.String("expr", spec),
				zap.Error(err))
		} else {
			schedule = parsed
		}
	}

	s.sc.Attach(func(done func(), closeSignal <-chan struct{}) {
		defer done()

		// 如果任务需要立即执行
		if task.IsStartupRun() {
			s.logger.Info("task running", zap.String("name", task.Name()), zap.Bool("startupRun", true))
			go s.runOnce(task, "startupRun")
		}

		if schedule != nil {
			s.runCronLoop(task, schedule, closeSignal)
			return
		}

		if task.LoopInterval() <= 0 {
			return
		}

		ticker := time.NewTicker(task.LoopInterval())
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.logger.Info("task running", zap.String("name", task.Name()), zap.Bool("loopRun", true))
				s.runOnce(task, "loopRun")
			case <-closeSignal:
				s.logger.Info("task stopped", zap.String("name", task.Name()))
				return
			}
		}
	})
}

// runCronLoop 按 cron 计划循环执行任务
func (s *Scheduler) runCronLoop(task Task, schedule cron.Schedule, closeSignal <-chan struct{}) {
	for {
		next := schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-timer.C:
			s.logger.Info("task running",
				zap.String("name", task.Name()),
				zap.Time("scheduledAt", next))
			s.runOnce(task, "cronRun")
		case <-closeSignal:
			timer.Stop()
			s.logger.Info("task stopped", zap.String("name", task.Name()))
			return
		}
	}
}

// runOnce 执行一次任务，恢复 panic 并记录错误
func (s *Scheduler) runOnce(task Task, kind string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("task run panic",
				zap.String("name", task.Name()),
				zap.String("type", kind),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()
	if err := task.Run(context.Background()); err != nil {
		s.logger.Error("task running error",
			zap.String("name", task.Name()),
			zap.String("type", kind),
			zap.Error(err))
	}
}
