package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"devevent-backend/internal/shared"
	"devevent-backend/pkg/logger"
)

// DefaultWarmFeedCron: mỗi 15 phút
const DefaultWarmFeedCron = "*/15 * * * *"

type Scheduler struct {
	scheduler    *asynq.Scheduler
	warmFeedCron string
}

func NewScheduler(redisOpt asynq.RedisClientOpt, warmFeedCron string) *Scheduler {
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	if warmFeedCron == "" {
		warmFeedCron = DefaultWarmFeedCron
	}

	return &Scheduler{
		scheduler:    scheduler,
		warmFeedCron: warmFeedCron,
	}
}

// RegisterJobs đăng ký tất cả periodic jobs
func (s *Scheduler) RegisterJobs() error {
	return s.registerWarmHomeFeedJob()
}

// ================================================
// JOB: Warm Home Feed
// ================================================
func (s *Scheduler) registerWarmHomeFeedJob() error {
	task, opts, err := WarmHomeFeedTask()
	if err != nil {
		return err
	}

	if _, err := s.scheduler.Register(s.warmFeedCron, task, opts...); err != nil {
		logger.Error("Failed to register WarmHomeFeed job", err)
		return err
	}

	logger.Info("Registered WarmHomeFeed", map[string]interface{}{"cron": s.warmFeedCron})
	return nil
}

// WarmHomeFeedTask build task và options cho job warm feed
func WarmHomeFeedTask() (*asynq.Task, []asynq.Option, error) {
	payload, err := json.Marshal(shared.WarmHomeFeedPayload{})
	if err != nil {
		return nil, nil, err
	}

	task := asynq.NewTask(shared.TypeWarmHomeFeed, payload)
	opts := []asynq.Option{
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(0),
		asynq.Timeout(time.Minute),
		// Không chồng job khi lần trước chưa xong
		asynq.Unique(10 * time.Minute),
	}
	return task, opts, nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
