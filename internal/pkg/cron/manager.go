package cron

import (
	"Fandium/internal/api/config"
	"Fandium/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine      *cron.Cron
	viewSyncJob *job.CountSyncJob
	likeSyncJob *job.CountSyncJob
	hotScoreJob *job.HotScoreJob
}

func NewCronManager(viewSyncJob, likeSyncJob *job.CountSyncJob, hotScoreJob *job.HotScoreJob) *Manager {
	return &Manager{
		engine:      cron.New(cron.WithSeconds()),
		viewSyncJob: viewSyncJob,
		likeSyncJob: likeSyncJob,
		hotScoreJob: hotScoreJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	syncCfg := config.Cfg.Sync
	if _, err := s.engine.AddJob(syncCfg.ViewSpec, s.viewSyncJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob(syncCfg.LikeSpec, s.likeSyncJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob(config.Cfg.Rank.Spec, s.hotScoreJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
