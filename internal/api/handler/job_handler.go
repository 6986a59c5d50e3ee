package handler

import (
	"Fandium/internal/job"
	"Fandium/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// JobHandler 运维入口：同步执行一轮后台任务
type JobHandler struct {
	viewSyncJob *job.CountSyncJob
	likeSyncJob *job.CountSyncJob
	hotScoreJob *job.HotScoreJob
}

func NewJobHandler(viewSyncJob, likeSyncJob *job.CountSyncJob, hotScoreJob *job.HotScoreJob) *JobHandler {
	return &JobHandler{
		viewSyncJob: viewSyncJob,
		likeSyncJob: likeSyncJob,
		hotScoreJob: hotScoreJob,
	}
}

func (s *JobHandler) TriggerViewSync(c *gin.Context) {
	if err := s.viewSyncJob.Sync(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *JobHandler) TriggerLikeSync(c *gin.Context) {
	if err := s.likeSyncJob.Sync(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *JobHandler) TriggerHotScore(c *gin.Context) {
	if err := s.hotScoreJob.Recompute(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
