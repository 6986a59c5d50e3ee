package handler

import (
	"Fandium/internal/api/dto"
	"Fandium/internal/model"
	"Fandium/internal/pkg/response"
	"Fandium/internal/service"
	"errors"
	log "log/slog"
	"strconv"

	"github.com/gin-gonic/gin"
)

type EngagementHandler struct {
	counterSvc service.CounterService
	likeSvc    service.LikeService
}

func NewEngagementHandler(counterSvc service.CounterService, likeSvc service.LikeService) *EngagementHandler {
	return &EngagementHandler{
		counterSvc: counterSvc,
		likeSvc:    likeSvc,
	}
}

// TrackView 记录一次内容浏览。
// 计数是尽力而为的：基础设施抖动只记日志，不影响内容读取请求本身
func (s *EngagementHandler) TrackView(c *gin.Context) {
	domain, contentID, ok := parseTarget(c)
	if !ok {
		return
	}
	userID := c.GetUint64("user_id")

	err := s.counterSvc.IncrementViewCount(c.Request.Context(), domain, contentID, userID, c.ClientIP())
	if err != nil {
		if errors.Is(err, service.ErrContentNotFound) {
			response.Error(c, err)
			return
		}
		log.ErrorContext(c.Request.Context(), "track view degraded",
			"domain", domain.Key(), "contentID", contentID, "err", err)
	}
	response.Success(c, nil)
}

// ToggleLike 点赞/取消点赞
func (s *EngagementHandler) ToggleLike(c *gin.Context) {
	domain, contentID, ok := parseTarget(c)
	if !ok {
		return
	}
	userID := c.GetUint64("user_id")

	isLiked, likeCount, err := s.likeSvc.ToggleLike(c.Request.Context(), domain, contentID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.LikeStateDTO{IsLiked: isLiked, LikeCount: likeCount})
}

// GetStats 内容详情页的计数快照
func (s *EngagementHandler) GetStats(c *gin.Context) {
	domain, contentID, ok := parseTarget(c)
	if !ok {
		return
	}
	userID := c.GetUint64("user_id")
	ctx := c.Request.Context()

	viewCount, err := s.counterSvc.GetViewCount(ctx, domain, contentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	likeCount, err := s.likeSvc.GetCount(ctx, domain, contentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	isLiked, err := s.likeSvc.IsLiked(ctx, domain, contentID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.ContentStatsDTO{
		ViewCount: viewCount,
		LikeCount: likeCount,
		IsLiked:   isLiked,
	})
}

func parseTarget(c *gin.Context) (model.ContentDomain, uint64, bool) {
	domain, err := model.ParseDomain(c.Param("domain"))
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return model.ContentDomain{}, 0, false
	}
	contentID, err := strconv.ParseUint(c.Param("content_id"), 10, 64)
	if err != nil || contentID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return model.ContentDomain{}, 0, false
	}
	return domain, contentID, true
}
