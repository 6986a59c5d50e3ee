package api

import (
	"Fandium/internal/api/middleware"
	"Fandium/internal/pkg/consts"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(gin.Recovery())

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		contentGroup := apiGroup.Group("/content/:domain/:content_id")
		{
			// 浏览与统计对游客开放，带 token 时按用户身份去重
			authOptGroup := contentGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.POST("/view", group.EngagementHandler.TrackView)
				authOptGroup.GET("/stats", group.EngagementHandler.GetStats)
			}

			authGroup := contentGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/like", group.EngagementHandler.ToggleLike)
			}
		}

		// 需要登录 & 拥有 admin 角色
		jobGroup := apiGroup.Group("/admin/jobs")
		jobGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles(consts.RoleAdmin))
		{
			jobGroup.POST("/view-sync", group.JobHandler.TriggerViewSync)
			jobGroup.POST("/like-sync", group.JobHandler.TriggerLikeSync)
			jobGroup.POST("/hot-score", group.JobHandler.TriggerHotScore)
		}
	}

	return r
}
