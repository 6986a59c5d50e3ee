package api

import "Fandium/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	EngagementHandler *handler.EngagementHandler
	JobHandler        *handler.JobHandler
}
