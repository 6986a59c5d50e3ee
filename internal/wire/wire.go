package wire

import (
	"Fandium/internal/api"
	"Fandium/internal/api/config"
	"Fandium/internal/api/handler"
	"Fandium/internal/job"
	"Fandium/internal/pkg/cron"
	"Fandium/internal/pkg/kafka"
	"Fandium/internal/repository"
	"Fandium/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	contentRepo := repository.NewContentRepo(db)
	likeRepo := repository.NewLikeRepo(db)
	statRepo := repository.NewStatRepo(db)

	producer, err := kafka.NewLikeEventProducer(cfg)
	if err != nil {
		return nil, err
	}

	counterService := service.NewCounterService(contentRepo, statRepo)
	likeService := service.NewLikeService(contentRepo, likeRepo, statRepo, producer)

	viewSyncJob := job.NewViewSyncJob(statRepo)
	likeSyncJob := job.NewLikeSyncJob(statRepo)
	hotScoreJob := job.NewHotScoreJob(statRepo)

	handlers := &api.HandlersGroup{
		EngagementHandler: handler.NewEngagementHandler(counterService, likeService),
		JobHandler:        handler.NewJobHandler(viewSyncJob, likeSyncJob, hotScoreJob),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, likeRepo)
	if err != nil {
		return nil, err
	}

	cronMgr := cron.NewCronManager(viewSyncJob, likeSyncJob, hotScoreJob)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
