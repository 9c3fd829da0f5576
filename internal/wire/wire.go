package wire

import (
	"SchoolCare/internal/api"
	"SchoolCare/internal/api/config"
	"SchoolCare/internal/api/handler"
	"SchoolCare/internal/job"
	"SchoolCare/internal/pkg/cron"
	"SchoolCare/internal/pkg/kafka"
	pkgmongo "SchoolCare/internal/pkg/mongo"
	"SchoolCare/internal/pkg/push"
	"SchoolCare/internal/repository"
	"SchoolCare/internal/service"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	Producer     *kafka.JobProducer
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

func BuildApplication(db *gorm.DB, mongo *mongoDB.Database, rdb *redisv9.Client, cfg *config.Config) (*ApplicationContainer, error) {
	// MySQL 仓储
	userRepo := repository.NewUserRepo(db)
	classRepo := repository.NewClassRepo(db)
	studentRepo := repository.NewStudentRepo(db)
	campaignRepo := repository.NewCampaignRepo(db)
	consentRepo := repository.NewConsentRepo(db)
	incidentRepo := repository.NewIncidentRepo(db)
	medicationRepo := repository.NewMedicationRepo(db)
	inventoryRepo := repository.NewInventoryRepo(db)
	tokenRepo := repository.NewDeviceTokenRepo(rdb)

	// Mongo 仓储
	notificationRepo := pkgmongo.NewNotificationRepo(mongo)
	failedJobRepo := pkgmongo.NewFailedJobRepo(mongo)
	messageRepo := pkgmongo.NewMessageRepo(mongo)

	// 通知流水线：生产端
	producer, err := kafka.NewJobProducer(cfg)
	if err != nil {
		return nil, err
	}
	notifierService := service.NewNotifierService(producer, classRepo, studentRepo, userRepo, campaignRepo)

	// 通知流水线：消费端
	gateway := push.NewFCMGateway(cfg.Push)
	dispatchService := service.NewNotificationDispatchService(notificationRepo, tokenRepo, userRepo, gateway)
	notifyHandler := kafka.NewNotificationJobsHandler(dispatchService, failedJobRepo, rdb, cfg.Notify)
	kafkaMgr, err := kafka.NewConsumerManager(cfg, notifyHandler)
	if err != nil {
		return nil, err
	}

	// 业务服务
	userService := service.NewUserService(userRepo, tokenRepo)
	boxService := service.NewNotificationBoxService(notificationRepo, failedJobRepo, userRepo)
	campaignService := service.NewCampaignService(campaignRepo, studentRepo, notifierService)
	consentService := service.NewConsentService(consentRepo, campaignRepo, studentRepo, notifierService)
	incidentService := service.NewIncidentService(incidentRepo, studentRepo, notifierService)
	medicationService := service.NewMedicationService(medicationRepo, studentRepo, notifierService)
	inventoryService := service.NewInventoryService(inventoryRepo, notifierService)
	messageService := service.NewMessageService(messageRepo, userRepo, notifierService)

	handlers := &api.HandlersGroup{
		UserHandler:         handler.NewUserHandler(userService),
		NotificationHandler: handler.NewNotificationHandler(boxService),
		CampaignHandler:     handler.NewCampaignHandler(campaignService),
		ConsentHandler:      handler.NewConsentHandler(consentService),
		IncidentHandler:     handler.NewIncidentHandler(incidentService),
		MedicationHandler:   handler.NewMedicationHandler(medicationService),
		InventoryHandler:    handler.NewInventoryHandler(inventoryService),
		MessageHandler:      handler.NewMessageHandler(messageService),
	}

	router := api.SetupRouter(handlers)

	// 定时任务
	medicationReminderJob := job.NewMedicationReminderJob(medicationRepo, notifierService)
	failedJobRetentionJob := job.NewFailedJobRetentionJob(failedJobRepo, int64(cfg.Notify.FailedRetention))
	cronMgr := cron.NewCronManager(medicationReminderJob, failedJobRetentionJob)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		Producer:     producer,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
