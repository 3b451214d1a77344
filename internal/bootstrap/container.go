package bootstrap

import (
	"context"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"nettrailer-be/internal/config"
	"nettrailer-be/internal/controller"
	"nettrailer-be/internal/handler"
	"nettrailer-be/internal/pkg/logger"
	"nettrailer-be/internal/repository/memory"
	"nettrailer-be/internal/repository/unitofwork"
	"nettrailer-be/internal/service"
	"nettrailer-be/internal/storage"
	"nettrailer-be/internal/websocket"

	pktNats "nettrailer-be/pkg/nats"
)

type Container struct {
	// Controllers
	SessionController controller.ISessionController
	ProfileController controller.IProfileController
	HistoryController controller.IHistoryController
	AccountController controller.IAccountController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// Client-local storage provider
	var provider storage.Provider
	if cfg.Storage.Driver == "memory" {
		provider = storage.NewMemoryProvider()
		log.Printf("[INFO] Using Storage Driver: MEMORY")
	} else {
		provider = storage.NewRedisProvider(rdb)
		log.Printf("[INFO] Using Storage Driver: REDIS")
	}

	// In-memory watch history store
	historyStore := memory.NewHistoryStore()

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(cfg.App.EventsTopic, pubSub)

	sessionService := service.NewSessionService(sysLogger)
	profileService := service.NewProfileService(uowFactory, sysLogger)
	historyService := service.NewHistoryService(historyStore, uowFactory, publisherService, natsPub, sysLogger)
	accountService := service.NewAccountService(profileService, historyService, uowFactory, publisherService, natsPub, sysLogger)

	notifService := service.NewNotificationService(uowFactory, wsHub, wsLogger) // Hub implements NotificationDelivery
	consumerService := service.NewConsumerService(pubSub, cfg.App.EventsTopic, notifService, sysLogger)

	// Handler
	notifHandler := handler.NewNotificationHandler(notifService, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		SessionController: controller.NewSessionController(sessionService, provider),
		ProfileController: controller.NewProfileController(profileService, sessionService, provider),
		HistoryController: controller.NewHistoryController(historyService, sessionService, provider),
		AccountController: controller.NewAccountController(accountService, sessionService, provider),

		ConsumerService: consumerService,

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
	}
}
