package provider

import (
	"github.com/tribute-next/internal/cache"
	"github.com/tribute-next/internal/config"
	"github.com/tribute-next/internal/logger"
	"github.com/tribute-next/internal/models"
	"github.com/tribute-next/internal/notifier"
	"github.com/tribute-next/internal/queue"
	"github.com/tribute-next/internal/repository"
	"github.com/tribute-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	BalanceRepo   repository.BalanceRepository
	GiftOrderRepo repository.GiftOrderRepository
	PhotoRepo     repository.PhotoRepository
	MilestoneRepo repository.MilestoneRepository
	SettingRepo   repository.SettingRepository

	// Services
	BalanceService      *service.BalanceService
	RedemptionService   *service.RedemptionService
	ContentService      *service.ContentService
	NotificationService *service.NotificationService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.BalanceRepo = repository.NewBalanceRepository(db)
	c.GiftOrderRepo = repository.NewGiftOrderRepository(db)
	c.PhotoRepo = repository.NewPhotoRepository(db)
	c.MilestoneRepo = repository.NewMilestoneRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
}

func (c *Container) initServices() {
	c.NotificationService = service.NewNotificationService(c.QueueClient, buildNotifiers(c.Config.Notify))
	c.BalanceService = service.NewBalanceService(c.BalanceRepo)
	c.RedemptionService = service.NewRedemptionService(c.BalanceRepo, c.GiftOrderRepo, c.NotificationService, c.Config.Redeem)
	c.ContentService = service.NewContentService(c.PhotoRepo, c.MilestoneRepo, c.SettingRepo, c.Config.Site)
}

// buildNotifiers 按配置组装通知渠道，配置不完整的渠道跳过并告警
func buildNotifiers(cfg config.NotifyConfig) []notifier.Notifier {
	notifiers := make([]notifier.Notifier, 0, 2)
	if cfg.Email.Enabled {
		n, err := notifier.NewEmailNotifier(notifier.EmailConfig{
			APIKey:    cfg.Email.APIKey,
			Endpoint:  cfg.Email.Endpoint,
			From:      cfg.Email.From,
			Recipient: cfg.Email.Recipient,
			TimeoutMS: cfg.Email.TimeoutMS,
		})
		if err != nil {
			logger.Warnw("provider_email_notifier_init_failed", "error", err)
		} else {
			notifiers = append(notifiers, n)
		}
	}
	if cfg.WhatsApp.Enabled {
		n, err := notifier.NewWhatsAppNotifier(notifier.WhatsAppConfig{
			AccessToken:   cfg.WhatsApp.AccessToken,
			PhoneNumberID: cfg.WhatsApp.PhoneNumberID,
			Recipient:     cfg.WhatsApp.Recipient,
			APIVersion:    cfg.WhatsApp.APIVersion,
			TimeoutMS:     cfg.WhatsApp.TimeoutMS,
		})
		if err != nil {
			logger.Warnw("provider_whatsapp_notifier_init_failed", "error", err)
		} else {
			notifiers = append(notifiers, n)
		}
	}
	return notifiers
}
