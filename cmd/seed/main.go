package main

import (
	"fmt"
	"time"

	"github.com/tribute-next/internal/config"
	"github.com/tribute-next/internal/constants"
	"github.com/tribute-next/internal/logger"
	"github.com/tribute-next/internal/models"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 初始化余额单行记录
	if err := models.InitDefaultBalance(cfg.Redeem.OpeningBalance); err != nil {
		stdLog.Printf("Failed to init balance: %v", err)
	} else {
		stdLog.Printf("Balance initialized (opening: %s)", cfg.Redeem.OpeningBalance)
	}

	// 添加相册照片
	photos := []models.Photo{
		{
			Image:     "https://images.unsplash.com/photo-1518621736915-f3b1c41bfd00?w=800",
			Caption:   "Where it all began",
			IsActive:  true,
			SortOrder: 600,
		},
		{
			Image:     "https://images.unsplash.com/photo-1507525428034-b723cf961d3e?w=800",
			Caption:   "That afternoon at the beach",
			IsActive:  true,
			SortOrder: 500,
		},
		{
			Image:     "https://images.unsplash.com/photo-1414235077428-338989a2e8c0?w=800",
			Caption:   "Dinner we almost missed",
			IsActive:  true,
			SortOrder: 400,
		},
		{
			Image:     "https://images.unsplash.com/photo-1469474968028-56623f02e42e?w=800",
			Caption:   "The long drive north",
			IsActive:  true,
			SortOrder: 300,
		},
		{
			Image:     "https://images.unsplash.com/photo-1495616811223-4d98c6e9c869?w=800",
			Caption:   "Fireworks, and you laughing",
			IsActive:  true,
			SortOrder: 200,
		},
		{
			Image:     "https://images.unsplash.com/photo-1522748906645-95d8adfd52c7?w=800",
			Caption:   "Just an ordinary Sunday",
			IsActive:  false,
			SortOrder: 100,
		},
	}

	for _, photo := range photos {
		var existing models.Photo
		if err := models.DB.Where("image = ?", photo.Image).First(&existing).Error; err != nil {
			if err := models.DB.Create(&photo).Error; err != nil {
				stdLog.Printf("Failed to create photo %s: %v", photo.Caption, err)
			} else {
				stdLog.Printf("Created photo: %s", photo.Caption)
			}
		} else {
			existing.Caption = photo.Caption
			existing.IsActive = photo.IsActive
			existing.SortOrder = photo.SortOrder
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update photo %s: %v", photo.Caption, err)
			} else {
				stdLog.Printf("Updated photo: %s", photo.Caption)
			}
		}
	}

	// 添加时间线里程碑
	now := time.Now()
	met := now.AddDate(-3, 0, 0)
	firstDate := now.AddDate(-3, 1, 0)
	adventures := now.AddDate(-2, 0, 0)
	moments := now.AddDate(-1, 0, 0)

	milestones := []models.Milestone{
		{
			Title:       "The day we met",
			Description: "A crowded room, and somehow you were the only person in it.",
			OccurredAt:  &met,
			SortOrder:   400,
		},
		{
			Title:       "Our first date",
			Description: "Coffee that turned into dinner that turned into walking until midnight.",
			OccurredAt:  &firstDate,
			SortOrder:   300,
		},
		{
			Title:       "Adventures together",
			Description: "Trains, tents, wrong turns and the best detours.",
			OccurredAt:  &adventures,
			SortOrder:   200,
		},
		{
			Title:       "Beautiful moments",
			Description: "All the small ones that added up to everything.",
			OccurredAt:  &moments,
			SortOrder:   100,
		},
	}

	for _, milestone := range milestones {
		var existing models.Milestone
		if err := models.DB.Where("title = ?", milestone.Title).First(&existing).Error; err != nil {
			if err := models.DB.Create(&milestone).Error; err != nil {
				stdLog.Printf("Failed to create milestone %s: %v", milestone.Title, err)
			} else {
				stdLog.Printf("Created milestone: %s", milestone.Title)
			}
		} else {
			existing.Description = milestone.Description
			existing.OccurredAt = milestone.OccurredAt
			existing.SortOrder = milestone.SortOrder
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update milestone %s: %v", milestone.Title, err)
			} else {
				stdLog.Printf("Updated milestone: %s", milestone.Title)
			}
		}
	}

	// 更新页面文案配置
	contentData := map[string]interface{}{
		constants.SettingFieldHeroTitle:    "To My Dearest",
		constants.SettingFieldHeroSubtitle: "A little corner of the internet, just for you",
		constants.SettingFieldNote:         "Every gift here is yours to claim. Spend your points wisely, or don't. They were always going to be yours anyway.",
	}

	var setting models.Setting
	if err := models.DB.Where("key = ?", constants.SettingKeySiteContent).First(&setting).Error; err != nil {
		setting = models.Setting{
			Key:       constants.SettingKeySiteContent,
			ValueJSON: models.JSON(contentData),
		}
		if err := models.DB.Create(&setting).Error; err != nil {
			stdLog.Printf("Failed to create site content: %v", err)
		} else {
			stdLog.Println("Created site content")
		}
	} else {
		setting.ValueJSON = models.JSON(contentData)
		if err := models.DB.Save(&setting).Error; err != nil {
			stdLog.Printf("Failed to update site content: %v", err)
		} else {
			stdLog.Println("Updated site content")
		}
	}

	fmt.Println("\n✅ Seed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- Balance row (opening amount from config)")
	fmt.Println("- 6 Photos (5 active)")
	fmt.Println("- 4 Milestones")
	fmt.Println("- Site content")
}
