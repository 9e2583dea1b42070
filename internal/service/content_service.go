package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tribute-next/internal/cache"
	"github.com/tribute-next/internal/config"
	"github.com/tribute-next/internal/constants"
	"github.com/tribute-next/internal/logger"
	"github.com/tribute-next/internal/models"
	"github.com/tribute-next/internal/repository"
)

const defaultContentCacheTTL = 60 * time.Second

// HeroContent 首屏内容
type HeroContent struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// PageContent 页面内容（首屏/相册/留言/时间线）
type PageContent struct {
	Hero       HeroContent        `json:"hero"`
	Photos     []models.Photo     `json:"photos"`
	Note       string             `json:"note"`
	Milestones []models.Milestone `json:"milestones"`
}

// ContentService 页面内容服务
type ContentService struct {
	photoRepo     repository.PhotoRepository
	milestoneRepo repository.MilestoneRepository
	settingRepo   repository.SettingRepository
	siteCfg       config.SiteConfig
}

// NewContentService 创建页面内容服务
func NewContentService(
	photoRepo repository.PhotoRepository,
	milestoneRepo repository.MilestoneRepository,
	settingRepo repository.SettingRepository,
	siteCfg config.SiteConfig,
) *ContentService {
	return &ContentService{
		photoRepo:     photoRepo,
		milestoneRepo: milestoneRepo,
		settingRepo:   settingRepo,
		siteCfg:       siteCfg,
	}
}

// GetPage 组装页面内容，短 TTL 缓存
func (s *ContentService) GetPage(ctx context.Context) (*PageContent, error) {
	var cached PageContent
	found, err := cache.GetJSON(ctx, constants.CacheKeyPageContent, &cached)
	if err != nil {
		logger.Warnw("page_content_cache_read_failed", "error", err)
	}
	if err == nil && found {
		return &cached, nil
	}

	photos, err := s.photoRepo.ListActive()
	if err != nil {
		return nil, err
	}
	milestones, err := s.milestoneRepo.ListOrdered()
	if err != nil {
		return nil, err
	}

	hero, note := s.resolveSiteText()
	content := &PageContent{
		Hero:       hero,
		Photos:     photos,
		Note:       note,
		Milestones: milestones,
	}

	ttl := defaultContentCacheTTL
	if s.siteCfg.ContentCacheTTLS > 0 {
		ttl = time.Duration(s.siteCfg.ContentCacheTTLS) * time.Second
	}
	if err := cache.SetJSON(ctx, constants.CacheKeyPageContent, content, ttl); err != nil {
		logger.Warnw("page_content_cache_write_failed", "error", err)
	}
	return content, nil
}

// UpdateSiteText 覆盖首屏与留言文案（写入设置表并清理缓存）
func (s *ContentService) UpdateSiteText(ctx context.Context, hero HeroContent, note string) error {
	value := models.JSON{
		constants.SettingFieldHeroTitle:    strings.TrimSpace(hero.Title),
		constants.SettingFieldHeroSubtitle: strings.TrimSpace(hero.Subtitle),
		constants.SettingFieldNote:         strings.TrimSpace(note),
	}
	if _, err := s.settingRepo.Upsert(constants.SettingKeySiteContent, value); err != nil {
		return err
	}
	if err := cache.Del(ctx, constants.CacheKeyPageContent); err != nil {
		logger.Warnw("page_content_cache_del_failed", "error", err)
	}
	return nil
}

// resolveSiteText 设置表中的文案优先，缺省退回配置值
func (s *ContentService) resolveSiteText() (HeroContent, string) {
	hero := HeroContent{
		Title:    s.siteCfg.HeroTitle,
		Subtitle: s.siteCfg.HeroSubtitle,
	}
	note := s.siteCfg.Note

	setting, err := s.settingRepo.GetByKey(constants.SettingKeySiteContent)
	if err != nil {
		logger.Warnw("site_content_setting_read_failed", "error", err)
		return hero, note
	}
	if setting == nil {
		return hero, note
	}
	hero.Title = settingField(setting.ValueJSON, constants.SettingFieldHeroTitle, hero.Title)
	hero.Subtitle = settingField(setting.ValueJSON, constants.SettingFieldHeroSubtitle, hero.Subtitle)
	note = settingField(setting.ValueJSON, constants.SettingFieldNote, note)
	return hero, note
}

func settingField(value models.JSON, key, fallback string) string {
	if value == nil {
		return fallback
	}
	raw, ok := value[key]
	if !ok {
		return fallback
	}
	normalized := strings.TrimSpace(fmt.Sprintf("%v", raw))
	if normalized == "" {
		return fallback
	}
	return normalized
}
