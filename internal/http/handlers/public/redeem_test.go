package public

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tribute-next/internal/config"
	"github.com/tribute-next/internal/models"
	"github.com/tribute-next/internal/provider"
	"github.com/tribute-next/internal/repository"
	"github.com/tribute-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupPublicHandlerTest(t *testing.T, opening string) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:public_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Balance{}, &models.GiftOrder{}, &models.Photo{}, &models.Milestone{}, &models.Setting{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	if opening != "" {
		balance := models.Balance{Amount: models.NewMoneyFromDecimal(decimal.RequireFromString(opening))}
		if err := db.Create(&balance).Error; err != nil {
			t.Fatalf("create balance failed: %v", err)
		}
	}

	cfg := &config.Config{
		Redeem: config.RedeemConfig{
			RequirePreferredTime: true,
			DefaultAddress:       "Our special place",
		},
		Site: config.SiteConfig{
			HeroTitle:    "To My Dearest",
			HeroSubtitle: "Just for you",
		},
	}

	balanceRepo := repository.NewBalanceRepository(db)
	orderRepo := repository.NewGiftOrderRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	milestoneRepo := repository.NewMilestoneRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	container := &provider.Container{
		Config:            cfg,
		BalanceRepo:       balanceRepo,
		GiftOrderRepo:     orderRepo,
		PhotoRepo:         photoRepo,
		MilestoneRepo:     milestoneRepo,
		SettingRepo:       settingRepo,
		BalanceService:    service.NewBalanceService(balanceRepo),
		RedemptionService: service.NewRedemptionService(balanceRepo, orderRepo, nil, cfg.Redeem),
		ContentService:    service.NewContentService(photoRepo, milestoneRepo, settingRepo, cfg.Site),
	}
	h := New(container)

	r := gin.New()
	api := r.Group("/api/v1")
	api.GET("/catalog", h.GetCatalog)
	api.GET("/balance", h.GetBalance)
	api.GET("/page", h.GetPage)
	api.POST("/redeem", h.Redeem)
	api.GET("/orders", h.ListOrders)
	api.GET("/orders/:reference", h.GetOrder)
	return r, db
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (int, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)

	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v (%s)", err, w.Body.String())
	}
	return w.Code, resp
}

func TestGetCatalogGroupsByCategory(t *testing.T) {
	r, _ := setupPublicHandlerTest(t, "500")

	code, resp := doJSON(t, r, http.MethodGet, "/api/v1/catalog", "")
	if code != http.StatusOK || resp.StatusCode != 0 {
		t.Fatalf("want 200/0 got %d/%d", code, resp.StatusCode)
	}

	var data struct {
		Categories []struct {
			Category string `json:"category"`
			Gifts    []struct {
				ID    string `json:"id"`
				Price string `json:"price"`
			} `json:"gifts"`
		} `json:"categories"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("unmarshal catalog failed: %v", err)
	}
	if len(data.Categories) != 3 {
		t.Fatalf("want 3 categories got %d", len(data.Categories))
	}
	if data.Categories[0].Category != "FLOWERS" || len(data.Categories[0].Gifts) != 3 {
		t.Fatalf("unexpected first category: %+v", data.Categories[0])
	}
}

func TestGetBalance(t *testing.T) {
	r, _ := setupPublicHandlerTest(t, "500")

	code, resp := doJSON(t, r, http.MethodGet, "/api/v1/balance", "")
	if code != http.StatusOK || resp.StatusCode != 0 {
		t.Fatalf("want 200/0 got %d/%d", code, resp.StatusCode)
	}
	var data struct {
		Amount string `json:"amount"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("unmarshal balance failed: %v", err)
	}
	if data.Amount != "500.00" {
		t.Fatalf("amount want 500.00 got %s", data.Amount)
	}
}

func TestGetBalanceNotInitialized(t *testing.T) {
	r, _ := setupPublicHandlerTest(t, "")

	code, resp := doJSON(t, r, http.MethodGet, "/api/v1/balance", "")
	if code != http.StatusOK {
		t.Fatalf("http status want 200 got %d", code)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("status_code want 404 got %d", resp.StatusCode)
	}
}

func TestRedeemEndpointSuccess(t *testing.T) {
	r, db := setupPublicHandlerTest(t, "500")

	body := `{"gift_id":"single-rose","delivery_address":"Home","preferred_time":"Friday evening"}`
	code, resp := doJSON(t, r, http.MethodPost, "/api/v1/redeem", body)
	if code != http.StatusOK || resp.StatusCode != 0 {
		t.Fatalf("want 200/0 got %d/%d (%s)", code, resp.StatusCode, resp.Msg)
	}

	var data struct {
		GiftName     string `json:"gift_name"`
		Reference    string `json:"reference"`
		BalanceAfter string `json:"balance_after"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("unmarshal redeem result failed: %v", err)
	}
	if data.GiftName != "Single Rose" || data.BalanceAfter != "400.00" {
		t.Fatalf("unexpected result: %+v", data)
	}

	var count int64
	if err := db.Model(&models.GiftOrder{}).Where("reference = ?", data.Reference).Count(&count).Error; err != nil || count != 1 {
		t.Fatalf("order row should exist: err=%v count=%d", err, count)
	}
}

func TestRedeemEndpointErrors(t *testing.T) {
	r, _ := setupPublicHandlerTest(t, "50")

	cases := []struct {
		name     string
		body     string
		wantCode int
		wantMsg  string
	}{
		{
			name:     "unknown gift",
			body:     `{"gift_id":"golden-unicorn","preferred_time":"evening"}`,
			wantCode: 400,
			wantMsg:  "Unknown gift",
		},
		{
			name:     "missing preferred time",
			body:     `{"gift_id":"single-rose"}`,
			wantCode: 400,
			wantMsg:  "Please fill in all required fields",
		},
		{
			name:     "insufficient balance",
			body:     `{"gift_id":"single-rose","preferred_time":"evening"}`,
			wantCode: 400,
			wantMsg:  "Not enough balance for this gift",
		},
		{
			name:     "missing gift id",
			body:     `{"preferred_time":"evening"}`,
			wantCode: 400,
			wantMsg:  "Invalid request body",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, resp := doJSON(t, r, http.MethodPost, "/api/v1/redeem", tc.body)
			if code != http.StatusOK {
				t.Fatalf("http status want 200 got %d", code)
			}
			if resp.StatusCode != tc.wantCode {
				t.Fatalf("status_code want %d got %d", tc.wantCode, resp.StatusCode)
			}
			if resp.Msg != tc.wantMsg {
				t.Fatalf("msg want %q got %q", tc.wantMsg, resp.Msg)
			}
		})
	}
}

func TestGetOrderEndpoint(t *testing.T) {
	r, _ := setupPublicHandlerTest(t, "500")

	body := `{"gift_id":"teddy-bear","preferred_time":"afternoon"}`
	_, created := doJSON(t, r, http.MethodPost, "/api/v1/redeem", body)
	var result struct {
		Reference string `json:"reference"`
	}
	if err := json.Unmarshal(created.Data, &result); err != nil {
		t.Fatalf("unmarshal redeem result failed: %v", err)
	}

	code, resp := doJSON(t, r, http.MethodGet, "/api/v1/orders/"+result.Reference, "")
	if code != http.StatusOK || resp.StatusCode != 0 {
		t.Fatalf("want 200/0 got %d/%d", code, resp.StatusCode)
	}

	code, resp = doJSON(t, r, http.MethodGet, "/api/v1/orders/GO-MISSING", "")
	if code != http.StatusOK || resp.StatusCode != 404 {
		t.Fatalf("missing order want 200/404 got %d/%d", code, resp.StatusCode)
	}
}

func TestGetPageEndpoint(t *testing.T) {
	r, db := setupPublicHandlerTest(t, "500")

	if err := db.Create(&models.Photo{Image: "a.jpg", Caption: "First", IsActive: true}).Error; err != nil {
		t.Fatalf("create photo failed: %v", err)
	}

	code, resp := doJSON(t, r, http.MethodGet, "/api/v1/page", "")
	if code != http.StatusOK || resp.StatusCode != 0 {
		t.Fatalf("want 200/0 got %d/%d", code, resp.StatusCode)
	}
	var data struct {
		Hero struct {
			Title string `json:"title"`
		} `json:"hero"`
		Photos []struct {
			Caption string `json:"caption"`
		} `json:"photos"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("unmarshal page failed: %v", err)
	}
	if data.Hero.Title != "To My Dearest" {
		t.Fatalf("hero title want To My Dearest got %s", data.Hero.Title)
	}
	if len(data.Photos) != 1 || data.Photos[0].Caption != "First" {
		t.Fatalf("unexpected photos: %+v", data.Photos)
	}
}
