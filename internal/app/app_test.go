package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"skilltracker_backend/internal/config"
	"skilltracker_backend/internal/model"
	"skilltracker_backend/internal/util"
	"skilltracker_backend/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "app-test-secret"

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Port: "0", Mode: gin.TestMode},
		JWT:       config.JWTConfig{Secret: testSecret, ExpireTime: time.Hour},
		RateLimit: config.RateLimitConfig{MaxRequests: 1000, WindowMinutes: 1},
		Analytics: config.AnalyticsConfig{Timezone: "UTC", DefaultMonthlyGoals: 4},
	}
}

func newTestApp(t *testing.T) (*App, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	return New(testConfig(), db, nil), db
}

func tokenFor(t *testing.T, user *model.User) string {
	t.Helper()
	token, err := util.GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func get(t *testing.T, a *App, path, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w, body
}

func createUser(t *testing.T, db *gorm.DB) *model.User {
	t.Helper()
	user := &model.User{Name: "Ada", Email: "ada@example.com", Password: "x"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestHealthIsPublic(t *testing.T) {
	a, _ := newTestApp(t)

	w, body := get(t, a, "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, http.StatusOK, body.Code)
	assert.JSONEq(t, `{"status":"ok","components":{"database":"up","cache":"disabled"}}`, string(body.Data))
	assert.NotEmpty(t, w.Header().Get(util.RequestIDHeader))
}

func TestReportsRequireToken(t *testing.T) {
	a, _ := newTestApp(t)

	for _, path := range []string{"/api/reports/stats", "/api/skills", "/api/profile/overview"} {
		w, body := get(t, a, path, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.Equal(t, http.StatusUnauthorized, body.Code, path)
	}
}

func TestReportStatsSeedsCurrentMonthOnce(t *testing.T) {
	a, db := newTestApp(t)
	user := createUser(t, db)
	token := tokenFor(t, user)

	for i := 0; i < 2; i++ {
		w, body := get(t, a, "/api/reports/stats", token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"progress":0,"goals":{"completed":0,"total":0},"studyTime":0,"certifications":0}`, string(body.Data))
	}

	var count int64
	require.NoError(t, db.Model(&model.MonthlyStat{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSkillGrowthPivotsByCategory(t *testing.T) {
	a, db := newTestApp(t)
	user := createUser(t, db)

	var tech, soft model.SkillCategory
	require.NoError(t, db.Where("type = ?", model.SkillTechnical).First(&tech).Error)
	require.NoError(t, db.Where("type = ?", model.SkillSoft).First(&soft).Error)

	goSkill := &model.Skill{UserID: user.ID, CategoryID: tech.ID, Name: "Go", ProficiencyLevel: 80}
	talk := &model.Skill{UserID: user.ID, CategoryID: soft.ID, Name: "Talks", ProficiencyLevel: 50}
	require.NoError(t, db.Create(goSkill).Error)
	require.NoError(t, db.Create(talk).Error)

	jan := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
	progress := []model.SkillProgress{
		{SkillID: goSkill.ID, UserID: user.ID, RecordedDate: jan, ProficiencyLevel: 60},
		{SkillID: goSkill.ID, UserID: user.ID, RecordedDate: feb, ProficiencyLevel: 80},
		{SkillID: talk.ID, UserID: user.ID, RecordedDate: feb, ProficiencyLevel: 50},
	}
	require.NoError(t, db.Create(&progress).Error)

	w, body := get(t, a, "/api/reports/skill-growth", tokenFor(t, user))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[
		{"month":"Jan","technical":60,"soft":0},
		{"month":"Feb","technical":80,"soft":50}
	]`, string(body.Data))
}

func TestProfileOverview(t *testing.T) {
	a, db := newTestApp(t)
	user := createUser(t, db)

	w, body := get(t, a, "/api/profile/overview", tokenFor(t, user))
	require.Equal(t, http.StatusOK, w.Code)

	var overview model.ProfileOverview
	require.NoError(t, json.Unmarshal(body.Data, &overview))
	assert.Equal(t, "Ada", overview.Profile.Name)
	assert.Equal(t, 4, overview.Highlights.MonthlyGoalsTotal)
	assert.Equal(t, "0.0", overview.Highlights.AverageRating)
}

func TestProfileOverviewUnknownUser(t *testing.T) {
	a, _ := newTestApp(t)
	ghost := &model.User{BaseModel: model.BaseModel{ID: 404}, Email: "ghost@example.com"}

	w, body := get(t, a, "/api/profile/overview", tokenFor(t, ghost))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, util.ErrUserNotFound.Error(), body.Message)
}

func TestConfigReloadUpdatesAnalyticsSettings(t *testing.T) {
	a, _ := newTestApp(t)

	next := testConfig()
	next.Analytics.MonthlySeriesLimit = 3
	next.Analytics.CacheTTLSeconds = 120
	a.applyConfig(next)

	assert.Same(t, next, a.CurrentConfig())
	assert.Equal(t, 3, a.assembler.Settings().MonthlySeriesLimit)
	assert.Equal(t, 2*time.Minute, a.reportCache.TTL())
}
