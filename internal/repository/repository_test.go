package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"skilltracker_backend/internal/analytics"
	"skilltracker_backend/internal/model"
	"skilltracker_backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", t.Name())
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
	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func createUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	u := &model.User{Name: "Test", Email: email, Password: "x"}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func categoryID(t *testing.T, db *gorm.DB, typ model.SkillType) (uint, string) {
	t.Helper()
	var c model.SkillCategory
	require.NoError(t, db.Where("type = ?", typ).Order("id").First(&c).Error)
	return c.ID, c.Name
}

func TestMonthlyStatFindMissingReturnsNil(t *testing.T) {
	db := newTestDB(t)
	repo := NewMonthlyStatRepository(db)

	stat, err := repo.FindMonthlyStat(context.Background(), 1, day(2024, time.June, 1))
	require.NoError(t, err)
	assert.Nil(t, stat)
}

func TestMonthlyStatInsertDuplicateIsReported(t *testing.T) {
	db := newTestDB(t)
	repo := NewMonthlyStatRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.InsertMonthlyStat(ctx, &model.MonthlyStat{UserID: 1, Month: day(2024, time.June, 17), TotalGoals: 4}))
	err := repo.InsertMonthlyStat(ctx, &model.MonthlyStat{UserID: 1, Month: day(2024, time.June, 1)})
	require.ErrorIs(t, err, analytics.ErrDuplicateMonthlyStat)

	stat, err := repo.FindMonthlyStat(ctx, 1, day(2024, time.June, 30))
	require.NoError(t, err)
	require.NotNil(t, stat)
	assert.Equal(t, 4, stat.TotalGoals)

	var count int64
	require.NoError(t, db.Model(&model.MonthlyStat{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEnsureMonthlyStatConcurrentSeedsOneRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewMonthlyStatRepository(db)
	a := analytics.NewAssembler(repo, analytics.WithClock(func() time.Time {
		return time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC)
	}))

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = a.EnsureMonthlyStat(context.Background(), 5, a.CurrentMonth())
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&model.MonthlyStat{}).Where("user_id = ?", 5).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEnsureMonthlyStatReseedsAfterDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewMonthlyStatRepository(db)
	ctx := context.Background()
	june := day(2024, time.June, 1)
	require.NoError(t, repo.InsertMonthlyStat(ctx, &model.MonthlyStat{UserID: 3, Month: june, TotalGoals: 6}))

	existing, err := repo.FindMonthlyStat(ctx, 3, june)
	require.NoError(t, err)
	require.NotNil(t, existing)
	require.NoError(t, db.Delete(existing).Error)

	a := analytics.NewAssembler(repo, analytics.WithClock(func() time.Time {
		return time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC)
	}))
	stat, err := a.EnsureMonthlyStat(ctx, 3, june)
	require.NoError(t, err)
	assert.NotZero(t, stat.ID)
	assert.Zero(t, stat.TotalGoals)

	var count int64
	require.NoError(t, db.Model(&model.MonthlyStat{}).Where("user_id = ?", 3).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestStreakRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewStreakRepository(db)
	ctx := context.Background()
	for _, d := range []int{3, 1, 2} {
		require.NoError(t, repo.Create(ctx, &model.LearningStreak{UserID: 1, Date: day(2024, time.May, d), HoursSpent: float64(d)}))
	}
	require.NoError(t, repo.Create(ctx, &model.LearningStreak{UserID: 2, Date: day(2024, time.May, 1), HoursSpent: 9}))

	all, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 1, all[0].Date.Day())
	assert.Equal(t, 3, all[2].Date.Day())

	recent, err := repo.ListSince(ctx, 1, day(2024, time.May, 2))
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestSkillRepositoryJoins(t *testing.T) {
	db := newTestDB(t)
	repo := NewSkillRepository(db)
	ctx := context.Background()
	user := createUser(t, db, "skills@example.com")
	techID, techName := categoryID(t, db, model.SkillTechnical)
	softID, _ := categoryID(t, db, model.SkillSoft)

	goSkill := &model.Skill{UserID: user.ID, CategoryID: techID, Name: "Go", ProficiencyLevel: 130}
	talk := &model.Skill{UserID: user.ID, CategoryID: softID, Name: "Talks", ProficiencyLevel: 40}
	require.NoError(t, repo.Create(ctx, goSkill))
	require.NoError(t, repo.Create(ctx, talk))
	require.NoError(t, repo.RecordProgress(ctx, &model.SkillProgress{SkillID: goSkill.ID, UserID: user.ID, RecordedDate: day(2024, time.February, 10), ProficiencyLevel: 80}))
	require.NoError(t, repo.RecordProgress(ctx, &model.SkillProgress{SkillID: goSkill.ID, UserID: user.ID, RecordedDate: day(2024, time.January, 15), ProficiencyLevel: 60}))

	skills, err := repo.ListWithCategory(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, skills, 2)
	assert.Equal(t, model.SkillWithCategory{
		ID: goSkill.ID, UserID: user.ID, Name: "Go", Category: model.SkillTechnical, CategoryName: techName, ProficiencyLevel: 100,
	}, skills[0])
	assert.Equal(t, model.SkillSoft, skills[1].Category)

	records, err := repo.ProficiencyHistory(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Go", records[0].SkillName)
	assert.Equal(t, model.SkillTechnical, records[0].Category)
	assert.Equal(t, 60.0, records[0].ProficiencyLevel)
	assert.True(t, records[0].RecordedDate.Equal(day(2024, time.January, 15)))

	a := analytics.NewAssembler(nil)
	growth := a.SkillGrowth(records, analytics.SkillCategories())
	require.Len(t, growth, 2)
	assert.Equal(t, "Jan", growth[0].Month)
	assert.Equal(t, 80.0, growth[1].Get("technical"))
}

func TestUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	user := createUser(t, db, "target@example.com")

	found, err := repo.FindByEmail(ctx, "target@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = repo.FindByID(ctx, 999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	target, err := repo.FindMonthlyTarget(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, target)

	hours := 25.0
	require.NoError(t, db.Create(&model.ProgressTarget{UserID: user.ID, MonthlyTarget: &hours}).Error)
	target, err = repo.FindMonthlyTarget(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, target)
	assert.Equal(t, 25.0, *target)
}

func TestCourseAndCertificationRepositories(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	courses := NewCourseRepository(db)
	certs := NewCertificationRepository(db)

	require.NoError(t, courses.Create(ctx, &model.Course{UserID: 1, Title: "A", Status: model.CourseCompleted, Progress: 140}))
	require.NoError(t, courses.Create(ctx, &model.Course{UserID: 2, Title: "B"}))
	list, err := courses.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 100.0, list[0].Progress)

	require.NoError(t, certs.Create(ctx, &model.Certification{UserID: 1, Name: "late", Issuer: "x", IssueDate: day(2024, time.March, 1)}))
	require.NoError(t, certs.Create(ctx, &model.Certification{UserID: 1, Name: "early", Issuer: "x", IssueDate: day(2023, time.March, 1)}))
	got, err := certs.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "early", got[0].Name)
	assert.Equal(t, model.CertActive, got[0].Status)
}
