// 写入演示数据并打印可直接调用接口的 JWT
//
// 用法: go run scripts/seed_demo.go -plan scripts/seed_demo.yaml

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"skilltracker_backend/internal/config"
	"skilltracker_backend/internal/model"
	"skilltracker_backend/internal/repository"
	"skilltracker_backend/internal/util"
	"skilltracker_backend/pkg/database"
	"skilltracker_backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type seedPlan struct {
	Months int        `yaml:"months"`
	Seed   int64      `yaml:"seed"`
	Users  []seedUser `yaml:"users"`
}

type seedUser struct {
	Name           string       `yaml:"name"`
	Email          string       `yaml:"email"`
	Password       string       `yaml:"password"`
	MonthlyTarget  *float64     `yaml:"monthly_target"`
	Skills         []seedSkill  `yaml:"skills"`
	Courses        []seedCourse `yaml:"courses"`
	Certifications []seedCert   `yaml:"certifications"`
}

type seedSkill struct {
	Name     string  `yaml:"name"`
	Category string  `yaml:"category"`
	Start    float64 `yaml:"start"`
	Step     float64 `yaml:"step"`
}

type seedCourse struct {
	Title    string   `yaml:"title"`
	Status   string   `yaml:"status"`
	Progress float64  `yaml:"progress"`
	Rating   *float64 `yaml:"rating"`
}

type seedCert struct {
	Name            string `yaml:"name"`
	Issuer          string `yaml:"issuer"`
	IssuedMonthsAgo int    `yaml:"issued_months_ago"`
	ValidMonths     int    `yaml:"valid_months"`
}

func main() {
	configDir := flag.String("config", "configs", "配置文件所在目录")
	planFile := flag.String("plan", "scripts/seed_demo.yaml", "演示数据计划")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}
	logger.InitLogger(cfg)

	data, err := os.ReadFile(*planFile)
	if err != nil {
		log.Fatalf("无法读取数据计划: %v", err)
	}
	var plan seedPlan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		log.Fatalf("解析数据计划失败: %v", err)
	}
	if plan.Months <= 0 {
		plan.Months = 6
	}

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	rng := rand.New(rand.NewSource(plan.Seed))
	today := time.Now().UTC().Truncate(24 * time.Hour)
	ctx := context.Background()

	for _, u := range plan.Users {
		user, err := seedOne(ctx, db, rng, u, plan.Months, today)
		if err != nil {
			log.Fatalf("写入用户 %s 失败: %v", u.Email, err)
		}
		token, err := util.GenerateJWT(user, cfg.JWT.Secret, cfg.JWT.ExpireTime)
		if err != nil {
			log.Fatalf("生成 token 失败: %v", err)
		}
		fmt.Printf("%s (id=%d)\n  Authorization: Bearer %s\n", user.Email, user.ID, token)
	}
}

func seedOne(ctx context.Context, db *gorm.DB, rng *rand.Rand, u seedUser, months int, today time.Time) (*model.User, error) {
	var user model.User
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repository.NewUserRepository(tx)
		_, err := users.FindByEmail(ctx, u.Email)
		if err == nil {
			return fmt.Errorf("user %s already exists", u.Email)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user = model.User{Name: u.Name, Email: u.Email, Password: string(hash)}
		if err := users.Create(ctx, &user); err != nil {
			return err
		}
		if err := tx.Create(&model.ProgressTarget{UserID: user.ID, MonthlyTarget: u.MonthlyTarget}).Error; err != nil {
			return err
		}

		if err := seedSkills(ctx, repository.NewSkillRepository(tx), rng, user.ID, u.Skills, months, today); err != nil {
			return err
		}
		if err := seedActivity(tx, rng, user.ID, months, today); err != nil {
			return err
		}

		courses := repository.NewCourseRepository(tx)
		for _, c := range u.Courses {
			course := model.Course{UserID: user.ID, Title: c.Title, Status: model.CourseStatus(c.Status), Progress: c.Progress, Rating: c.Rating}
			if err := courses.Create(ctx, &course); err != nil {
				return err
			}
		}
		certs := repository.NewCertificationRepository(tx)
		for _, c := range u.Certifications {
			cert := model.Certification{
				UserID:       user.ID,
				Name:         c.Name,
				Issuer:       c.Issuer,
				IssueDate:    today.AddDate(0, -c.IssuedMonthsAgo, 0),
				CredentialID: fmt.Sprintf("DEMO-%d-%04d", user.ID, rng.Intn(10000)),
			}
			if c.ValidMonths > 0 {
				expiry := cert.IssueDate.AddDate(0, c.ValidMonths, 0)
				cert.ExpiryDate = &expiry
			}
			if err := certs.Create(ctx, &cert); err != nil {
				return err
			}
		}

		return seedMonthlyStats(tx, user.ID, len(u.Courses), len(u.Certifications), months, today)
	})
	return &user, err
}

// 每个技能每月一条快照，熟练度逐月上升
func seedSkills(ctx context.Context, repo *repository.SkillRepository, rng *rand.Rand, userID uint, skills []seedSkill, months int, today time.Time) error {
	categories, err := repo.ListCategories(ctx)
	if err != nil {
		return err
	}
	byName := make(map[string]uint, len(categories))
	for _, c := range categories {
		byName[c.Name] = c.ID
	}

	for _, s := range skills {
		categoryID, ok := byName[s.Category]
		if !ok {
			return fmt.Errorf("unknown skill category %q", s.Category)
		}
		skill := model.Skill{UserID: userID, CategoryID: categoryID, Name: s.Name}
		if err := repo.Create(ctx, &skill); err != nil {
			return err
		}

		level := s.Start
		for m := months - 1; m >= 0; m-- {
			date := model.MonthStart(today).AddDate(0, -m, rng.Intn(27))
			if date.After(today) {
				date = today
			}
			level = model.ClampPercent(level + s.Step*(0.5+rng.Float64()))
			if err := repo.RecordProgress(ctx, &model.SkillProgress{SkillID: skill.ID, UserID: userID, RecordedDate: date, ProficiencyLevel: level}); err != nil {
				return err
			}
		}
		skill.ProficiencyLevel = level
		if err := repo.DB.WithContext(ctx).Save(&skill).Error; err != nil {
			return err
		}
	}
	return nil
}

// 大约七成的日子有学习记录，最近几天保证连续
func seedActivity(tx *gorm.DB, rng *rand.Rand, userID uint, months int, today time.Time) error {
	start := model.MonthStart(today).AddDate(0, -(months - 1), 0)
	var records []model.LearningStreak
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		recent := today.Sub(d) < 5*24*time.Hour
		if !recent && rng.Float64() > 0.7 {
			continue
		}
		hours := float64(rng.Intn(8)+1) * 0.5
		records = append(records, model.LearningStreak{UserID: userID, Date: d, HoursSpent: hours})
	}
	return tx.CreateInBatches(records, 200).Error
}

func seedMonthlyStats(tx *gorm.DB, userID uint, courses, certs, months int, today time.Time) error {
	for m := months - 1; m >= 0; m-- {
		month := model.MonthStart(today).AddDate(0, -m, 0)
		var hours float64
		if err := tx.Model(&model.LearningStreak{}).
			Where("user_id = ? AND date >= ? AND date < ?", userID, month, month.AddDate(0, 1, 0)).
			Select("COALESCE(SUM(hours_spent), 0)").
			Scan(&hours).Error; err != nil {
			return err
		}

		stat := model.MonthlyStat{
			UserID:         userID,
			Month:          month,
			ActiveCourses:  courses - m%2,
			Certifications: certs,
			SkillsMastered: months - m,
			LearningHours:  hours,
			CompletedGoals: (months - m) % 5,
			TotalGoals:     4,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{"active_courses", "certifications", "skills_mastered", "learning_hours", "completed_goals", "total_goals"}),
		}).Create(&stat).Error
		if err != nil {
			return err
		}
	}
	return nil
}
