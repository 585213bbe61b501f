package database

import (
	"fmt"

	"skilltracker_backend/internal/config"
	"skilltracker_backend/internal/model"
	"skilltracker_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Models 需要迁移的全部表
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.ProgressTarget{},
		&model.SkillCategory{},
		&model.Skill{},
		&model.SkillProgress{},
		&model.LearningStreak{},
		&model.Course{},
		&model.Certification{},
		&model.MonthlyStat{},
	}
}

// DSN DATE/DATETIME 列按 UTC 读写，日历日期不做时区换算
func DSN(cfg *config.DatabaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=UTC",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)
}

func InitDB(cfg *config.DatabaseConfig, mode string) (*gorm.DB, error) {
	level := gormlogger.Warn
	if mode == "debug" {
		level = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(DSN(cfg)), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Database connection established", zap.String("host", cfg.Host), zap.String("db", cfg.DBName))
	return db, nil
}

// Migrate 建表并写入默认技能分类
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := seedSkillCategories(db); err != nil {
		return fmt.Errorf("seed skill categories: %w", err)
	}
	logger.Log.Info("Database migration completed")
	return nil
}

// 默认技能分类（表为空时插入）
func seedSkillCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.SkillCategory{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []model.SkillCategory{
		{Name: "Programming Languages", Type: model.SkillTechnical},
		{Name: "Frameworks", Type: model.SkillTechnical},
		{Name: "Databases", Type: model.SkillTechnical},
		{Name: "DevOps", Type: model.SkillTechnical},
		{Name: "Communication", Type: model.SkillSoft},
		{Name: "Leadership", Type: model.SkillSoft},
		{Name: "Problem Solving", Type: model.SkillSoft},
	}
	return db.Create(&defaults).Error
}
