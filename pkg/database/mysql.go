// Package database 提供 MySQL 连接与 GORM 实例的初始化。
package database

import (
	"org_chart_go/internal/model"
	"org_chart_go/pkg/log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"moul.io/zapgorm2"
)

// DB 全局 GORM 数据库实例，在 InitMySQL 成功后可用。
var DB *gorm.DB

// Options 是连接池与 SQL 日志相关的参数。
type Options struct {
	MaxIdleConns  int
	MaxOpenConns  int
	SlowThreshold time.Duration
}

// InitMySQL 根据 DSN 连接 MySQL 并初始化全局 DB。
// SQL 日志通过 zapgorm2 写入应用的 zap logger，只记录 warn 以上级别和慢查询。
func InitMySQL(dsn string, opts Options) error {
	gormLogger := zapgorm2.New(log.GetLogger())
	gormLogger.SlowThreshold = opts.SlowThreshold
	gormLogger.IgnoreRecordNotFoundError = true
	gormLogger.SetAsDefault()

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormLogger.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Error("Failed to connect to MySQL", err)
		return err
	}

	sqlDB, err := DB.DB()
	if err != nil {
		log.Error("Failed to get SQL DB", err)
		return err
	}
	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info("MySQL initialized successfully")
	return nil
}

// RunMigrate 创建或更新 employees 表结构。
func RunMigrate() error {
	log.Info("Running migrations...")

	if err := DB.AutoMigrate(&model.EmployeeRecord{}); err != nil {
		log.Errorf("Failed to run migrations: %v", err)
		return err
	}

	log.Info("Migrations completed successfully")
	return nil
}
