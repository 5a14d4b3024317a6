package database

import (
	"fmt"
	"log"

	"bizledger/config"
	"bizledger/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init 初始化数据库连接
func Init(cfg *config.Config) error {
	// SQLite DSN：写忙时等待 5 秒，WAL 模式提升并发读
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", cfg.Database.Path)

	logLevel := logger.Warn
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("连接数据库失败: %w", err)
	}

	// 获取底层 *sql.DB 连接池配置
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	// 设置连接池参数
	sqlDB.SetMaxIdleConns(4)
	sqlDB.SetMaxOpenConns(16)

	// 自动迁移数据库表
	if err := DB.AutoMigrate(
		&models.Income{},
		&models.Expense{},
		&models.Payroll{},
		&models.Attachment{},
		&models.Setting{},
	); err != nil {
		return err
	}

	// 兼容历史数据：老库的 delivery_fee 列可能为 NULL
	_ = DB.Model(&models.Expense{}).
		Where("delivery_fee IS NULL").
		Update("delivery_fee", 0).Error

	log.Println("数据库初始化成功")
	return nil
}

// GetDB 获取数据库连接
func GetDB() *gorm.DB {
	return DB
}
