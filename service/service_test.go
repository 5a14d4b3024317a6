package service

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bizledger/models"
)

// newTestDB 每个测试用独立的临时 SQLite 文件，跑完自动清理
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Income{},
		&models.Expense{},
		&models.Payroll{},
		&models.Attachment{},
		&models.Setting{},
	); err != nil {
		t.Fatalf("迁移测试数据库失败: %v", err)
	}
	return db
}

// newStores 组一套完整的存取层
func newStores(t *testing.T) (*RecordStore, *AttachmentStore) {
	t.Helper()
	db := newTestDB(t)
	att := NewAttachmentStore(db, filepath.Join(t.TempDir(), "uploads"))
	return NewRecordStore(db, att), att
}
