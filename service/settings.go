package service

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bizledger/models"
)

// SettingsStore 键值设置存取层，扫描端点等运行时配置存这里
type SettingsStore struct {
	db *gorm.DB
}

// NewSettingsStore 创建设置存取层
func NewSettingsStore(db *gorm.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// All 返回全部设置键值
func (s *SettingsStore) All() (map[string]string, error) {
	var rows []models.Setting
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

// Lookup 精确查一个键，不存在返回 ErrNotFound
func (s *SettingsStore) Lookup(key string) (string, error) {
	var row models.Setting
	err := s.db.Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return row.Value, nil
}

// Get 查一个键，不存在或查询失败都退回默认值
func (s *SettingsStore) Get(key, fallback string) string {
	value, err := s.Lookup(key)
	if err != nil {
		return fallback
	}
	return value
}

// Set 写入一个键，空值等价于删除
func (s *SettingsStore) Set(key, value string) error {
	if value == "" {
		return s.Delete(key)
	}
	row := models.Setting{Key: key, Value: value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&row).Error
}

// Delete 删除一个键，键不存在也算成功
func (s *SettingsStore) Delete(key string) error {
	return s.db.Where("key = ?", key).Delete(&models.Setting{}).Error
}

// Clear 清空全部设置，恢复出厂用
func (s *SettingsStore) Clear() error {
	return s.db.Where("1 = 1").Delete(&models.Setting{}).Error
}
