package models

import "time"

// Attachment 附件元数据模型
// 文件本体存放在 {uploads}/{kind}/{record_id}/{stored_name}，与元数据行同生共死
type Attachment struct {
	ID           string    `json:"id" gorm:"primaryKey;size:64"`
	Kind         string    `json:"kind" gorm:"size:32;not null;index:idx_attachments_kind_record,priority:1"`
	RecordID     string    `json:"recordId" gorm:"column:record_id;size:64;not null;index:idx_attachments_kind_record,priority:2"`
	OriginalName string    `json:"name" gorm:"column:original_name;size:255;not null"`
	StoredName   string    `json:"-" gorm:"column:stored_name;size:255;not null"`
	MimeType     string    `json:"mime" gorm:"column:mime_type;size:128"`
	Size         int64     `json:"size"`
	CreatedAt    time.Time `json:"createdAt"`

	// URL 为下载路径，查询时由存储层填充，不落库
	URL string `json:"url" gorm:"-"`
}

// TableName 设置表名
func (Attachment) TableName() string {
	return "attachments"
}
