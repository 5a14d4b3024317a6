package models

import "time"

// Income 收入记录模型
// id 为 uuid hex 字符串，创建后不可变；date 以 YYYY-MM-DD 文本存储
type Income struct {
	ID        string    `json:"id" gorm:"primaryKey;size:64"`
	Date      string    `json:"date" gorm:"size:32;not null;index"`
	Source    string    `json:"source" gorm:"size:255"`
	Processor string    `json:"processor" gorm:"size:255"`
	Amount    float64   `json:"amount"`
	Fees      float64   `json:"fees"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName 设置表名
func (Income) TableName() string {
	return "incomes"
}
