package models

import "time"

// Payroll 工资/转账记录模型
// 创建时会在同一事务内向 expenses 写入一条类别为 Payroll 的镜像支出
type Payroll struct {
	ID        string    `json:"id" gorm:"primaryKey;size:64"`
	Date      string    `json:"date" gorm:"size:32;not null;index"`
	Employee  string    `json:"employee" gorm:"size:255;not null"`
	Amount    float64   `json:"amount"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName 设置表名
func (Payroll) TableName() string {
	return "payroll"
}
