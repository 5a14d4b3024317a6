package models

import "time"

// Expense 支出记录模型
// JSON 字段名与前端约定保持 camelCase（orderNumber / paidFrom / deliveryFee）
type Expense struct {
	ID          string    `json:"id" gorm:"primaryKey;size:64"`
	Date        string    `json:"date" gorm:"size:32;not null;index"`
	Category    string    `json:"category" gorm:"size:255"`
	Seller      string    `json:"seller" gorm:"size:255"`
	Items       string    `json:"items"`
	OrderNumber string    `json:"orderNumber" gorm:"column:order_number;size:255"`
	Total       float64   `json:"total"`
	Notes       string    `json:"notes"`
	Source      string    `json:"source" gorm:"size:255"`
	PaidFrom    string    `json:"paidFrom" gorm:"column:paid_from;size:255"`
	DeliveryFee float64   `json:"deliveryFee" gorm:"column:delivery_fee"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// TableName 设置表名
func (Expense) TableName() string {
	return "expenses"
}

// CategoryPayroll 工资支出的保留类别名，由 payroll 镜像写入
const CategoryPayroll = "Payroll"
