package service

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bizledger/models"
)

// RecordStore 账目记录存取层，三类资源共用一套 list/get/upsert/delete 语义
type RecordStore struct {
	db  *gorm.DB
	att *AttachmentStore
}

// NewRecordStore 创建记录存取层，附件层用于删除记录时级联清理
func NewRecordStore(db *gorm.DB, att *AttachmentStore) *RecordStore {
	return &RecordStore{db: db, att: att}
}

// listOrder 列表固定按日期倒序，同日按最近更新在前
const listOrder = "date DESC, updated_at DESC"

// 各资源主键冲突时覆盖的列，created_at 不在其中所以保持首次写入值
var (
	incomeConflict = clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"date", "source", "processor", "amount", "fees", "notes", "updated_at"}),
	}
	expenseConflict = clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"date", "category", "seller", "items", "order_number", "total", "notes", "source", "paid_from", "delivery_fee", "updated_at"}),
	}
	payrollConflict = clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"date", "employee", "amount", "notes", "updated_at"}),
	}
)

// List 返回某类资源的全部记录，空表返回空数组而不是 null
func (s *RecordStore) List(kind Kind) (interface{}, error) {
	switch kind {
	case KindIncome:
		rows := make([]models.Income, 0)
		if err := s.db.Order(listOrder).Find(&rows).Error; err != nil {
			return nil, err
		}
		return rows, nil
	case KindExpenses:
		rows := make([]models.Expense, 0)
		if err := s.db.Order(listOrder).Find(&rows).Error; err != nil {
			return nil, err
		}
		return rows, nil
	case KindPayroll:
		rows := make([]models.Payroll, 0)
		if err := s.db.Order(listOrder).Find(&rows).Error; err != nil {
			return nil, err
		}
		return rows, nil
	}
	return nil, ErrNotFound
}

// Get 按主键取单条记录
func (s *RecordStore) Get(kind Kind, id string) (interface{}, error) {
	var (
		record interface{}
		err    error
	)
	switch kind {
	case KindIncome:
		var row models.Income
		err = s.db.Where("id = ?", id).First(&row).Error
		record = row
	case KindExpenses:
		var row models.Expense
		err = s.db.Where("id = ?", id).First(&row).Error
		record = row
	case KindPayroll:
		var row models.Payroll
		err = s.db.Where("id = ?", id).First(&row).Error
		record = row
	default:
		return nil, ErrNotFound
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Upsert 写入一条记录：无 id 则生成，id 已存在则整行覆盖。
// 宽松取值，别名键和字符串金额都接受；返回落库后的完整记录。
// 新建工资记录时在同一事务里镜像一条 Payroll 类别的支出
func (s *RecordStore) Upsert(kind Kind, payload map[string]interface{}) (interface{}, error) {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	id := stringField(payload, "id")
	if id == "" {
		id = NewID()
	}
	date := stringField(payload, "date")
	if date == "" {
		return nil, NewValidationError("date is required")
	}

	switch kind {
	case KindIncome:
		row := models.Income{
			ID:        id,
			Date:      date,
			Source:    stringField(payload, "source"),
			Processor: stringField(payload, "processor"),
			Amount:    numberField(payload, "amount"),
			Fees:      numberField(payload, "fees"),
			Notes:     stringField(payload, "notes"),
		}
		if err := s.db.Clauses(incomeConflict).Create(&row).Error; err != nil {
			return nil, err
		}
	case KindExpenses:
		row := expenseFromPayload(id, date, payload)
		if err := s.db.Clauses(expenseConflict).Create(&row).Error; err != nil {
			return nil, err
		}
	case KindPayroll:
		row := models.Payroll{
			ID:       id,
			Date:     date,
			Employee: stringField(payload, "employee", "person", "name"),
			Amount:   numberField(payload, "amount"),
			Notes:    stringField(payload, "notes"),
		}
		if row.Employee == "" {
			return nil, NewValidationError("employee is required")
		}
		// 首次写入才镜像支出，覆盖已有记录不会产生第二条
		err := s.db.Transaction(func(tx *gorm.DB) error {
			var existing int64
			if err := tx.Model(&models.Payroll{}).Where("id = ?", row.ID).Count(&existing).Error; err != nil {
				return err
			}
			if err := tx.Clauses(payrollConflict).Create(&row).Error; err != nil {
				return err
			}
			if existing > 0 {
				return nil
			}
			mirror := models.Expense{
				ID:       NewID(),
				Date:     row.Date,
				Category: models.CategoryPayroll,
				Seller:   row.Employee,
				Total:    row.Amount,
				Notes:    row.Notes,
			}
			return tx.Create(&mirror).Error
		})
		if err != nil {
			return nil, err
		}
	default:
		return nil, ErrNotFound
	}
	return s.Get(kind, id)
}

// expenseFromPayload 支出字段最多，别名也最多，单独拆出来组装
func expenseFromPayload(id, date string, payload map[string]interface{}) models.Expense {
	return models.Expense{
		ID:          id,
		Date:        date,
		Category:    stringField(payload, "category"),
		Seller:      stringField(payload, "seller"),
		Items:       stringField(payload, "items"),
		OrderNumber: stringField(payload, "orderNumber", "order_number"),
		Total:       numberField(payload, "total", "price"),
		Notes:       stringField(payload, "notes"),
		Source:      stringField(payload, "source"),
		PaidFrom:    stringField(payload, "paidFrom", "paid_from"),
		DeliveryFee: numberField(payload, "deliveryFee", "delivery_fee"),
	}
}

// Delete 删除单条记录，顺带清掉它的附件行和上传目录。
// 工资记录的镜像支出是独立记录，不跟随删除
func (s *RecordStore) Delete(kind Kind, id string) error {
	var result *gorm.DB
	switch kind {
	case KindIncome:
		result = s.db.Where("id = ?", id).Delete(&models.Income{})
	case KindExpenses:
		result = s.db.Where("id = ?", id).Delete(&models.Expense{})
	case KindPayroll:
		result = s.db.Where("id = ?", id).Delete(&models.Payroll{})
	default:
		return ErrNotFound
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	if kind.SupportsAttachments() {
		return s.att.DeleteForRecord(kind, id)
	}
	return nil
}

// Clear 清空某类资源的全部记录和附件
func (s *RecordStore) Clear(kind Kind) error {
	var err error
	switch kind {
	case KindIncome:
		err = s.db.Where("1 = 1").Delete(&models.Income{}).Error
	case KindExpenses:
		err = s.db.Where("1 = 1").Delete(&models.Expense{}).Error
	case KindPayroll:
		err = s.db.Where("1 = 1").Delete(&models.Payroll{}).Error
	default:
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if kind.SupportsAttachments() {
		return s.att.DeleteForKind(kind)
	}
	return nil
}

// Count 某类资源的记录数，健康检查用
func (s *RecordStore) Count(kind Kind) (int64, error) {
	var n int64
	var err error
	switch kind {
	case KindIncome:
		err = s.db.Model(&models.Income{}).Count(&n).Error
	case KindExpenses:
		err = s.db.Model(&models.Expense{}).Count(&n).Error
	case KindPayroll:
		err = s.db.Model(&models.Payroll{}).Count(&n).Error
	default:
		return 0, ErrNotFound
	}
	return n, err
}
