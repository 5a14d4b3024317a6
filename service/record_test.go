package service

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizledger/models"
)

func TestRecordStoreUpsertGeneratesID(t *testing.T) {
	records, _ := newStores(t)

	stored, err := records.Upsert(KindIncome, map[string]interface{}{
		"date":   "2024-05-01",
		"source": "eBay",
		"amount": float64(120.5),
	})
	require.NoError(t, err)

	income, ok := stored.(models.Income)
	require.True(t, ok)
	assert.Len(t, income.ID, 32)
	assert.Equal(t, "2024-05-01", income.Date)
	assert.Equal(t, "eBay", income.Source)
	assert.Equal(t, 120.5, income.Amount)
}

func TestRecordStoreUpsertKeepsExplicitID(t *testing.T) {
	records, _ := newStores(t)

	stored, err := records.Upsert(KindIncome, map[string]interface{}{
		"id":   "fixed-id-1",
		"date": "2024-05-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "fixed-id-1", stored.(models.Income).ID)

	got, err := records.Get(KindIncome, "fixed-id-1")
	require.NoError(t, err)
	assert.Equal(t, "fixed-id-1", got.(models.Income).ID)
}

func TestRecordStoreUpsertOverwritePreservesCreatedAt(t *testing.T) {
	records, _ := newStores(t)

	first, err := records.Upsert(KindIncome, map[string]interface{}{
		"id":     "inc-1",
		"date":   "2024-05-01",
		"source": "eBay",
		"amount": float64(10),
	})
	require.NoError(t, err)
	created := first.(models.Income)

	time.Sleep(20 * time.Millisecond)

	second, err := records.Upsert(KindIncome, map[string]interface{}{
		"id":     "inc-1",
		"date":   "2024-05-02",
		"source": "Etsy",
		"amount": float64(20),
	})
	require.NoError(t, err)
	updated := second.(models.Income)

	// 整行覆盖但首次创建时间不变，更新时间前移
	assert.Equal(t, "2024-05-02", updated.Date)
	assert.Equal(t, "Etsy", updated.Source)
	assert.Equal(t, 20.0, updated.Amount)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	// 仍然只有一行
	n, err := records.Count(KindIncome)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRecordStoreUpsertExpenseAliases(t *testing.T) {
	records, _ := newStores(t)

	stored, err := records.Upsert(KindExpenses, map[string]interface{}{
		"date":         "2024-06-10",
		"category":     "Office",
		"seller":       "Amazon",
		"order_number": "205-1",
		"price":        "£19.99",
		"paid_from":    "Business card",
		"delivery_fee": float64(2.5),
	})
	require.NoError(t, err)

	expense := stored.(models.Expense)
	assert.Equal(t, "205-1", expense.OrderNumber)
	assert.Equal(t, 19.99, expense.Total)
	assert.Equal(t, "Business card", expense.PaidFrom)
	assert.Equal(t, 2.5, expense.DeliveryFee)
}

func TestRecordStoreUpsertValidation(t *testing.T) {
	records, _ := newStores(t)

	_, err := records.Upsert(KindIncome, map[string]interface{}{"source": "eBay"})
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "date is required", ve.Message)

	_, err = records.Upsert(KindPayroll, map[string]interface{}{"date": "2024-05-01"})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "employee is required", ve.Message)

	// 校验失败不落库
	n, err := records.Count(KindPayroll)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestRecordStoreListOrdering(t *testing.T) {
	records, _ := newStores(t)

	mustUpsert := func(id, date string) {
		t.Helper()
		_, err := records.Upsert(KindIncome, map[string]interface{}{"id": id, "date": date})
		require.NoError(t, err)
		time.Sleep(15 * time.Millisecond)
	}
	mustUpsert("a", "2024-01-02")
	mustUpsert("b", "2024-01-03")
	mustUpsert("c", "2024-01-02")

	listed, err := records.List(KindIncome)
	require.NoError(t, err)
	rows := listed.([]models.Income)
	require.Len(t, rows, 3)

	// 日期倒序，同日最近更新在前
	assert.Equal(t, "b", rows[0].ID)
	assert.Equal(t, "c", rows[1].ID)
	assert.Equal(t, "a", rows[2].ID)
}

func TestRecordStoreListEmpty(t *testing.T) {
	records, _ := newStores(t)

	listed, err := records.List(KindPayroll)
	require.NoError(t, err)
	rows := listed.([]models.Payroll)
	assert.NotNil(t, rows)
	assert.Len(t, rows, 0)
}

func TestRecordStoreGetNotFound(t *testing.T) {
	records, _ := newStores(t)

	_, err := records.Get(KindExpenses, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordStoreDeleteCascadesAttachments(t *testing.T) {
	records, attachments := newStores(t)

	stored, err := records.Upsert(KindExpenses, map[string]interface{}{"date": "2024-05-01"})
	require.NoError(t, err)
	expense := stored.(models.Expense)

	att, err := attachments.SaveBytes(KindExpenses, expense.ID, "receipt.png", "image/png", []byte("fake-png"))
	require.NoError(t, err)
	path, err := attachments.ResolvePath(&att)
	require.NoError(t, err)

	require.NoError(t, records.Delete(KindExpenses, expense.ID))

	// 记录、附件行、磁盘文件全部消失
	_, err = records.Get(KindExpenses, expense.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = attachments.Get(att.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRecordStoreDeleteNotFound(t *testing.T) {
	records, _ := newStores(t)
	assert.ErrorIs(t, records.Delete(KindIncome, "missing"), ErrNotFound)
}

func TestRecordStoreClear(t *testing.T) {
	records, attachments := newStores(t)

	stored, err := records.Upsert(KindIncome, map[string]interface{}{"date": "2024-05-01"})
	require.NoError(t, err)
	income := stored.(models.Income)
	_, err = records.Upsert(KindIncome, map[string]interface{}{"date": "2024-05-02"})
	require.NoError(t, err)

	att, err := attachments.SaveBytes(KindIncome, income.ID, "invoice.pdf", "application/pdf", []byte("pdf"))
	require.NoError(t, err)

	require.NoError(t, records.Clear(KindIncome))

	n, err := records.Count(KindIncome)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	_, err = attachments.Get(att.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPayrollCreateMirrorsExpense(t *testing.T) {
	records, _ := newStores(t)

	stored, err := records.Upsert(KindPayroll, map[string]interface{}{
		"date":     "2024-04-30",
		"employee": "Sam",
		"amount":   float64(1500),
		"notes":    "April salary",
	})
	require.NoError(t, err)
	payroll := stored.(models.Payroll)

	listed, err := records.List(KindExpenses)
	require.NoError(t, err)
	mirrors := listed.([]models.Expense)
	require.Len(t, mirrors, 1)

	mirror := mirrors[0]
	assert.Equal(t, models.CategoryPayroll, mirror.Category)
	assert.Equal(t, "Sam", mirror.Seller)
	assert.Equal(t, 1500.0, mirror.Total)
	assert.Equal(t, "2024-04-30", mirror.Date)
	assert.Equal(t, "April salary", mirror.Notes)
	assert.NotEqual(t, payroll.ID, mirror.ID)
}

func TestPayrollOverwriteDoesNotMirrorAgain(t *testing.T) {
	records, _ := newStores(t)

	_, err := records.Upsert(KindPayroll, map[string]interface{}{
		"id":       "pay-1",
		"date":     "2024-04-30",
		"employee": "Sam",
		"amount":   float64(1500),
	})
	require.NoError(t, err)

	// 同一 id 再写一遍，只改金额
	_, err = records.Upsert(KindPayroll, map[string]interface{}{
		"id":       "pay-1",
		"date":     "2024-04-30",
		"employee": "Sam",
		"amount":   float64(1600),
	})
	require.NoError(t, err)

	n, err := records.Count(KindExpenses)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestPayrollDeleteKeepsMirror(t *testing.T) {
	records, _ := newStores(t)

	stored, err := records.Upsert(KindPayroll, map[string]interface{}{
		"date":     "2024-04-30",
		"employee": "Sam",
		"amount":   float64(1500),
	})
	require.NoError(t, err)

	require.NoError(t, records.Delete(KindPayroll, stored.(models.Payroll).ID))

	// 镜像支出是独立记录，不跟随删除
	n, err := records.Count(KindExpenses)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
