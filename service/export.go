package service

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"bizledger/models"
)

// csvHeaders 各资源的导出表头，列序固定
func csvHeaders(kind Kind) []string {
	switch kind {
	case KindIncome:
		return []string{"Date", "Source", "Processor", "AmountGBP", "FeesGBP", "Notes"}
	case KindExpenses:
		return []string{"Date", "Category", "Seller", "Item(s)", "Order #", "TotalGBP", "DeliveryFeeGBP", "Notes", "Source", "Paid From"}
	case KindPayroll:
		return []string{"Date", "Employee", "AmountGBP", "Notes"}
	}
	return nil
}

// money 金额统一保留两位小数
func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// ExportCSV 导出某类资源为 CSV，带 UTF-8 BOM 方便 Excel 直接打开，
// 行序与列表接口一致
func (s *RecordStore) ExportCSV(kind Kind) ([]byte, error) {
	listed, err := s.List(kind)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("\xEF\xBB\xBF")
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeaders(kind)); err != nil {
		return nil, err
	}

	switch rows := listed.(type) {
	case []models.Income:
		for _, r := range rows {
			if err := w.Write([]string{r.Date, r.Source, r.Processor, money(r.Amount), money(r.Fees), r.Notes}); err != nil {
				return nil, err
			}
		}
	case []models.Expense:
		for _, r := range rows {
			if err := w.Write([]string{r.Date, r.Category, r.Seller, r.Items, r.OrderNumber, money(r.Total), money(r.DeliveryFee), r.Notes, r.Source, r.PaidFrom}); err != nil {
				return nil, err
			}
		}
	case []models.Payroll:
		for _, r := range rows {
			if err := w.Write([]string{r.Date, r.Employee, money(r.Amount), r.Notes}); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
