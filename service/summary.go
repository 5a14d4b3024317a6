package service

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// SummaryService 汇总统计：税年饼图加最近十二个月收支曲线。
// 税年起点可配置，默认英国制 4 月 6 日
type SummaryService struct {
	db         *gorm.DB
	startMonth time.Month
	startDay   int
}

// NewSummaryService 创建汇总服务
func NewSummaryService(db *gorm.DB, startMonth, startDay int) *SummaryService {
	if startMonth < 1 || startMonth > 12 {
		startMonth = 4
	}
	if startDay < 1 || startDay > 31 {
		startDay = 6
	}
	return &SummaryService{db: db, startMonth: time.Month(startMonth), startDay: startDay}
}

// PieData 饼图数据，labels 与 data 逐项对齐，按金额从大到小
type PieData struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

// MonthlySeries 最近十二个月的收支序列，labels 为 YYYY-MM 升序
type MonthlySeries struct {
	Labels   []string  `json:"labels"`
	Income   []float64 `json:"income"`
	Expenses []float64 `json:"expenses"`
}

// Summary 仪表盘汇总结构
type Summary struct {
	TaxYear string             `json:"taxYear"`
	Pies    map[string]PieData `json:"pies"`
	Monthly MonthlySeries      `json:"monthly"`
}

// FiscalYearStart 返回 now 所在税年的起始日
func (s *SummaryService) FiscalYearStart(now time.Time) time.Time {
	start := time.Date(now.Year(), s.startMonth, s.startDay, 0, 0, 0, 0, now.Location())
	if now.Before(start) {
		start = start.AddDate(-1, 0, 0)
	}
	return start
}

// TaxYearLabel 税年标签，如 2025-26
func (s *SummaryService) TaxYearLabel(now time.Time) string {
	startYear := s.FiscalYearStart(now).Year()
	return fmt.Sprintf("%d-%02d", startYear, (startYear+1)%100)
}

type labelTotal struct {
	Label string
	Total float64
}

// groupedTotals 按标签列求和，空标签归入 Other，金额倒序。
// 日期按文本比较，ISO 日期的字典序即时间序
func (s *SummaryService) groupedTotals(table, labelColumn, amountColumn, since string) (PieData, error) {
	var rows []labelTotal
	q := s.db.Table(table).
		Select(labelColumn + " AS label, SUM(" + amountColumn + ") AS total").
		Group(labelColumn).
		Order("total DESC")
	if since != "" {
		q = q.Where("date >= ?", since)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return PieData{}, err
	}
	pie := PieData{Labels: make([]string, 0, len(rows)), Data: make([]float64, 0, len(rows))}
	for _, row := range rows {
		label := strings.TrimSpace(row.Label)
		if label == "" {
			label = "Other"
		}
		pie.Labels = append(pie.Labels, label)
		pie.Data = append(pie.Data, row.Total)
	}
	return pie, nil
}

type monthTotal struct {
	Month string
	Total float64
}

// monthTotals 按月份求和，键为 YYYY-MM
func (s *SummaryService) monthTotals(table, amountColumn string) (map[string]float64, error) {
	var rows []monthTotal
	err := s.db.Table(table).
		Select("strftime('%Y-%m', date) AS month, SUM(" + amountColumn + ") AS total").
		Group("month").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(rows))
	for _, row := range rows {
		if row.Month != "" {
			out[row.Month] = row.Total
		}
	}
	return out, nil
}

// Build 生成仪表盘汇总，now 由调用方传入便于测试
func (s *SummaryService) Build(now time.Time) (*Summary, error) {
	since := s.FiscalYearStart(now).Format("2006-01-02")

	incomeFY, err := s.groupedTotals("incomes", "source", "amount", since)
	if err != nil {
		return nil, err
	}
	incomeAll, err := s.groupedTotals("incomes", "source", "amount", "")
	if err != nil {
		return nil, err
	}
	expenseFY, err := s.groupedTotals("expenses", "category", "total", since)
	if err != nil {
		return nil, err
	}
	expenseAll, err := s.groupedTotals("expenses", "category", "total", "")
	if err != nil {
		return nil, err
	}

	incomeByMonth, err := s.monthTotals("incomes", "amount")
	if err != nil {
		return nil, err
	}
	expenseByMonth, err := s.monthTotals("expenses", "total")
	if err != nil {
		return nil, err
	}

	// 最近十二个月逐月补零，保证序列连续
	monthly := MonthlySeries{
		Labels:   make([]string, 0, 12),
		Income:   make([]float64, 0, 12),
		Expenses: make([]float64, 0, 12),
	}
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := 11; i >= 0; i-- {
		label := first.AddDate(0, -i, 0).Format("2006-01")
		monthly.Labels = append(monthly.Labels, label)
		monthly.Income = append(monthly.Income, incomeByMonth[label])
		monthly.Expenses = append(monthly.Expenses, expenseByMonth[label])
	}

	return &Summary{
		TaxYear: s.TaxYearLabel(now),
		Pies: map[string]PieData{
			"incomeFY":   incomeFY,
			"incomeAll":  incomeAll,
			"expenseFY":  expenseFY,
			"expenseAll": expenseAll,
		},
		Monthly: monthly,
	}, nil
}
