package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"bizledger/models"
	"bizledger/service"
)

// ExportHandler 导出接口：单类 CSV 和全量 Excel 工作簿
type ExportHandler struct {
	records *service.RecordStore
}

// NewExportHandler 创建导出处理器
func NewExportHandler(records *service.RecordStore) *ExportHandler {
	return &ExportHandler{records: records}
}

// CSV 导出某类记录为 CSV
// @Summary 导出 CSV
// @Description 导出某类全部记录，带 UTF-8 BOM，date 参数只用于拼文件名
// @Tags 导出
// @Produce text/csv
// @Param kind path string true "资源种类" Enums(income, expenses, payroll)
// @Param date query string false "文件名日期后缀"
// @Success 200 {file} file "CSV 文件"
// @Router /api/{kind}.csv [get]
func (h *ExportHandler) CSV(kind service.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := h.records.ExportCSV(kind)
		if err != nil {
			RespondError(c, err, "Failed to export records")
			return
		}
		stamp := c.Query("date")
		if stamp == "" {
			stamp = "export"
		}
		filename := fmt.Sprintf("%s-%s.csv", kind, stamp)
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		c.Header("Content-Length", fmt.Sprintf("%d", len(data)))
		c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
	}
}

// sheetLayout 一张工作表的表头和行数据
type sheetLayout struct {
	name    string
	headers []string
	rows    [][]interface{}
	total   float64
}

// layoutFor 把某类记录摆成工作表行，金额列保留原始数值
func (h *ExportHandler) layoutFor(kind service.Kind) (sheetLayout, error) {
	listed, err := h.records.List(kind)
	if err != nil {
		return sheetLayout{}, err
	}
	layout := sheetLayout{}
	switch rows := listed.(type) {
	case []models.Income:
		layout.name = "Income"
		layout.headers = []string{"Date", "Source", "Processor", "AmountGBP", "FeesGBP", "Notes"}
		for _, r := range rows {
			layout.rows = append(layout.rows, []interface{}{r.Date, r.Source, r.Processor, r.Amount, r.Fees, r.Notes})
			layout.total += r.Amount
		}
	case []models.Expense:
		layout.name = "Expenses"
		layout.headers = []string{"Date", "Category", "Seller", "Item(s)", "Order #", "TotalGBP", "DeliveryFeeGBP", "Notes", "Source", "Paid From"}
		for _, r := range rows {
			layout.rows = append(layout.rows, []interface{}{r.Date, r.Category, r.Seller, r.Items, r.OrderNumber, r.Total, r.DeliveryFee, r.Notes, r.Source, r.PaidFrom})
			layout.total += r.Total
		}
	case []models.Payroll:
		layout.name = "Payroll"
		layout.headers = []string{"Date", "Employee", "AmountGBP", "Notes"}
		for _, r := range rows {
			layout.rows = append(layout.rows, []interface{}{r.Date, r.Employee, r.Amount, r.Notes})
			layout.total += r.Amount
		}
	}
	return layout, nil
}

// Excel 导出全部账目为一个工作簿，每类资源一张表
// @Summary 导出 Excel
// @Description 三类记录各占一张工作表，末行为合计
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param date query string false "文件名日期后缀"
// @Success 200 {file} file "Excel 文件"
// @Router /api/export.xlsx [get]
func (h *ExportHandler) Excel(c *gin.Context) {
	f := excelize.NewFile()
	defer f.Close()

	// 表头样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	// 数据样式
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	// 合计行样式
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	for i, kind := range service.Kinds() {
		layout, err := h.layoutFor(kind)
		if err != nil {
			RespondError(c, err, "Failed to export records")
			return
		}
		if i == 0 {
			f.SetSheetName("Sheet1", layout.name)
		} else {
			f.NewSheet(layout.name)
		}

		lastCol := byte('A' + len(layout.headers) - 1)
		f.SetColWidth(layout.name, "A", "A", 14)
		f.SetColWidth(layout.name, "B", string(lastCol), 18)

		// 表头
		for j, header := range layout.headers {
			cell := fmt.Sprintf("%c1", 'A'+j)
			f.SetCellValue(layout.name, cell, header)
			f.SetCellStyle(layout.name, cell, cell, headerStyle)
		}

		// 数据行
		for j, row := range layout.rows {
			n := j + 2
			for k, value := range row {
				f.SetCellValue(layout.name, fmt.Sprintf("%c%d", 'A'+k, n), value)
			}
			f.SetCellStyle(layout.name, fmt.Sprintf("A%d", n), fmt.Sprintf("%c%d", lastCol, n), dataStyle)
		}

		// 合计行
		summaryRow := len(layout.rows) + 2
		f.SetCellValue(layout.name, fmt.Sprintf("A%d", summaryRow), "Total")
		f.SetCellValue(layout.name, fmt.Sprintf("B%d", summaryRow), layout.total)
		f.SetCellValue(layout.name, fmt.Sprintf("C%d", summaryRow), fmt.Sprintf("%d records", len(layout.rows)))
		f.MergeCell(layout.name, fmt.Sprintf("C%d", summaryRow), fmt.Sprintf("%c%d", lastCol, summaryRow))
		f.SetCellStyle(layout.name, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("%c%d", lastCol, summaryRow), summaryStyle)
	}

	stamp := c.Query("date")
	if stamp == "" {
		stamp = "export"
	}
	filename := fmt.Sprintf("bizledger-%s.xlsx", stamp)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", filename))

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, err, "Failed to build workbook")
		return
	}
}
