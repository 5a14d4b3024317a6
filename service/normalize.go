package service

import (
	"regexp"
	"strings"
	"time"
)

// dateLayouts 解析日期时按序尝试的格式，英式日在前优先，
// 解析歧义（01/05/2024）按日/月/年处理
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"2006/01/02",
	"02.01.2006",
	"01/02/2006",
	"2 January 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"02/01/06",
}

var digitRunPattern = regexp.MustCompile(`\d{8}`)

// NormalizeDate 把模型或前端给出的任意日期文本归一成 YYYY-MM-DD，
// 归一不出来返回空串，由调用方决定是否拒绝
func NormalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format("2006-01-02")
	}
	candidates := []string{s}
	// 带时间的写法只取日期部分再试
	if i := strings.IndexAny(s, "T "); i > 0 && i < len(s)-1 {
		candidates = append(candidates, s[:i])
	}
	for _, candidate := range candidates {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, candidate); err == nil {
				return t.Format("2006-01-02")
			}
		}
	}
	// 纯数字串：20240501 或 01052024
	if run := digitRunPattern.FindString(s); run != "" {
		layouts := []string{"02012006", "20060102"}
		if strings.HasPrefix(run, "19") || strings.HasPrefix(run, "20") {
			layouts = []string{"20060102", "02012006"}
		}
		for _, layout := range layouts {
			if t, err := time.Parse(layout, run); err == nil {
				return t.Format("2006-01-02")
			}
		}
	}
	return ""
}

// textField 按别名顺序压平取值，返回第一个非空文本
func textField(fields map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := fields[key]; ok {
			if s := CoerceText(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// BuildSuggestion 把模型提取出的字段归一成一条支出草稿：
// 文本字段压平、日期归一、金额宽松解析，键名与支出接口一致
func BuildSuggestion(fields map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"date":        NormalizeDate(textField(fields, "date", "purchaseDate", "purchase_date")),
		"category":    textField(fields, "category", "type"),
		"seller":      textField(fields, "seller", "merchant", "vendor", "store"),
		"items":       textField(fields, "items", "item", "description"),
		"orderNumber": textField(fields, "orderNumber", "order_number", "receiptNumber", "receipt_number"),
		"total":       numberField(fields, "total", "amount", "price", "grandTotal", "grand_total"),
		"deliveryFee": numberField(fields, "deliveryFee", "delivery_fee", "shipping"),
		"source":      textField(fields, "source", "business"),
		"paidFrom":    textField(fields, "paidFrom", "paid_from", "paymentMethod", "payment_method"),
		"notes":       textField(fields, "notes", "note", "comments"),
	}
}
