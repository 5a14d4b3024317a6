package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	cases := map[string]string{
		"2024-05-01":           "2024-05-01",
		"2024-05-01T10:30:00Z": "2024-05-01",
		"2024-05-01 10:30":     "2024-05-01",
		// 英式日在前，01/05/2024 是 5 月 1 日
		"01/05/2024":      "2024-05-01",
		"31/12/2024":      "2024-12-31",
		"01-05-2024":      "2024-05-01",
		"2024/05/01":      "2024-05-01",
		"01.05.2024":      "2024-05-01",
		"1 May 2024":      "2024-05-01",
		"May 1, 2024":     "2024-05-01",
		"2 Jan 2025":      "2025-01-02",
		"20240501":        "2024-05-01",
		"01052024":        "2024-05-01",
		"Date: 20240501.": "2024-05-01",
		"":                "",
		"   ":             "",
		"not a date":      "",
		"99/99/9999":      "",
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeDate(input), "input=%q", input)
	}
}

func TestBuildSuggestion(t *testing.T) {
	fields := map[string]interface{}{
		"date":         "01/05/2024",
		"seller":       "  Tesco  ",
		"category":     "Groceries",
		"items":        []interface{}{"milk", "bread"},
		"order_number": "A-17",
		"total":        "£12.50",
		"deliveryFee":  float64(0),
		"notes":        map[string]interface{}{"till": float64(4)},
	}
	got := BuildSuggestion(fields)
	assert.Equal(t, "2024-05-01", got["date"])
	assert.Equal(t, "Tesco", got["seller"])
	assert.Equal(t, "Groceries", got["category"])
	assert.Equal(t, "milk, bread", got["items"])
	assert.Equal(t, "A-17", got["orderNumber"])
	assert.Equal(t, 12.5, got["total"])
	assert.Equal(t, 0.0, got["deliveryFee"])
	assert.Equal(t, "till: 4", got["notes"])
}

func TestBuildSuggestionAliases(t *testing.T) {
	// 模型用别名键时也能取到
	fields := map[string]interface{}{
		"purchase_date": "2024-03-08",
		"merchant":      "Argos",
		"amount":        float64(30),
		"paid_from":     "Business card",
	}
	got := BuildSuggestion(fields)
	assert.Equal(t, "2024-03-08", got["date"])
	assert.Equal(t, "Argos", got["seller"])
	assert.Equal(t, 30.0, got["total"])
	assert.Equal(t, "Business card", got["paidFrom"])
}
