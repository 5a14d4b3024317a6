package service

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// NewID 生成 32 位十六进制标识，与历史数据格式保持一致
func NewID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// toText 把任意 JSON 标量转成去掉首尾空白的文本，绝不报错
func toText(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	}
}

// stringField 依次尝试各别名键，返回第一个非空文本
func stringField(payload map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v, ok := payload[key]; ok {
			if s := toText(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// toAmount 任意 JSON 值转金额，文本走宽松解析
func toAmount(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case string:
		return ParseAmount(t)
	case bool:
		if t {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// numberField 依次尝试各别名键，返回第一个非零金额，与
// 前端沿用的 a or b or 0 取值习惯一致（0 视为未填继续回退）
func numberField(payload map[string]interface{}, keys ...string) float64 {
	for _, key := range keys {
		if v, ok := payload[key]; ok {
			if n := toAmount(v); n != 0 {
				return n
			}
		}
	}
	return 0
}

var amountTokenPattern = regexp.MustCompile(`-?\d[\d.,]*`)

// ParseAmount 宽松解析金额文本：剥掉货币符号和千分位，
// 取最后一段数字，逗号后恰好两位数字时按小数点理解。
// 解析不出来返回 0，绝不报错
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n
	}
	tokens := amountTokenPattern.FindAllString(s, -1)
	if len(tokens) == 0 {
		return 0
	}
	token := tokens[len(tokens)-1]
	lastDot := strings.LastIndex(token, ".")
	lastComma := strings.LastIndex(token, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0 && lastComma > lastDot:
		// 1.234,56 欧式写法
		token = strings.ReplaceAll(token, ".", "")
		token = strings.Replace(token, ",", ".", 1)
	case lastDot >= 0 && lastComma >= 0:
		// 1,234.56 英式写法
		token = strings.ReplaceAll(token, ",", "")
	case lastComma >= 0:
		if strings.Count(token, ",") == 1 && len(token)-lastComma-1 == 2 {
			token = strings.Replace(token, ",", ".", 1)
		} else {
			token = strings.ReplaceAll(token, ",", "")
		}
	case strings.Count(token, ".") > 1:
		token = strings.ReplaceAll(token, ".", "")
	}
	n, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0
	}
	return n
}

// CoerceText 把模型回复里的任意值压成一行文本：
// 数组用逗号连接，对象按键排序后拼成 k: v 列表
func CoerceText(v interface{}) string {
	switch t := v.(type) {
	case []interface{}:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			if s := CoerceText(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			if s := CoerceText(t[k]); s != "" {
				parts = append(parts, k+": "+s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return toText(v)
	}
}

// Truthy 按前端约定判断布尔：false、0、空串、null 都算假
func Truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return strings.TrimSpace(t) != ""
	default:
		return true
	}
}

var unsafeFilenamePattern = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// secureFilename 清洗上传文件名：去掉目录部分，
// 非常规字符换成下划线，再剥掉首尾的点和下划线防止隐藏文件
func secureFilename(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = unsafeFilenamePattern.ReplaceAllString(base, "_")
	return strings.Trim(base, "._-")
}
