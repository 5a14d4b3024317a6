package service

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"bizledger/config"
	"bizledger/models"
)

// scanPrompt 小票提取提示词，要求模型只回严格 JSON
const scanPrompt = `You are a receipt data extraction assistant. Look at the receipt image and respond with a STRICT JSON object only, using exactly these keys: "date" (purchase date), "seller" (merchant name), "category" (expense category), "items" (short description of the goods), "orderNumber" (order or receipt number), "total" (grand total paid, as a number), "deliveryFee" (delivery or shipping fee as a number, 0 if none), "source" (business or funding source if printed), "paidFrom" (payment account or card if printed), "notes" (anything else useful). Use "" for unknown text fields and 0 for unknown numbers. Do not wrap the response in code fences and do not add commentary.`

// ScanService 小票扫描：图片发给视觉模型，回复解析成支出草稿。
// 端点、密钥等优先读运行时设置，没有再落回配置文件
type ScanService struct {
	cfg      *config.Config
	settings *SettingsStore
	client   *http.Client
}

// NewScanService 创建扫描服务
func NewScanService(cfg *config.Config, settings *SettingsStore) *ScanService {
	timeout := time.Duration(cfg.Scan.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ScanService{
		cfg:      cfg,
		settings: settings,
		client:   &http.Client{Timeout: timeout},
	}
}

// scanTarget 一次扫描调用的完整目标参数
type scanTarget struct {
	endpoint string
	apiKey   string
	model    string
	provider string
}

// target 合并设置与配置，provider 未指定时按主机名推断：
// 域名带 anthropic 走 messages 协议，其余按 OpenAI 兼容协议
func (s *ScanService) target() scanTarget {
	t := scanTarget{
		endpoint: s.settings.Get(models.SettingScanEndpoint, s.cfg.Scan.Endpoint),
		apiKey:   s.settings.Get(models.SettingScanAPIKey, s.cfg.Scan.APIKey),
		model:    s.settings.Get(models.SettingScanModel, s.cfg.Scan.Model),
		provider: strings.ToLower(strings.TrimSpace(s.settings.Get(models.SettingScanProvider, s.cfg.Scan.Provider))),
	}
	if t.provider == "" {
		t.provider = "openai"
		if u, err := url.Parse(t.endpoint); err == nil && strings.Contains(u.Hostname(), "anthropic") {
			t.provider = "anthropic"
		}
	}
	return t
}

// Extract 跑完整提取流程，返回支出草稿和模型原始回复
func (s *ScanService) Extract(data []byte, mimeType string) (map[string]interface{}, string, error) {
	t := s.target()
	if t.endpoint == "" {
		return nil, "", NewValidationError("Scan endpoint not configured")
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	prepared, preparedMime := s.prepareImage(data, mimeType)
	encoded := base64.StdEncoding.EncodeToString(prepared)

	req, err := s.buildRequest(t, encoded, preparedMime)
	if err != nil {
		return nil, "", &UpstreamError{Message: "invalid scan endpoint: " + err.Error()}
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", &UpstreamError{Message: "scan endpoint unreachable: " + err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &UpstreamError{Message: "failed to read scan endpoint response: " + err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", &UpstreamError{
			Message: fmt.Sprintf("scan endpoint returned status %d", resp.StatusCode),
			Raw:     clip(string(body), 2000),
		}
	}

	reply, err := replyText(t.provider, body)
	if err != nil {
		return nil, "", &UpstreamError{
			Message: "unexpected scan endpoint response: " + err.Error(),
			Raw:     clip(string(body), 2000),
		}
	}

	fields, err := ExtractJSONObject(reply)
	if err != nil {
		return nil, reply, &ExtractionError{Message: "model reply contained no JSON object", Raw: reply}
	}

	suggested := BuildSuggestion(fields)
	date, _ := suggested["date"].(string)
	total, _ := suggested["total"].(float64)
	if date == "" || total <= 0 {
		return nil, reply, &ExtractionError{
			Message:   "could not extract a usable expense from the receipt",
			Raw:       reply,
			Suggested: suggested,
		}
	}
	return suggested, reply, nil
}

// prepareImage 超出像素上限的图片压成 JPEG 再上传，解码失败原样发
func (s *ScanService) prepareImage(data []byte, mimeType string) ([]byte, string) {
	maxPx := s.cfg.Scan.MaxImagePx
	if maxPx <= 0 || len(data) == 0 {
		return data, mimeType
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return data, mimeType
	}
	bounds := img.Bounds()
	if bounds.Dx() <= maxPx && bounds.Dy() <= maxPx {
		return data, mimeType
	}
	resized := imaging.Fit(img, maxPx, maxPx, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return data, mimeType
	}
	return buf.Bytes(), "image/jpeg"
}

// buildRequest 按协议拼请求体和鉴权头
func (s *ScanService) buildRequest(t scanTarget, imageB64, mimeType string) (*http.Request, error) {
	base := strings.TrimRight(t.endpoint, "/")
	var endpoint string
	var payload map[string]interface{}

	if t.provider == "anthropic" {
		endpoint = base + "/v1/messages"
		if strings.HasSuffix(base, "/v1") {
			endpoint = base + "/messages"
		}
		payload = map[string]interface{}{
			"model":      t.model,
			"max_tokens": 1024,
			"messages": []interface{}{
				map[string]interface{}{
					"role": "user",
					"content": []interface{}{
						map[string]interface{}{
							"type": "image",
							"source": map[string]interface{}{
								"type":       "base64",
								"media_type": mimeType,
								"data":       imageB64,
							},
						},
						map[string]interface{}{"type": "text", "text": scanPrompt},
					},
				},
			},
		}
	} else {
		endpoint = base + "/chat/completions"
		payload = map[string]interface{}{
			"model":      t.model,
			"max_tokens": 1024,
			"messages": []interface{}{
				map[string]interface{}{
					"role": "user",
					"content": []interface{}{
						map[string]interface{}{"type": "text", "text": scanPrompt},
						map[string]interface{}{
							"type": "image_url",
							"image_url": map[string]interface{}{
								"url": "data:" + mimeType + ";base64," + imageB64,
							},
						},
					},
				},
			},
		}
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest("POST", endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if t.provider == "anthropic" {
		req.Header.Set("anthropic-version", "2023-06-01")
		if t.apiKey != "" {
			req.Header.Set("x-api-key", t.apiKey)
		}
	} else if t.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+t.apiKey)
	}
	return req, nil
}

// replyText 从两种协议的返回体里取出模型文本
func replyText(provider string, body []byte) (string, error) {
	var doc map[string]interface{}
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", err
	}
	if provider == "anthropic" {
		content, _ := doc["content"].([]interface{})
		for _, part := range content {
			m, ok := part.(map[string]interface{})
			if !ok {
				continue
			}
			if m["type"] == "text" {
				if text, ok := m["text"].(string); ok {
					return text, nil
				}
			}
		}
		return "", errors.New("no text block in reply")
	}
	choices, _ := doc["choices"].([]interface{})
	if len(choices) == 0 {
		return "", errors.New("no choices in reply")
	}
	choice, _ := choices[0].(map[string]interface{})
	message, _ := choice["message"].(map[string]interface{})
	if text, ok := message["content"].(string); ok {
		return text, nil
	}
	return "", errors.New("no message content in reply")
}

// ExtractJSONObject 从模型回复里抠出 JSON 对象：
// 先剥掉 Markdown 代码栅栏，再退而取首尾花括号之间的片段
func ExtractJSONObject(text string) (map[string]interface{}, error) {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```") {
		if i := strings.Index(s, "\n"); i >= 0 {
			s = s[i+1:]
		} else {
			s = ""
		}
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(s), &obj); err == nil {
		return obj, nil
	}
	first := strings.Index(s, "{")
	last := strings.LastIndex(s, "}")
	if first >= 0 && last > first {
		if err := json.Unmarshal([]byte(s[first:last+1]), &obj); err == nil {
			return obj, nil
		}
	}
	return nil, errors.New("no JSON object found")
}

// clip 截断过长的原始返回，避免错误响应无限膨胀
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
