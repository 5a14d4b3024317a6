package service

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizledger/config"
	"bizledger/models"
)

func newScanService(t *testing.T, endpoint, provider string) (*ScanService, *SettingsStore) {
	t.Helper()
	settings := NewSettingsStore(newTestDB(t))
	cfg := &config.Config{}
	cfg.Scan.Endpoint = endpoint
	cfg.Scan.Provider = provider
	cfg.Scan.APIKey = "sk-test"
	cfg.Scan.Model = "gpt-4o-mini"
	cfg.Scan.TimeoutSeconds = 5
	cfg.Scan.MaxImagePx = 1600
	return NewScanService(cfg, settings), settings
}

func openAIReply(text string) []byte {
	data, _ := json.Marshal(map[string]interface{}{
		"choices": []interface{}{
			map[string]interface{}{
				"message": map[string]interface{}{"content": text},
			},
		},
	})
	return data
}

func TestExtractJSONObject(t *testing.T) {
	obj, err := ExtractJSONObject(`{"total": 12.5}`)
	require.NoError(t, err)
	assert.Equal(t, 12.5, obj["total"])

	// Markdown 代码栅栏要剥掉
	obj, err = ExtractJSONObject("```json\n{\"seller\": \"Tesco\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "Tesco", obj["seller"])

	obj, err = ExtractJSONObject("```\n{\"seller\": \"Tesco\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "Tesco", obj["seller"])

	// 正文夹着 JSON 时取首尾花括号之间
	obj, err = ExtractJSONObject(`Here is the data: {"total": 3} hope that helps`)
	require.NoError(t, err)
	assert.Equal(t, float64(3), obj["total"])

	_, err = ExtractJSONObject("sorry, the image is unreadable")
	assert.Error(t, err)

	_, err = ExtractJSONObject("")
	assert.Error(t, err)
}

func TestScanExtractNotConfigured(t *testing.T) {
	svc, _ := newScanService(t, "", "")

	_, _, err := svc.Extract([]byte("img"), "image/png")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Scan endpoint not configured", ve.Message)
}

func TestScanExtractOpenAI(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(openAIReply(`{"date": "2025-05-01", "seller": "Tesco", "category": "Groceries", "total": 12.5}`))
	}))
	defer srv.Close()

	svc, _ := newScanService(t, srv.URL, "")

	suggested, raw, err := svc.Extract([]byte("not-an-image"), "image/png")
	require.NoError(t, err)

	// 无法判断供应商时按 OpenAI 兼容协议调用
	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotBody["model"])

	assert.Equal(t, "2025-05-01", suggested["date"])
	assert.Equal(t, "Tesco", suggested["seller"])
	assert.Equal(t, "Groceries", suggested["category"])
	assert.Equal(t, 12.5, suggested["total"])
	assert.Contains(t, raw, "Tesco")
}

func TestScanExtractAnthropic(t *testing.T) {
	var gotPath, gotKey, gotVersion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-api-key")
		gotVersion = r.Header.Get("anthropic-version")
		w.Header().Set("Content-Type", "application/json")
		reply := map[string]interface{}{
			"content": []interface{}{
				map[string]interface{}{"type": "text", "text": "```json\n{\"date\": \"01/05/2025\", \"seller\": \"Argos\", \"total\": \"£9.99\"}\n```"},
			},
		}
		_ = json.NewEncoder(w).Encode(reply)
	}))
	defer srv.Close()

	svc, _ := newScanService(t, srv.URL, "anthropic")

	suggested, _, err := svc.Extract([]byte("img"), "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, "/v1/messages", gotPath)
	assert.Equal(t, "sk-test", gotKey)
	assert.Equal(t, "2023-06-01", gotVersion)

	// 日期和金额走同一套归一化
	assert.Equal(t, "2025-05-01", suggested["date"])
	assert.Equal(t, 9.99, suggested["total"])
	assert.Equal(t, "Argos", suggested["seller"])
}

func TestScanExtractSettingsOverride(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write(openAIReply(`{"date": "2025-01-02", "total": 1}`))
	}))
	defer srv.Close()

	// 配置文件指向坏地址，运行时设置应当胜出
	svc, settings := newScanService(t, "http://127.0.0.1:1", "")
	require.NoError(t, settings.Set(models.SettingScanEndpoint, srv.URL))
	require.NoError(t, settings.Set(models.SettingScanAPIKey, "sk-override"))

	_, _, err := svc.Extract([]byte("img"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "Bearer sk-override", gotAuth)
}

func TestScanExtractUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc, _ := newScanService(t, srv.URL, "")

	_, _, err := svc.Extract([]byte("img"), "image/png")
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Contains(t, ue.Message, "status 500")
	assert.Contains(t, ue.Raw, "model overloaded")
}

func TestScanExtractUnreachable(t *testing.T) {
	svc, _ := newScanService(t, "http://127.0.0.1:1", "")

	_, _, err := svc.Extract([]byte("img"), "image/png")
	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	assert.Contains(t, ue.Message, "unreachable")
}

func TestScanExtractNoJSONInReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(openAIReply("I cannot read this receipt."))
	}))
	defer srv.Close()

	svc, _ := newScanService(t, srv.URL, "")

	_, raw, err := svc.Extract([]byte("img"), "image/png")
	var ee *ExtractionError
	require.ErrorAs(t, err, &ee)
	assert.Nil(t, ee.Suggested)
	assert.Equal(t, "I cannot read this receipt.", ee.Raw)
	assert.Equal(t, "I cannot read this receipt.", raw)
}

func TestScanExtractUnusableSuggestion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(openAIReply(`{"seller": "Tesco", "total": 0}`))
	}))
	defer srv.Close()

	svc, _ := newScanService(t, srv.URL, "")

	_, _, err := svc.Extract([]byte("img"), "image/png")
	var ee *ExtractionError
	require.ErrorAs(t, err, &ee)
	// 缺日期或金额时仍把草稿带回去，前端可以让用户补全
	require.NotNil(t, ee.Suggested)
	assert.Equal(t, "Tesco", ee.Suggested["seller"])
	assert.Equal(t, "could not extract a usable expense from the receipt", ee.Message)
}

func TestScanProviderInference(t *testing.T) {
	svc, settings := newScanService(t, "https://api.anthropic.com", "")
	assert.Equal(t, "anthropic", svc.target().provider)

	// 运行时设置覆盖推断结果，大小写不敏感
	require.NoError(t, settings.Set(models.SettingScanProvider, "OpenAI"))
	assert.Equal(t, "openai", svc.target().provider)

	svc2, _ := newScanService(t, "https://api.openai.com/v1", "")
	assert.Equal(t, "openai", svc2.target().provider)
}

func TestScanBuildRequestAnthropicPaths(t *testing.T) {
	svc, _ := newScanService(t, "https://api.anthropic.com/v1", "anthropic")
	req, err := svc.buildRequest(svc.target(), "QUJD", "image/png")
	require.NoError(t, err)
	// 端点已带 /v1 时不再重复
	assert.Equal(t, "https://api.anthropic.com/v1/messages", req.URL.String())

	svc2, _ := newScanService(t, "https://api.anthropic.com", "anthropic")
	req2, err := svc2.buildRequest(svc2.target(), "QUJD", "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://api.anthropic.com/v1/messages", req2.URL.String())
}

func TestPrepareImage(t *testing.T) {
	svc, _ := newScanService(t, "http://example.com", "")
	svc.cfg.Scan.MaxImagePx = 4

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 10, 10))))

	out, mime := svc.prepareImage(buf.Bytes(), "image/png")
	assert.Equal(t, "image/jpeg", mime)
	img, err := imaging.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.LessOrEqual(t, img.Bounds().Dx(), 4)
	assert.LessOrEqual(t, img.Bounds().Dy(), 4)

	// 尺寸没超限时原样返回
	svc.cfg.Scan.MaxImagePx = 100
	same, mime2 := svc.prepareImage(buf.Bytes(), "image/png")
	assert.Equal(t, buf.Bytes(), same)
	assert.Equal(t, "image/png", mime2)

	// 解码失败的数据原样发出去
	raw, mime3 := svc.prepareImage([]byte("plain text"), "text/plain")
	assert.Equal(t, []byte("plain text"), raw)
	assert.Equal(t, "text/plain", mime3)
}

func TestClip(t *testing.T) {
	assert.Equal(t, "abc", clip("abc", 10))
	assert.Equal(t, "ab", clip("abcdef", 2))
}
