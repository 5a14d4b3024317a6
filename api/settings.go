package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bizledger/service"
)

// SettingsHandler 运行时设置接口，扫描端点等配置由前端写入
type SettingsHandler struct {
	settings *service.SettingsStore
}

// NewSettingsHandler 创建设置处理器
func NewSettingsHandler(settings *service.SettingsStore) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// GetAll 全部设置
// @Summary 全部设置
// @Tags 设置
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/settings [get]
func (h *SettingsHandler) GetAll(c *gin.Context) {
	all, err := h.settings.All()
	if err != nil {
		RespondError(c, err, "Failed to load settings")
		return
	}
	c.JSON(http.StatusOK, all)
}

// BulkPut 批量写入设置，值为空串或 null 等价于删除该键
// @Summary 批量写入设置
// @Tags 设置
// @Accept json
// @Produce json
// @Param data body map[string]string true "键值对"
// @Success 200 {object} map[string]string
// @Failure 400 {object} object
// @Router /api/settings [put]
func (h *SettingsHandler) BulkPut(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		BadRequest(c, "Invalid JSON")
		return
	}
	for key, value := range payload {
		if err := h.settings.Set(key, service.CoerceText(value)); err != nil {
			RespondError(c, err, "Failed to save settings")
			return
		}
	}
	all, err := h.settings.All()
	if err != nil {
		RespondError(c, err, "Failed to load settings")
		return
	}
	c.JSON(http.StatusOK, all)
}

// Get 单个设置键
// @Summary 单个设置
// @Tags 设置
// @Produce json
// @Param key path string true "设置键"
// @Success 200 {object} object
// @Failure 404 {object} object
// @Router /api/settings/{key} [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	key := c.Param("key")
	value, err := h.settings.Lookup(key)
	if err != nil {
		RespondError(c, err, "Failed to load setting")
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": value})
}

// Put 写入单个设置键，请求体 {"value": ...}，空值等价删除
// @Summary 写入设置
// @Tags 设置
// @Accept json
// @Produce json
// @Param key path string true "设置键"
// @Param data body object true "设置值"
// @Success 200 {object} object
// @Failure 400 {object} object
// @Router /api/settings/{key} [put]
func (h *SettingsHandler) Put(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		BadRequest(c, "Invalid JSON")
		return
	}
	key := c.Param("key")
	value := service.CoerceText(payload["value"])
	if err := h.settings.Set(key, value); err != nil {
		RespondError(c, err, "Failed to save setting")
		return
	}
	if value == "" {
		c.JSON(http.StatusOK, gin.H{"deleted": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": value})
}

// Delete 删除单个设置键，键不存在也算成功
// @Summary 删除设置
// @Tags 设置
// @Produce json
// @Param key path string true "设置键"
// @Success 200 {object} object
// @Router /api/settings/{key} [delete]
func (h *SettingsHandler) Delete(c *gin.Context) {
	if err := h.settings.Delete(c.Param("key")); err != nil {
		RespondError(c, err, "Failed to delete setting")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
