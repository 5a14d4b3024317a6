package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"bizledger/config"
	"bizledger/service"
)

// SystemHandler 健康检查、版本号和恢复出厂
type SystemHandler struct {
	cfg         *config.Config
	records     *service.RecordStore
	attachments *service.AttachmentStore
	settings    *service.SettingsStore
}

// NewSystemHandler 创建系统处理器
func NewSystemHandler(cfg *config.Config, records *service.RecordStore, attachments *service.AttachmentStore, settings *service.SettingsStore) *SystemHandler {
	return &SystemHandler{cfg: cfg, records: records, attachments: attachments, settings: settings}
}

// Ping 健康检查，顺带回各类记录数
// @Summary 健康检查
// @Tags 系统
// @Produce json
// @Success 200 {object} object
// @Router /api/ping [get]
func (h *SystemHandler) Ping(c *gin.Context) {
	counts := gin.H{}
	for _, kind := range service.Kinds() {
		n, err := h.records.Count(kind)
		if err != nil {
			RespondError(c, err, "Failed to count records")
			return
		}
		counts[kind.String()] = n
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "counts": counts})
}

// Version 当前版本号
// @Summary 版本号
// @Tags 系统
// @Produce json
// @Success 200 {object} object
// @Router /api/version [get]
func (h *SystemHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"version": h.cfg.App.Version})
}

// FactoryReset 恢复出厂：清空全部表和上传目录，必须显式确认
// @Summary 恢复出厂
// @Description 请求体需带 confirm 真值，清空所有记录、附件、设置，不可恢复
// @Tags 系统
// @Accept json
// @Produce json
// @Param data body object true "确认标记"
// @Success 200 {object} object
// @Failure 400 {object} object
// @Router /api/factory-reset [post]
func (h *SystemHandler) FactoryReset(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil || !service.Truthy(payload["confirm"]) {
		BadRequest(c, "Confirmation required")
		return
	}
	for _, kind := range service.Kinds() {
		if err := h.records.Clear(kind); err != nil {
			RespondError(c, err, "Factory reset failed")
			return
		}
	}
	if err := h.attachments.WipeAll(); err != nil {
		RespondError(c, err, "Factory reset failed")
		return
	}
	if err := h.settings.Clear(); err != nil {
		RespondError(c, err, "Factory reset failed")
		return
	}
	log.Println("恢复出厂设置完成")
	c.JSON(http.StatusOK, gin.H{"reset": true})
}
