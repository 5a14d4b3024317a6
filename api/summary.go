package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bizledger/service"
)

// SummaryHandler 仪表盘汇总接口
type SummaryHandler struct {
	summary *service.SummaryService
}

// NewSummaryHandler 创建汇总处理器
func NewSummaryHandler(summary *service.SummaryService) *SummaryHandler {
	return &SummaryHandler{summary: summary}
}

// Summary 仪表盘汇总
// @Summary 仪表盘汇总
// @Description 当前税年与全部时间的分组合计，外加最近十二个月收支曲线
// @Tags 汇总
// @Produce json
// @Success 200 {object} service.Summary
// @Router /api/summary [get]
func (h *SummaryHandler) Summary(c *gin.Context) {
	doc, err := h.summary.Build(time.Now())
	if err != nil {
		RespondError(c, err, "Failed to build summary")
		return
	}
	c.JSON(http.StatusOK, doc)
}
