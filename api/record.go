package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bizledger/service"
)

// RecordHandler 收入、支出、工资三类记录共用的增删改查接口，
// 路由注册时按种类绑定
type RecordHandler struct {
	records *service.RecordStore
}

// NewRecordHandler 创建记录处理器
func NewRecordHandler(records *service.RecordStore) *RecordHandler {
	return &RecordHandler{records: records}
}

// List 记录列表
// @Summary 记录列表
// @Description 返回某类资源的全部记录，日期倒序，同日最近更新在前
// @Tags 账目记录
// @Produce json
// @Param kind path string true "资源种类" Enums(income, expenses, payroll)
// @Success 200 {array} object
// @Router /api/{kind} [get]
func (h *RecordHandler) List(kind service.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := h.records.List(kind)
		if err != nil {
			RespondError(c, err, "Failed to list records")
			return
		}
		c.JSON(http.StatusOK, records)
	}
}

// Get 单条记录
// @Summary 单条记录
// @Tags 账目记录
// @Produce json
// @Param kind path string true "资源种类" Enums(income, expenses, payroll)
// @Param id path string true "记录 ID"
// @Success 200 {object} object
// @Failure 404 {object} object
// @Router /api/{kind}/{id} [get]
func (h *RecordHandler) Get(kind service.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		record, err := h.records.Get(kind, c.Param("id"))
		if err != nil {
			RespondError(c, err, "Failed to load record")
			return
		}
		c.JSON(http.StatusOK, record)
	}
}

// Create 新建或覆盖记录
// @Summary 新建记录
// @Description 请求体宽松取值，带 id 时覆盖同键记录；新建工资记录会镜像一条支出
// @Tags 账目记录
// @Accept json
// @Produce json
// @Param kind path string true "资源种类" Enums(income, expenses, payroll)
// @Param data body object true "记录内容"
// @Success 200 {object} object
// @Failure 400 {object} object
// @Router /api/{kind} [post]
func (h *RecordHandler) Create(kind service.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload map[string]interface{}
		if err := c.ShouldBindJSON(&payload); err != nil {
			BadRequest(c, "Invalid JSON")
			return
		}
		record, err := h.records.Upsert(kind, payload)
		if err != nil {
			RespondError(c, err, "Failed to save record")
			return
		}
		c.JSON(http.StatusOK, record)
	}
}

// Update 按路径 ID 覆盖记录，路径里的 ID 优先于请求体
// @Summary 更新记录
// @Tags 账目记录
// @Accept json
// @Produce json
// @Param kind path string true "资源种类" Enums(income, expenses, payroll)
// @Param id path string true "记录 ID"
// @Param data body object true "记录内容"
// @Success 200 {object} object
// @Failure 400 {object} object
// @Router /api/{kind}/{id} [put]
func (h *RecordHandler) Update(kind service.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload map[string]interface{}
		if err := c.ShouldBindJSON(&payload); err != nil {
			BadRequest(c, "Invalid JSON")
			return
		}
		if payload == nil {
			payload = map[string]interface{}{}
		}
		payload["id"] = c.Param("id")
		record, err := h.records.Upsert(kind, payload)
		if err != nil {
			RespondError(c, err, "Failed to save record")
			return
		}
		c.JSON(http.StatusOK, record)
	}
}

// Delete 删除单条记录及其附件
// @Summary 删除记录
// @Tags 账目记录
// @Produce json
// @Param kind path string true "资源种类" Enums(income, expenses, payroll)
// @Param id path string true "记录 ID"
// @Success 200 {object} object
// @Failure 404 {object} object
// @Router /api/{kind}/{id} [delete]
func (h *RecordHandler) Delete(kind service.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.records.Delete(kind, c.Param("id")); err != nil {
			RespondError(c, err, "Failed to delete record")
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}

// Clear 清空某类资源
// @Summary 清空记录
// @Description 删除该类全部记录和附件，不可恢复
// @Tags 账目记录
// @Produce json
// @Param kind path string true "资源种类" Enums(income, expenses, payroll)
// @Success 200 {object} object
// @Router /api/{kind} [delete]
func (h *RecordHandler) Clear(kind service.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.records.Clear(kind); err != nil {
			RespondError(c, err, "Failed to clear records")
			return
		}
		c.JSON(http.StatusOK, gin.H{"cleared": true})
	}
}
