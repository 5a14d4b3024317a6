package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bizledger/service"
)

// AttachmentHandler 附件接口：上传、列表、下载、删除
type AttachmentHandler struct {
	records     *service.RecordStore
	attachments *service.AttachmentStore
}

// NewAttachmentHandler 创建附件处理器
func NewAttachmentHandler(records *service.RecordStore, attachments *service.AttachmentStore) *AttachmentHandler {
	return &AttachmentHandler{records: records, attachments: attachments}
}

// requireParent 附件操作前确认父记录存在
func (h *AttachmentHandler) requireParent(c *gin.Context, kind service.Kind) (string, bool) {
	recordID := c.Param("id")
	if _, err := h.records.Get(kind, recordID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			NotFound(c, "Parent record not found")
		} else {
			RespondError(c, err, "Failed to load record")
		}
		return "", false
	}
	return recordID, true
}

// ListForRecord 某条记录的附件列表
// @Summary 附件列表
// @Tags 附件
// @Produce json
// @Param kind path string true "资源种类" Enums(income, expenses)
// @Param id path string true "记录 ID"
// @Success 200 {array} object
// @Failure 404 {object} object
// @Router /api/{kind}/{id}/attachments [get]
func (h *AttachmentHandler) ListForRecord(kind service.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		recordID, ok := h.requireParent(c, kind)
		if !ok {
			return
		}
		rows, err := h.attachments.ListForRecord(kind, recordID)
		if err != nil {
			RespondError(c, err, "Failed to list attachments")
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// Upload 上传附件，multipart 字段名 files，支持一次多个
// @Summary 上传附件
// @Tags 附件
// @Accept multipart/form-data
// @Produce json
// @Param kind path string true "资源种类" Enums(income, expenses)
// @Param id path string true "记录 ID"
// @Param files formData file true "附件文件"
// @Success 200 {array} object
// @Failure 400 {object} object
// @Router /api/{kind}/{id}/attachments [post]
func (h *AttachmentHandler) Upload(kind service.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		recordID, ok := h.requireParent(c, kind)
		if !ok {
			return
		}
		form, err := c.MultipartForm()
		if err != nil || form == nil {
			BadRequest(c, "No files uploaded")
			return
		}
		uploaded := 0
		for _, headers := range form.File {
			uploaded += len(headers)
		}
		if uploaded == 0 {
			BadRequest(c, "No files uploaded")
			return
		}
		saved, err := h.attachments.SaveUploads(kind, recordID, form.File["files"])
		if err != nil {
			RespondError(c, err, "Failed to save attachments")
			return
		}
		c.JSON(http.StatusOK, saved)
	}
}

// Unsupported 工资记录不支持附件，统一回 400
func (h *AttachmentHandler) Unsupported(c *gin.Context) {
	BadRequest(c, "Unsupported kind for attachments")
}

// Get 附件元数据
// @Summary 附件详情
// @Tags 附件
// @Produce json
// @Param id path string true "附件 ID"
// @Success 200 {object} object
// @Failure 404 {object} object
// @Router /api/attachments/{id} [get]
func (h *AttachmentHandler) Get(c *gin.Context) {
	att, err := h.attachments.Get(c.Param("id"))
	if err != nil {
		RespondError(c, err, "Failed to load attachment")
		return
	}
	c.JSON(http.StatusOK, att)
}

// Delete 删除附件及磁盘文件
// @Summary 删除附件
// @Tags 附件
// @Produce json
// @Param id path string true "附件 ID"
// @Success 200 {object} object
// @Failure 404 {object} object
// @Router /api/attachments/{id} [delete]
func (h *AttachmentHandler) Delete(c *gin.Context) {
	if err := h.attachments.Delete(c.Param("id")); err != nil {
		RespondError(c, err, "Failed to delete attachment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// Download 下载附件，带原始文件名提示，浏览器内联打开
// @Summary 下载附件
// @Tags 附件
// @Produce octet-stream
// @Param id path string true "附件 ID"
// @Success 200 {file} binary
// @Failure 404 {object} object
// @Router /api/attachments/{id}/download [get]
func (h *AttachmentHandler) Download(c *gin.Context) {
	att, err := h.attachments.Get(c.Param("id"))
	if err != nil {
		RespondError(c, err, "Failed to load attachment")
		return
	}
	path, err := h.attachments.ResolvePath(att)
	if err != nil {
		RespondError(c, err, "Failed to locate attachment")
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+att.OriginalName+`"`)
	if att.MimeType != "" {
		c.Header("Content-Type", att.MimeType)
	}
	c.File(path)
}
