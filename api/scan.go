package api

import (
	"io"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"bizledger/models"
	"bizledger/service"
)

// ScanHandler 小票扫描导入：图片过模型提取后直接落一条支出，
// 原图作为附件挂在新记录上
type ScanHandler struct {
	scanner     *service.ScanService
	records     *service.RecordStore
	attachments *service.AttachmentStore
}

// NewScanHandler 创建扫描处理器
func NewScanHandler(scanner *service.ScanService, records *service.RecordStore, attachments *service.AttachmentStore) *ScanHandler {
	return &ScanHandler{scanner: scanner, records: records, attachments: attachments}
}

// scanFile 取上传图片，字段名 file，兼容旧前端的 image
func scanFile(c *gin.Context) (*multipart.FileHeader, bool) {
	if fh, err := c.FormFile("file"); err == nil {
		return fh, true
	}
	if fh, err := c.FormFile("image"); err == nil {
		return fh, true
	}
	return nil, false
}

// Scan 扫描小票并创建支出
// @Summary 扫描小票
// @Description 图片发给已配置的视觉模型端点，提取结果直接存为支出记录，原图挂为附件
// @Tags 支出导入
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "小票图片"
// @Success 200 {object} object
// @Failure 400 {object} object
// @Failure 422 {object} object
// @Failure 502 {object} object
// @Router /api/expenses/scan [post]
func (h *ScanHandler) Scan(c *gin.Context) {
	fh, ok := scanFile(c)
	if !ok {
		BadRequest(c, "No file uploaded")
		return
	}
	src, err := fh.Open()
	if err != nil {
		BadRequest(c, "No file uploaded")
		return
	}
	data, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		InternalError(c, err, "Failed to read uploaded file")
		return
	}

	mimeType := fh.Header.Get("Content-Type")
	suggested, raw, err := h.scanner.Extract(data, mimeType)
	if err != nil {
		RespondError(c, err, "Scan failed")
		return
	}

	stored, err := h.records.Upsert(service.KindExpenses, suggested)
	if err != nil {
		RespondError(c, err, "Failed to save expense")
		return
	}
	expense, _ := stored.(models.Expense)

	// 原图挂为附件，失败不影响已落库的支出
	saved := make([]models.Attachment, 0, 1)
	att, err := h.attachments.SaveBytes(service.KindExpenses, expense.ID, fh.Filename, mimeType, data)
	if err != nil {
		log.Printf("扫描附件保存失败: %v", err)
	} else {
		saved = append(saved, att)
	}

	c.JSON(http.StatusOK, gin.H{
		"expense":     expense,
		"attachments": saved,
		"raw":         raw,
	})
}
