package service

import (
	"errors"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"bizledger/models"
)

// AttachmentStore 附件存取层：元数据进库，文件落在
// uploads/<kind>/<recordId>/ 下，文件名前缀随机避免互相覆盖
type AttachmentStore struct {
	db  *gorm.DB
	dir string
}

// NewAttachmentStore 创建附件存取层，dir 为上传根目录
func NewAttachmentStore(db *gorm.DB, dir string) *AttachmentStore {
	return &AttachmentStore{db: db, dir: dir}
}

// decorate 补上对外下载地址，URL 不落库
func (s *AttachmentStore) decorate(a *models.Attachment) {
	a.URL = "/uploads/" + a.Kind + "/" + a.RecordID + "/" + a.StoredName
}

// ListForRecord 按记录列出附件，最近上传在前
func (s *AttachmentStore) ListForRecord(kind Kind, recordID string) ([]models.Attachment, error) {
	rows := make([]models.Attachment, 0)
	err := s.db.Where("kind = ? AND record_id = ?", kind.String(), recordID).
		Order("created_at DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		s.decorate(&rows[i])
	}
	return rows, nil
}

// SaveUploads 保存一批上传文件并登记元数据
func (s *AttachmentStore) SaveUploads(kind Kind, recordID string, files []*multipart.FileHeader) ([]models.Attachment, error) {
	saved := make([]models.Attachment, 0, len(files))
	for _, fh := range files {
		if fh == nil || fh.Filename == "" {
			continue
		}
		src, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return nil, err
		}
		mimeType := fh.Header.Get("Content-Type")
		att, err := s.SaveBytes(kind, recordID, fh.Filename, mimeType, data)
		if err != nil {
			return nil, err
		}
		saved = append(saved, att)
	}
	return saved, nil
}

// SaveBytes 保存一段内存数据为附件，扫描导入的小票走这里
func (s *AttachmentStore) SaveBytes(kind Kind, recordID, filename, mimeType string, data []byte) (models.Attachment, error) {
	recordDir := filepath.Join(s.dir, kind.String(), recordID)
	if err := os.MkdirAll(recordDir, 0o755); err != nil {
		return models.Attachment{}, err
	}
	safe := secureFilename(filename)
	if safe == "" {
		safe = "file"
	}
	stored := NewID() + "_" + safe
	if err := os.WriteFile(filepath.Join(recordDir, stored), data, 0o644); err != nil {
		return models.Attachment{}, err
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	att := models.Attachment{
		ID:           NewID(),
		Kind:         kind.String(),
		RecordID:     recordID,
		OriginalName: filename,
		StoredName:   stored,
		MimeType:     mimeType,
		Size:         int64(len(data)),
	}
	if err := s.db.Create(&att).Error; err != nil {
		return models.Attachment{}, err
	}
	s.decorate(&att)
	return att, nil
}

// Get 按主键取附件元数据
func (s *AttachmentStore) Get(id string) (*models.Attachment, error) {
	var att models.Attachment
	err := s.db.Where("id = ?", id).First(&att).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	s.decorate(&att)
	return &att, nil
}

// Delete 删除附件，磁盘文件尽力而为地移除
func (s *AttachmentStore) Delete(id string) error {
	att, err := s.Get(id)
	if err != nil {
		return err
	}
	if path, err := s.ResolvePath(att); err == nil {
		os.Remove(path)
	}
	return s.db.Where("id = ?", id).Delete(&models.Attachment{}).Error
}

// DeleteForRecord 删除某条记录的全部附件行和上传目录
func (s *AttachmentStore) DeleteForRecord(kind Kind, recordID string) error {
	if err := s.db.Where("kind = ? AND record_id = ?", kind.String(), recordID).
		Delete(&models.Attachment{}).Error; err != nil {
		return err
	}
	os.RemoveAll(filepath.Join(s.dir, kind.String(), recordID))
	return nil
}

// DeleteForKind 清空某类资源的全部附件
func (s *AttachmentStore) DeleteForKind(kind Kind) error {
	if err := s.db.Where("kind = ?", kind.String()).Delete(&models.Attachment{}).Error; err != nil {
		return err
	}
	os.RemoveAll(filepath.Join(s.dir, kind.String()))
	return nil
}

// ResolvePath 把附件映射到磁盘绝对路径，越界或文件丢失都按不存在处理
func (s *AttachmentStore) ResolvePath(att *models.Attachment) (string, error) {
	root, err := filepath.Abs(s.dir)
	if err != nil {
		return "", err
	}
	path, err := filepath.Abs(filepath.Join(root, att.Kind, att.RecordID, att.StoredName))
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(path, root+string(os.PathSeparator)) {
		return "", ErrNotFound
	}
	if _, err := os.Stat(path); err != nil {
		return "", ErrNotFound
	}
	return path, nil
}

// WipeAll 恢复出厂时清掉整个上传目录并重建
func (s *AttachmentStore) WipeAll() error {
	if err := s.db.Where("1 = 1").Delete(&models.Attachment{}).Error; err != nil {
		return err
	}
	if err := os.RemoveAll(s.dir); err != nil {
		return err
	}
	return os.MkdirAll(s.dir, 0o755)
}
