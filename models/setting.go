package models

// Setting 应用设置，扁平键值对
// 写入空值等价于删除该键
type Setting struct {
	Key   string `json:"key" gorm:"primaryKey;size:190"`
	Value string `json:"value"`
}

// TableName 设置表名
func (Setting) TableName() string {
	return "settings"
}

// 扫描端点相关的设置键，优先于配置文件中的 scan.* 项
const (
	SettingScanEndpoint = "scan_endpoint"
	SettingScanAPIKey   = "scan_api_key"
	SettingScanModel    = "scan_model"
	SettingScanProvider = "scan_provider"
)
