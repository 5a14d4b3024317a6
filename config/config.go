package config

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Uploads  UploadsConfig  `mapstructure:"uploads"`
	Scan     ScanConfig     `mapstructure:"scan"`
	App      AppConfig      `mapstructure:"app"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig 数据库配置（SQLite 单文件）
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// UploadsConfig 附件上传目录配置
type UploadsConfig struct {
	Dir string `mapstructure:"dir"`
}

// ScanConfig 小票扫描端点配置
// settings 表中的 scan_endpoint / scan_api_key / scan_model / scan_provider 优先
type ScanConfig struct {
	Endpoint       string `mapstructure:"endpoint"`
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	Provider       string `mapstructure:"provider"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	MaxImagePx     int    `mapstructure:"max_image_px"`
}

// AppConfig 应用级配置
type AppConfig struct {
	Version           string `mapstructure:"version"`
	TaxYearStartMonth int    `mapstructure:"tax_year_start_month"`
	TaxYearStartDay   int    `mapstructure:"tax_year_start_day"`
}

var (
	// GlobalConfig 全局配置实例
	GlobalConfig *Config
)

// LoadConfig 加载配置
// 优先级: 环境变量 > 外部配置文件 > 嵌入的默认配置
// configPath: 可选的外部配置文件路径
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// 1. 首先加载嵌入的默认配置
	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("读取内置配置失败: %w", err)
	}
	log.Println("已加载内置默认配置")

	// 2. 尝试加载外部配置文件（可选，用于覆盖默认配置）
	if configPath != "" {
		// 指定了配置文件路径
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			log.Printf("警告: 无法读取指定配置文件 %s: %v", configPath, err)
		} else {
			log.Printf("已合并外部配置文件: %s", configPath)
		}
	} else {
		// 尝试查找外部配置文件
		externalViper := viper.New()
		externalViper.SetConfigName("config")
		externalViper.SetConfigType("yaml")
		externalViper.AddConfigPath(".")
		externalViper.AddConfigPath("./config")
		externalViper.AddConfigPath("/etc/bizledger")
		externalViper.AddConfigPath("$HOME/.bizledger")

		if err := externalViper.ReadInConfig(); err == nil {
			// 找到外部配置文件，合并配置
			if err := v.MergeConfigMap(externalViper.AllSettings()); err != nil {
				log.Printf("警告: 合并外部配置失败: %v", err)
			} else {
				log.Printf("已合并外部配置文件: %s", externalViper.ConfigFileUsed())
			}
		}
	}

	// 3. 支持环境变量覆盖
	v.SetEnvPrefix("BIZLEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 兼容老部署脚本使用的裸变量名
	_ = v.BindEnv("database.path", "BIZLEDGER_DATABASE_PATH", "DATABASE_PATH")
	_ = v.BindEnv("uploads.dir", "BIZLEDGER_UPLOADS_DIR", "UPLOADS_DIR")
	_ = v.BindEnv("server.port", "BIZLEDGER_SERVER_PORT", "PORT")
	_ = v.BindEnv("app.version", "BIZLEDGER_APP_VERSION", "APP_VERSION")

	// 解析配置
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// 端口允许写成 3000 或 :3000
	if cfg.Server.Port != "" && !strings.HasPrefix(cfg.Server.Port, ":") {
		cfg.Server.Port = ":" + cfg.Server.Port
	}

	// 兜底默认值
	if cfg.Scan.TimeoutSeconds <= 0 {
		cfg.Scan.TimeoutSeconds = 60
	}
	if cfg.Scan.MaxImagePx <= 0 {
		cfg.Scan.MaxImagePx = 1600
	}
	if cfg.App.TaxYearStartMonth < 1 || cfg.App.TaxYearStartMonth > 12 {
		cfg.App.TaxYearStartMonth = 4
	}
	if cfg.App.TaxYearStartDay < 1 || cfg.App.TaxYearStartDay > 28 {
		cfg.App.TaxYearStartDay = 6
	}
	if cfg.App.Version == "" {
		cfg.App.Version = "dev"
	}

	// 保存到全局变量
	GlobalConfig = &cfg

	return &cfg, nil
}

// MustLoadConfig 加载配置，失败则 panic
func MustLoadConfig(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("加载配置失败: %v", err))
	}
	return cfg
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	if GlobalConfig == nil {
		panic("配置未初始化，请先调用 LoadConfig")
	}
	return GlobalConfig
}

// PrintConfig 打印当前配置（隐藏敏感信息）
func PrintConfig() {
	if GlobalConfig == nil {
		return
	}
	log.Printf("当前配置:")
	log.Printf("  服务器: %s (模式: %s)", GlobalConfig.Server.Port, GlobalConfig.Server.Mode)
	log.Printf("  数据库: %s", GlobalConfig.Database.Path)
	log.Printf("  上传目录: %s", GlobalConfig.Uploads.Dir)
	log.Printf("  扫描端点: %v", GlobalConfig.Scan.Endpoint != "")
}

// SafeErrorMessage 生产环境下不向客户端暴露内部错误详情，避免信息泄露
func SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if GlobalConfig == nil {
		return err.Error()
	}
	if GlobalConfig.Server.Mode == "release" {
		return fallback
	}
	return err.Error()
}
