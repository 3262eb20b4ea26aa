package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// SizingConfig 定额计算的默认参数
type SizingConfig struct {
	// DefaultKelly 未指定 -kelly 时使用的分数凯利乘数，必须在 (0,1]
	DefaultKelly float64 `yaml:"defaultKelly" json:"default_kelly"`
	// DefaultBankroll 未指定 -bankroll 时使用的资金（0 = 必须由命令行提供）
	DefaultBankroll float64 `yaml:"defaultBankroll" json:"default_bankroll"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string `yaml:"level" json:"level"`
	File       string `yaml:"file" json:"file"`
	MaxSize    int    `yaml:"maxSize" json:"max_size"`       // MB
	MaxBackups int    `yaml:"maxBackups" json:"max_backups"` // 保留数量
	MaxAge     int    `yaml:"maxAge" json:"max_age"`         // 天
	Compress   bool   `yaml:"compress" json:"compress"`
}

// Config 应用配置
type Config struct {
	Sizing SizingConfig `yaml:"sizing" json:"sizing"`
	Log    LogConfig    `yaml:"log" json:"log"`
}

var globalConfig *Config
var configFilePath string

// SetConfigPath 设置配置文件路径
func SetConfigPath(path string) {
	configFilePath = path
}

// GetConfigPath 获取配置文件路径
func GetConfigPath() string {
	return configFilePath
}

// defaultConfig 缺省值：半凯利，info 级别，只输出到 stderr
func defaultConfig() *Config {
	return &Config{
		Sizing: SizingConfig{
			DefaultKelly: 0.5,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     7,
			Compress:   true,
		},
	}
}

// Load 加载配置：文件（如果设置了路径）-> 环境变量覆盖 -> 校验。
// 未设置路径时只使用缺省值和环境变量。
func Load() (*Config, error) {
	cfg := defaultConfig()

	if configFilePath != "" {
		if err := loadFromFile(cfg, configFilePath); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	globalConfig = cfg
	return cfg, nil
}

// Get 获取全局配置（未加载时返回缺省值）
func Get() *Config {
	if globalConfig == nil {
		return defaultConfig()
	}
	return globalConfig
}

// loadFromFile 按扩展名解析 yaml/json 配置文件
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read config file %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return errors.Wrapf(err, "parse yaml config %s", path)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return errors.Wrapf(err, "parse json config %s", path)
		}
	default:
		return fmt.Errorf("unsupported config format: %s (want .yaml, .yml or .json)", path)
	}
	return nil
}

// applyEnvOverrides 环境变量覆盖（GOKELLY_* 前缀）
func applyEnvOverrides(cfg *Config) {
	if v := getEnvFloat("GOKELLY_DEFAULT_KELLY"); v != nil {
		cfg.Sizing.DefaultKelly = *v
	}
	if v := getEnvFloat("GOKELLY_DEFAULT_BANKROLL"); v != nil {
		cfg.Sizing.DefaultBankroll = *v
	}
	if v := os.Getenv("GOKELLY_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("GOKELLY_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}

func getEnvFloat(key string) *float64 {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}

func (c *Config) validate() error {
	if !(c.Sizing.DefaultKelly > 0 && c.Sizing.DefaultKelly <= 1) {
		return fmt.Errorf("sizing.defaultKelly %v out of range (0,1]", c.Sizing.DefaultKelly)
	}
	if c.Sizing.DefaultBankroll < 0 {
		return fmt.Errorf("sizing.defaultBankroll %v must not be negative", c.Sizing.DefaultBankroll)
	}
	return nil
}
