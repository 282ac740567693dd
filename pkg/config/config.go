package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config 项目配置结构体
type Config struct {
	AI          AIConfig          `yaml:"ai"`
	Search      SearchConfig      `yaml:"search"`
	Engine      EngineConfig      `yaml:"engine"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	DB          DBConfig          `yaml:"db"`
	Server      ServerConfig      `yaml:"server"`
}

// AIConfig 模型协作方配置，Providers 的顺序即故障转移顺序
type AIConfig struct {
	Providers []AIProviderConfig `yaml:"providers"`
}

// AIProviderConfig 单个模型提供商
type AIProviderConfig struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// SearchConfig 搜索相关配置
type SearchConfig struct {
	Providers []string      `yaml:"providers"`
	Tavily    TavilyConfig  `yaml:"tavily"`
	SearXNG   SearXNGConfig `yaml:"searxng"`
}

// TavilyConfig Tavily 配置
type TavilyConfig struct {
	APIKey string `yaml:"api_key"`
}

// SearXNGConfig SearXNG 配置
type SearXNGConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// EngineConfig 分析引擎限制参数。MaxAnalysisTime 仅作为调用方的
// 时间上限假设记录在配置里，引擎内部不会据此中断在途工作。
type EngineConfig struct {
	MaxAnalysisTime int `yaml:"max_analysis_time"`
	ExtractTimeout  int `yaml:"extract_timeout"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig 模型调用限流配置
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// DBConfig 数据库相关配置
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Addr    string `yaml:"addr"`
	Timeout string `yaml:"timeout"`
}

// LoadConfig 从指定路径加载配置
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Engine.MaxAnalysisTime == 0 {
		cfg.Engine.MaxAnalysisTime = 1800 // 30 分钟
	}
	if cfg.Engine.ExtractTimeout == 0 {
		cfg.Engine.ExtractTimeout = 30
	}
	if cfg.Concurrency.QPS == 0 {
		cfg.Concurrency.QPS = 1
	}
	if cfg.Concurrency.RPM == 0 {
		cfg.Concurrency.RPM = 60
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8000"
	}
}
