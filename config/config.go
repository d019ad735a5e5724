package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"astock/market"
)

// ErrMissingSignature 未提供智能体签名（SIGNATURE）
var ErrMissingSignature = errors.New("SIGNATURE environment variable is not set")

// 运行参数的环境变量名
const (
	EnvTodayDate = "TODAY_DATE"
	EnvSignature = "SIGNATURE"
)

// 价格数据源
const (
	PriceSourceFile      = "file"
	PriceSourceEastMoney = "eastmoney"
	PriceSourceLongport  = "longport"
)

// 名称数据源
const (
	NameSourceStatic   = "static"
	NameSourceSina     = "sina"
	NameSourceLongport = "longport"
	NameSourceChain    = "chain" // 内置表 -> 新浪 -> 长桥（已配置时）
)

// YAMLConfig YAML配置文件结构
type YAMLConfig struct {
	Market string `yaml:"market"`

	Data struct {
		Dir         string            `yaml:"dir"`
		PriceFiles  map[string]string `yaml:"price_files"`
		PositionDir string            `yaml:"position_dir"`
	} `yaml:"data"`

	Sources struct {
		Price       string `yaml:"price"`
		Names       string `yaml:"names"`
		HTTPTimeout int    `yaml:"http_timeout"`
	} `yaml:"sources"`

	Longport struct {
		AppKey      string `yaml:"app_key"`
		AppSecret   string `yaml:"app_secret"`
		AccessToken string `yaml:"access_token"`
	} `yaml:"longport"`

	Universe []string `yaml:"universe"`

	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Config 配置
type Config struct {
	// 市场（cn/us）
	Market market.Market

	// 日K数据文件（file 数据源），按市场区分
	PriceFiles map[market.Market]string

	// 持仓目录，其下为 <signature>/position/position.jsonl
	PositionDir string

	// 价格数据源 file/eastmoney/longport
	PriceSource string

	// 名称数据源 static/sina/longport/chain
	NameSource string

	// 外部接口超时
	HTTPTimeout time.Duration

	// 长桥 OpenAPI 凭证
	LongportAppKey      string
	LongportAppSecret   string
	LongportAccessToken string

	// 标的池覆盖，为空时使用市场默认标的池
	Universe []string

	// HTTP 服务端口
	Port int

	// 日志级别
	LogLevel string
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		Market: market.CN,
		PriceFiles: map[market.Market]string{
			market.CN: filepath.Join("data", "A_stock", "merged.jsonl"),
			market.US: filepath.Join("data", "merged.jsonl"),
		},
		PositionDir: filepath.Join("data", "agent_data_astock"),
		PriceSource: PriceSourceFile,
		NameSource:  NameSourceStatic,
		HTTPTimeout: 10 * time.Second,
		Port:        19527,
		LogLevel:    "info",
	}
}

// LoadFromFile 从YAML文件加载配置
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var yc YAMLConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	cfg := DefaultConfig()

	if yc.Market != "" {
		m, err := market.ParseMarket(yc.Market)
		if err != nil {
			return nil, err
		}
		cfg.Market = m
	}

	// 数据目录：相对路径的默认文件挂到 data.dir 下
	if yc.Data.Dir != "" {
		cfg.PriceFiles = map[market.Market]string{
			market.CN: filepath.Join(yc.Data.Dir, "A_stock", "merged.jsonl"),
			market.US: filepath.Join(yc.Data.Dir, "merged.jsonl"),
		}
		cfg.PositionDir = filepath.Join(yc.Data.Dir, "agent_data_astock")
	}
	for k, v := range yc.Data.PriceFiles {
		m, err := market.ParseMarket(k)
		if err != nil {
			return nil, err
		}
		if v != "" {
			cfg.PriceFiles[m] = v
		}
	}
	if yc.Data.PositionDir != "" {
		cfg.PositionDir = yc.Data.PositionDir
	}

	if yc.Sources.Price != "" {
		cfg.PriceSource = yc.Sources.Price
	}
	if yc.Sources.Names != "" {
		cfg.NameSource = yc.Sources.Names
	}
	if yc.Sources.HTTPTimeout > 0 {
		cfg.HTTPTimeout = time.Duration(yc.Sources.HTTPTimeout) * time.Second
	}

	cfg.LongportAppKey = yc.Longport.AppKey
	cfg.LongportAppSecret = yc.Longport.AppSecret
	cfg.LongportAccessToken = yc.Longport.AccessToken

	if len(yc.Universe) > 0 {
		cfg.Universe = yc.Universe
	}
	if yc.Server.Port > 0 {
		cfg.Port = yc.Server.Port
	}
	if yc.Log.Level != "" {
		cfg.LogLevel = yc.Log.Level
	}

	return &cfg, cfg.Validate()
}

// GetConfig 获取配置 (优先级: 环境变量 > 配置文件 > 默认值)
// configPath 为空时若当前目录存在 config.yaml 则使用之；同时加载 .env
func GetConfig(configPath string) (*Config, error) {
	_ = godotenv.Load()

	if configPath == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			configPath = "config.yaml"
		}
	}

	cfg := DefaultConfig()
	if configPath != "" {
		loaded, err := LoadFromFile(configPath)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}

	if err := cfg.loadFromEnv(); err != nil {
		return nil, err
	}
	return &cfg, cfg.Validate()
}

func (c *Config) loadFromEnv() error {
	if val := os.Getenv("ASTOCK_MARKET"); val != "" {
		m, err := market.ParseMarket(val)
		if err != nil {
			return err
		}
		c.Market = m
	}
	if val := os.Getenv("PRICE_SOURCE"); val != "" {
		c.PriceSource = val
	}
	if val := os.Getenv("NAME_SOURCE"); val != "" {
		c.NameSource = val
	}
	if val := os.Getenv("PRICE_FILE"); val != "" {
		c.PriceFiles[c.Market] = val
	}
	if val := os.Getenv("POSITION_DIR"); val != "" {
		c.PositionDir = val
	}
	if val := os.Getenv("ASTOCK_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			c.Port = port
		}
	}
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.LogLevel = val
	}
	if val := os.Getenv("LONGPORT_APP_KEY"); val != "" {
		c.LongportAppKey = val
	}
	if val := os.Getenv("LONGPORT_APP_SECRET"); val != "" {
		c.LongportAppSecret = val
	}
	if val := os.Getenv("LONGPORT_ACCESS_TOKEN"); val != "" {
		c.LongportAccessToken = val
	}
	return nil
}

// Validate 校验数据源取值
func (c *Config) Validate() error {
	switch c.PriceSource {
	case PriceSourceFile, PriceSourceEastMoney, PriceSourceLongport:
	default:
		return fmt.Errorf("未知的价格数据源: %s", c.PriceSource)
	}
	switch c.NameSource {
	case NameSourceStatic, NameSourceSina, NameSourceLongport, NameSourceChain:
	default:
		return fmt.Errorf("未知的名称数据源: %s", c.NameSource)
	}
	return nil
}

// HasLongport 是否配置了长桥凭证
func (c *Config) HasLongport() bool {
	return c.LongportAppKey != "" && c.LongportAppSecret != "" && c.LongportAccessToken != ""
}

// ResolveRun 解析运行参数：显式值优先，其次环境变量 TODAY_DATE / SIGNATURE。
// 签名缺失时返回 ErrMissingSignature；日期缺失时为空，由调用方决定默认值
func ResolveRun(date, signature string) (string, string, error) {
	if strings.TrimSpace(date) == "" {
		date = os.Getenv(EnvTodayDate)
	}
	if strings.TrimSpace(signature) == "" {
		signature = os.Getenv(EnvSignature)
	}
	date, signature = strings.TrimSpace(date), strings.TrimSpace(signature)
	if signature == "" {
		return "", "", ErrMissingSignature
	}
	return date, signature, nil
}
