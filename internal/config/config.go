package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 应用配置
type AppConfig struct {
	Server   ServerConfig   `toml:"server"`
	Data     DataConfig     `toml:"data"`
	Business BusinessConfig `toml:"business"`
}

// ServerConfig 服务模式配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据文件配置
type DataConfig struct {
	SchedulePath string `toml:"schedule_path"` // 每周排班表 (tsv)
	PickupPath   string `toml:"pickup_path"`   // 自提点表 (csv)
	OutputDir    string `toml:"output_dir"`    // 输出根目录
	Archive      bool   `toml:"archive"`       // 是否归档到 SQLite
}

// BusinessConfig 业务配置
type BusinessConfig struct {
	Branches            []string `toml:"branches"`               // 分店列表
	TipItemName         string   `toml:"tip_item_name"`          // 小费商品名（非食品）
	DeliveryFeeItemName string   `toml:"delivery_fee_item_name"` // 运费补拍商品名（非食品）
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20318,
			DevMode: false,
		},
		Data: DataConfig{
			SchedulePath: "config/weekly_schedule.tsv",
			PickupPath:   "config/pickup_locations.csv",
			OutputDir:    "output",
			Archive:      true,
		},
		Business: BusinessConfig{
			Branches:            []string{"Edmonds", "Redmond"},
			TipItemName:         "小费 Tip",
			DeliveryFeeItemName: "运费补拍",
		},
	}
}

// LoadConfig 从工作目录的 config.toml 加载配置
// 配置文件不存在时返回默认配置
func LoadConfig() (*AppConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile("config.toml")
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(config)
			return config, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	applyEnvOverrides(config)
	return config, nil
}

// applyEnvOverrides 环境变量覆盖（用于本地调试）
func applyEnvOverrides(config *AppConfig) {
	if v := os.Getenv("ORDER_REPORTS_SCHEDULE_PATH"); v != "" {
		config.Data.SchedulePath = v
	}
	if v := os.Getenv("ORDER_REPORTS_PICKUP_PATH"); v != "" {
		config.Data.PickupPath = v
	}
	if v := os.Getenv("ORDER_REPORTS_OUTPUT_DIR"); v != "" {
		config.Data.OutputDir = v
	}
}

// SaveConfig 保存配置到 config.toml
func SaveConfig(config *AppConfig) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile("config.toml", data, 0644)
}

// ArchivePath 归档数据库在输出根目录下的路径
func ArchivePath(config *AppConfig) string {
	return filepath.Join(config.Data.OutputDir, "order_reports.db")
}

// EnsureOutputDir 确保某次导出的输出目录存在，返回该目录路径
// 目录结构: <output_dir>/<export名>/reports
func EnsureOutputDir(config *AppConfig, exportName string) (string, error) {
	runDir := filepath.Join(config.Data.OutputDir, exportName)
	if err := os.MkdirAll(filepath.Join(runDir, "reports"), 0755); err != nil {
		return "", err
	}
	return runDir, nil
}
