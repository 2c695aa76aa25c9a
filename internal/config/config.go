// Package config 负责加载和管理应用程序的配置。
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// 组织树的初始数据来源
const (
	SeedDemo  = "demo"
	SeedMySQL = "mysql"
)

// 全局配置变量，存储从配置文件加载的所有设置。
var Conf Config

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Org      OrgConfig      `mapstructure:"org"`
}

// ServerConfig 存储服务器相关的配置。
type ServerConfig struct {
	Port            string `mapstructure:"port"`
	Mode            string `mapstructure:"mode"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout_seconds"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
	// LogBodies 为 true 时请求日志包含请求体和响应体
	LogBodies bool `mapstructure:"log_bodies"`
}

type DatabaseConfig struct {
	MySQL MySQLConfig `mapstructure:"mysql"`
}

type MySQLConfig struct {
	DSN             string `mapstructure:"dsn"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	AutoMigrate     bool   `mapstructure:"auto_migrate"`
	SlowThresholdMs int    `mapstructure:"slow_threshold_ms"`
}

// OrgConfig 控制初始组织树从哪里加载：demo 使用内置参考树，mysql 读取 employees 表。
type OrgConfig struct {
	Seed string `mapstructure:"seed"`
}

// Init 从指定路径读取 YAML 配置文件并解析到 Conf。
// 环境变量以 ORGCHART_ 为前缀覆盖同名配置，例如 ORGCHART_SERVER_PORT。
func Init(configPath string) {
	if err := Load(configPath, &Conf); err != nil {
		panic(err)
	}
}

// Load 读取配置到 out，未设置的字段使用默认值。
func Load(configPath string, out *Config) error {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("ORGCHART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout_seconds", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("database.mysql.max_idle_conns", 10)
	v.SetDefault("database.mysql.max_open_conns", 100)
	v.SetDefault("database.mysql.slow_threshold_ms", 200)
	v.SetDefault("org.seed", SeedDemo)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("fatal error config file: %w", err)
	}
	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("fatal error unmarshalling config: %w", err)
	}

	out.Org.Seed = strings.ToLower(strings.TrimSpace(out.Org.Seed))
	switch out.Org.Seed {
	case SeedDemo:
	case SeedMySQL:
		if out.Database.MySQL.DSN == "" {
			return fmt.Errorf("org.seed is %q but database.mysql.dsn is empty", SeedMySQL)
		}
	default:
		return fmt.Errorf("unknown org.seed %q, use %q or %q", out.Org.Seed, SeedDemo, SeedMySQL)
	}
	return nil
}
