package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/moyu-x/dupscan/internal"
)

type Config struct {
	Database struct {
		Path string
	}
	Scanner struct {
		Algorithm      string
		FollowSymlinks bool `mapstructure:"follow_symlinks"`
		Excludes       []string
	}
	Performance struct {
		Workers int
	}
	Logging struct {
		Level string
		File  string
	}
}

// Load 读取配置，file 为空时在默认路径中搜索，找不到配置文件时使用默认值
func Load(file string) (*Config, error) {
	return LoadFrom(viper.New(), file)
}

// LoadFrom 使用给定的 viper 实例加载配置，file 非空时只读取该文件
func LoadFrom(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath("$HOME/.dupscan")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/dupscan")
	}

	// DUPSCAN_SCANNER_ALGORITHM 等环境变量覆盖配置文件
	v.SetEnvPrefix("dupscan")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("database.path", internal.DefaultDatabasePath)
	v.SetDefault("scanner.algorithm", string(internal.AlgorithmMD5))
	v.SetDefault("scanner.follow_symlinks", true)
	v.SetDefault("scanner.excludes", []string{})
	v.SetDefault("performance.workers", internal.DefaultWorkers)
	v.SetDefault("logging.level", "info")
	// 没有默认值的键不会从环境变量读取
	v.SetDefault("logging.file", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}

	return &c, nil
}
