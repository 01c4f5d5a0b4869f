package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Name    string
		Version string
	}
	Paths struct {
		RootDir string `mapstructure:"root_dir"`
	}
	Database struct {
		Path string
	}
	Batch struct {
		Size    int
		Workers int
	}
	Cutoff struct {
		Weekday string
		Hour    int
	}
	Logging struct {
		Level string
		File  string
	}
}

func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetDefault("batch.size", 50)
	viper.SetDefault("batch.workers", 4)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	if c.Paths.RootDir == "" {
		return fmt.Errorf("paths.root_dir is required")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Batch.Size <= 0 {
		return fmt.Errorf("batch.size must be positive, got %d", c.Batch.Size)
	}
	if c.Batch.Workers <= 0 {
		return fmt.Errorf("batch.workers must be positive, got %d", c.Batch.Workers)
	}
	if c.Cutoff.Hour < 0 || c.Cutoff.Hour > 23 {
		return fmt.Errorf("cutoff.hour must be between 0 and 23, got %d", c.Cutoff.Hour)
	}
	if _, err := c.CutoffWeekday(); err != nil {
		return err
	}
	return nil
}

// CutoffWeekday 解析配置的截止星期名
func (c *Config) CutoffWeekday() (time.Weekday, error) {
	for day := time.Sunday; day <= time.Saturday; day++ {
		if strings.EqualFold(day.String(), c.Cutoff.Weekday) {
			return day, nil
		}
	}
	return 0, fmt.Errorf("unknown cutoff.weekday %q", c.Cutoff.Weekday)
}
