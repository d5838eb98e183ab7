package cmd

import (
	"errors"
	"io/fs"
	"log"
	"time"

	"github.com/spigell/cv-analyzer/internal/analytics"
	"github.com/spigell/cv-analyzer/internal/api"
	"github.com/spigell/cv-analyzer/internal/history"
	"github.com/spigell/cv-analyzer/internal/render"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "cv-analyzer"

	historyBackendFile  = "file"
	historyBackendRedis = "redis"

	analyticsBackendLog  = "log"
	analyticsBackendAMQP = "amqp"
)

type Config struct {
	APIURL    string           `mapstructure:"api-url"`
	UserAgent string           `mapstructure:"user-agent"`
	Timeout   time.Duration    `mapstructure:"timeout"`
	History   *HistoryConfig   `mapstructure:"history"`
	Analytics *AnalyticsConfig `mapstructure:"analytics"`
}

type HistoryConfig struct {
	Backend string       `mapstructure:"backend"`
	Path    string       `mapstructure:"path"`
	Key     string       `mapstructure:"key"`
	Limit   int          `mapstructure:"limit"`
	Redis   *RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address      string `mapstructure:"address"`
	Password     string `mapstructure:"password"`
	PasswordFile string `mapstructure:"password-file"`
	DB           int    `mapstructure:"db"`
}

type AnalyticsConfig struct {
	Enabled bool        `mapstructure:"enabled"`
	Backend string      `mapstructure:"backend"`
	AMQP    *AMQPConfig `mapstructure:"amqp"`
}

type AMQPConfig struct {
	URL        string `mapstructure:"url"`
	URLFile    string `mapstructure:"url-file"`
	Exchange   string `mapstructure:"exchange"`
	RoutingKey string `mapstructure:"routing-key"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "cv-analyzer matches a CV against job postings using the CV analysis service",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	envs := map[string][]string{
		"api-url":                     {"CV_ANALYZER_API_URL", "VITE_API_URL"},
		"history.redis.password-file": {"CV_ANALYZER_REDIS_PASSWORD_FILE"},
		"analytics.amqp.url-file":     {"CV_ANALYZER_AMQP_URL_FILE"},
	}
	for key, names := range envs {
		if err := viper.BindEnv(append([]string{key}, names...)...); err != nil {
			log.Fatalf("binding %v environment variables: %v", names, err)
		}
	}

	viper.SetDefault("api-url", api.DefaultAPIURL)
	viper.SetDefault("user-agent", app+"/"+version)
	viper.SetDefault("history.backend", historyBackendFile)
	viper.SetDefault("history.key", history.DefaultKey)
	viper.SetDefault("history.limit", history.DefaultLimit)
	viper.SetDefault("analytics.enabled", true)
	viper.SetDefault("analytics.backend", analyticsBackendLog)
	viper.SetDefault("analytics.amqp.exchange", analytics.DefaultExchange)
	viper.SetDefault("analytics.amqp.routing-key", analytics.DefaultRoutingKey)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is cv-analyzer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringP("output", "o", render.FormatText, "result format: text, json or yaml")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable coloured output")
	rootCmd.PersistentFlags().String("api-url", "", "analysis service base url")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("no-color", rootCmd.PersistentFlags().Lookup("no-color"))
	viper.BindPFlag("api-url", rootCmd.PersistentFlags().Lookup("api-url"))
}

func initConfig() {
	// .env is a convenience for local runs, a missing file is fine.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional unless it is given explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config.History == nil {
		config.History = &HistoryConfig{}
	}
	if config.Analytics == nil {
		config.Analytics = &AnalyticsConfig{}
	}

	return config, nil
}
