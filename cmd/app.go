package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spigell/cv-analyzer/internal/analytics"
	"github.com/spigell/cv-analyzer/internal/api"
	"github.com/spigell/cv-analyzer/internal/history"
	"github.com/spigell/cv-analyzer/internal/logger"
	"github.com/spigell/cv-analyzer/internal/render"
	"github.com/spigell/cv-analyzer/internal/secrets"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// session holds everything a command needs. close must run before exit.
type session struct {
	ctx     context.Context
	logger  *zap.Logger
	config  *Config
	client  *api.Client
	events  *analytics.Dispatcher
	printer *render.Printer
	output  string
	stdout  io.Writer
	stderr  io.Writer

	closers []io.Closer
}

func newSession(ctx context.Context) *session {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Debug(fmt.Sprintf("starting with config: \n %s", configDump(config)))

	output := strings.ToLower(viper.GetString("output"))
	if !render.ValidFormat(output) {
		logger.Fatal("unsupported output format", zap.String("output", output), zap.Strings("allowed", render.Formats))
	}

	client := api.New(logger, config.APIURL, config.Timeout)
	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}

	s := &session{
		ctx:     ctx,
		logger:  logger,
		config:  config,
		client:  client,
		output:  output,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		printer: render.New(os.Stdout, !viper.GetBool("no-color") && os.Getenv("NO_COLOR") == ""),
	}
	s.events = s.newDispatcher()

	return s
}

// newDispatcher never fails: an unreachable sink only disables analytics.
func (s *session) newDispatcher() *analytics.Dispatcher {
	cfg := s.config.Analytics
	if !cfg.Enabled {
		return analytics.NewDispatcher(nil, s.logger)
	}

	switch cfg.Backend {
	case analyticsBackendAMQP:
		if cfg.AMQP == nil {
			cfg.AMQP = &AMQPConfig{}
		}
		url, err := secrets.Load(secrets.Source{Name: "amqp url", Value: cfg.AMQP.URL, File: cfg.AMQP.URLFile})
		if err != nil {
			s.logger.Warn("analytics disabled", zap.Error(err),
				zap.String("hint", "set CV_ANALYZER_AMQP_URL_FILE or analytics.amqp.url in the configuration file"),
			)
			return analytics.NewDispatcher(nil, s.logger)
		}

		tracker, err := analytics.NewAMQPTracker(&analytics.AMQPConfig{
			URL:        url,
			Exchange:   cfg.AMQP.Exchange,
			RoutingKey: cfg.AMQP.RoutingKey,
		})
		if err != nil {
			s.logger.Warn("analytics disabled", zap.Error(err))
			return analytics.NewDispatcher(nil, s.logger)
		}
		s.closers = append(s.closers, tracker)

		return analytics.NewDispatcher(tracker, s.logger)
	case analyticsBackendLog, "":
		return analytics.NewDispatcher(&analytics.LogTracker{Logger: s.logger}, s.logger)
	default:
		s.logger.Warn("analytics disabled", zap.String("reason", "unknown backend"), zap.String("backend", cfg.Backend))
		return analytics.NewDispatcher(nil, s.logger)
	}
}

// historyStore opens the configured history backend.
func (s *session) historyStore() (history.Store, error) {
	cfg := s.config.History

	var kv history.KV
	switch cfg.Backend {
	case historyBackendFile, "":
		path := cfg.Path
		if path == "" {
			var err error
			if path, err = history.DefaultPath(); err != nil {
				return nil, err
			}
		}
		kv = history.NewFileKV(path)
	case historyBackendRedis:
		if cfg.Redis == nil {
			return nil, fmt.Errorf("history.redis section is required for the redis backend")
		}
		password, err := secrets.Load(secrets.Source{
			Name:     "redis password",
			Value:    cfg.Redis.Password,
			File:     cfg.Redis.PasswordFile,
			Optional: true,
		})
		if err != nil {
			return nil, err
		}

		redisKV, err := history.NewRedisKV(s.ctx, &history.RedisConfig{
			Address:  cfg.Redis.Address,
			Password: password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, redisKV)
		kv = redisKV
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.Backend)
	}

	return history.NewKVStore(kv, cfg.Key, cfg.Limit), nil
}

// structured reports whether results go out as json or yaml.
func (s *session) structured() bool {
	return s.output != render.FormatText
}

func (s *session) write(v any) {
	if err := render.Structured(s.stdout, s.output, v); err != nil {
		s.fatal("writing output", err)
	}
}

func (s *session) close() {
	s.events.Wait()
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			s.logger.Debug("closing resource", zap.Error(err))
		}
	}
	s.logger.Sync()
}

// fatal flushes pending events and exits.
func (s *session) fatal(step string, err error, fields ...zap.Field) {
	s.close()
	s.logger.Fatal(step, append(fields, zap.Error(err))...)
}

// fail prints the user-facing message for an API or validation error and exits.
func (s *session) fail(step string, err error, fallback string) {
	msg := printFailure(s.stderr, err, fallback)
	s.fatal(step, err, zap.String("message", msg))
}

func printFailure(w io.Writer, err error, fallback string) string {
	msg := api.UserMessage(err, fallback)
	fmt.Fprintln(w, msg)
	return msg
}

// configDump renders config for debug logs with secrets masked.
func configDump(config *Config) string {
	if config == nil {
		return "null"
	}

	masked := *config
	if h := config.History; h != nil && h.Redis != nil {
		hc, rc := *h, *h.Redis
		rc.Password = mask(rc.Password)
		hc.Redis = &rc
		masked.History = &hc
	}
	if a := config.Analytics; a != nil && a.AMQP != nil {
		ac, mc := *a, *a.AMQP
		mc.URL = mask(mc.URL)
		ac.AMQP = &mc
		masked.Analytics = &ac
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(masked, "", "  ")
	return string(pretty)
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	return "***"
}
