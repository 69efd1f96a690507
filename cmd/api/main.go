package main

import (
	"context"
	"database/sql"
	"errors"
	"expvar"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/leebrouse/movieBase/internal/data"
	"github.com/leebrouse/movieBase/internal/jsonlog"
	"github.com/leebrouse/movieBase/internal/token"
	_ "github.com/lib/pq"
)

const version = "1.0.0"

// envPrefix namespaces every environment variable read by loadConfig,
// eg MOVIEAPI_DB_DSN or MOVIEAPI_JWT_SECRET.
const envPrefix = "MOVIEAPI_"

type config struct {
	Port int    `koanf:"port"`
	Env  string `koanf:"env"`
	DB   struct {
		DSN          string `koanf:"dsn"`
		MaxOpenConns int    `koanf:"maxopenconns"`
		MaxIdleConns int    `koanf:"maxidleconns"`
		MaxIdleTime  string `koanf:"maxidletime"`
	} `koanf:"db"`
	JWT struct {
		Secret string `koanf:"secret"`
	} `koanf:"jwt"`
	Limiter struct {
		RPS     float64 `koanf:"rps"`
		Burst   int     `koanf:"burst"`
		Enabled bool    `koanf:"enabled"`
	} `koanf:"limiter"`
}

type application struct {
	config config
	logger *jsonlog.Logger
	models data.Models
	tokens *token.Service
}

func main() {
	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	cfg, err := loadConfig()
	if err != nil {
		logger.PrintFatal(err, nil)
	}

	db, err := openDB(cfg)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	defer db.Close()

	logger.PrintInfo("database connection pool established", nil)

	tokens, err := token.New(cfg.JWT.Secret)
	if err != nil {
		logger.PrintFatal(err, nil)
	}

	// publish process metrics on /debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))
	expvar.Publish("database", expvar.Func(func() any {
		return db.Stats()
	}))
	expvar.Publish("timestamp", expvar.Func(func() any {
		return time.Now().Unix()
	}))

	app := &application{
		config: cfg,
		logger: logger,
		models: data.NewModels(db, logger),
		tokens: tokens,
	}

	if err := app.serve(); err != nil {
		logger.PrintFatal(err, nil)
	}
}

func defaultConfig() config {
	var cfg config

	cfg.Port = 4000
	cfg.Env = "development"
	cfg.DB.MaxOpenConns = 25
	cfg.DB.MaxIdleConns = 25
	cfg.DB.MaxIdleTime = "15m"
	cfg.Limiter.RPS = 2
	cfg.Limiter.Burst = 4
	cfg.Limiter.Enabled = true

	return cfg
}

// loadConfig layers MOVIEAPI_* environment variables over the built-in
// defaults. The signing secret and database DSN have no defaults and must be
// supplied.
func loadConfig() (config, error) {
	cfg := defaultConfig()

	k := koanf.New(".")

	if err := k.Load(structs.Provider(cfg, "koanf"), nil); err != nil {
		return cfg, err
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return cfg, err
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, err
	}

	if cfg.DB.DSN == "" {
		return cfg, errors.New("database dsn must be configured (MOVIEAPI_DB_DSN)")
	}
	if cfg.JWT.Secret == "" {
		return cfg, errors.New("signing secret must be configured (MOVIEAPI_JWT_SECRET)")
	}

	return cfg, nil
}

func openDB(cfg config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	db.SetMaxIdleConns(cfg.DB.MaxIdleConns)

	duration, err := time.ParseDuration(cfg.DB.MaxIdleTime)
	if err != nil {
		return nil, err
	}
	db.SetConnMaxIdleTime(duration)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
