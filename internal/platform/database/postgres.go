package database

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/cicd-demo/board-service/internal/config"
)

// PostgresConfig is the connection description used to build a DSN.
type PostgresConfig struct {
	Host             string
	Port             int
	User             string
	Password         string
	DBName           string
	SSL              bool
	ConnectTimeout   time.Duration
	StatementTimeout time.Duration
	RetryAttempts    int
	RetryDelay       time.Duration
	Verbose          bool
}

// FromServiceConfig copies the database section of the service config.
func FromServiceConfig(cfg config.DatabaseConfig, verbose bool) PostgresConfig {
	return PostgresConfig{
		Host:             cfg.Host,
		Port:             cfg.Port,
		User:             cfg.User,
		Password:         cfg.Password,
		DBName:           cfg.DBName,
		SSL:              cfg.SSL,
		ConnectTimeout:   cfg.ConnectTimeout,
		StatementTimeout: cfg.StatementTimeout,
		RetryAttempts:    cfg.RetryAttempts,
		RetryDelay:       cfg.RetryDelay,
		Verbose:          verbose,
	}
}

func (c PostgresConfig) sslMode() string {
	if c.SSL {
		// TLS without certificate verification.
		return "require"
	}
	return "disable"
}

// DSN returns a keyword/value connection string. statement_timeout is passed
// through as a runtime parameter.
func (c PostgresConfig) DSN() string {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dsnValue(c.Host), c.Port, dsnValue(c.User), dsnValue(c.Password), dsnValue(c.DBName), c.sslMode())
	if c.ConnectTimeout > 0 {
		dsn += fmt.Sprintf(" connect_timeout=%d", int(c.ConnectTimeout.Seconds()))
	}
	if c.StatementTimeout > 0 {
		dsn += fmt.Sprintf(" statement_timeout=%d", c.StatementTimeout.Milliseconds())
	}
	return dsn
}

// dsnValue single-quotes v when it is empty or holds a space, quote or
// backslash, escaping quotes and backslashes with a backslash.
func dsnValue(v string) string {
	if v != "" && !strings.ContainsAny(v, " \t\n'\\") {
		return v
	}
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}

// DatabaseURL returns the URL form used by the migration runner.
func (c PostgresConfig) DatabaseURL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   c.Host + ":" + strconv.Itoa(c.Port),
		Path:   "/" + c.DBName,
	}
	q := url.Values{}
	q.Set("sslmode", c.sslMode())
	if c.ConnectTimeout > 0 {
		q.Set("connect_timeout", strconv.Itoa(int(c.ConnectTimeout.Seconds())))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// retryPolicy waits RetryDelay between tries and allows RetryAttempts tries
// in total. Fewer than one attempt is treated as one.
func (c PostgresConfig) retryPolicy() backoff.BackOff {
	retries := max(c.RetryAttempts-1, 0)
	return backoff.WithMaxRetries(backoff.NewConstantBackOff(c.RetryDelay), uint64(retries))
}

// Connect opens a GORM connection, retrying with a constant delay until the
// database answers a ping or the attempts run out.
func Connect(ctx context.Context, cfg PostgresConfig, log *zap.Logger) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.Verbose {
		level = gormlogger.Info
	}
	gormCfg := &gorm.Config{Logger: NewGormLogger(log, level)}

	var db *gorm.DB
	attempt := 0
	operation := func() error {
		attempt++
		var err error
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
		if err != nil {
			log.Warn("database connection attempt failed",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return backoff.Permanent(err)
		}
		pingCtx, cancel := ctx, context.CancelFunc(func() {})
		if cfg.ConnectTimeout > 0 {
			pingCtx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		}
		defer cancel()
		if err := sqlDB.PingContext(pingCtx); err != nil {
			_ = sqlDB.Close()
			log.Warn("database ping failed",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return err
		}
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(cfg.retryPolicy(), ctx)); err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempt, err)
	}

	log.Info("connected to database",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.DBName),
		zap.Int("attempts", attempt),
	)
	return db, nil
}
