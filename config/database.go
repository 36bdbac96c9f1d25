package config

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/DhavalSuthar-24/rosterhub/pkg/logger"
)

// ConnectDB opens the configured database and sets the global DB variable.
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	dialector, err := openDialector(cfg.DB)
	if err != nil {
		return nil, err
	}

	gormConfig := &gorm.Config{TranslateError: true}
	if cfg.App.Env == "development" {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Info)
	} else {
		gormConfig.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	}

	gormDB, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	if cfg.DB.Driver == "sqlite" {
		// sqlite serializes writers; one connection avoids SQLITE_BUSY under load.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.DB.MaxConns)
	}

	DB = gormDB
	logger.Info().Str("driver", cfg.DB.Driver).Msg("Successfully connected to database")
	return gormDB, nil
}

func openDialector(cfg DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres":
		sqlDB, err := openPostgres(cfg)
		if err != nil {
			return nil, err
		}
		return postgres.New(postgres.Config{Conn: sqlDB}), nil
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(cfg.SQLitePath), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

// openPostgres connects through pgx and retries until the server answers or
// cfg.ConnectTimeout elapses. Containers often start the app before postgres.
func openPostgres(cfg DatabaseConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode)
	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	sqlDB := stdlib.OpenDB(*connConfig)
	deadline := time.Now().Add(cfg.ConnectTimeout)
	for {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err = sqlDB.PingContext(ctx)
		cancel()
		if err == nil {
			return sqlDB, nil
		}
		if time.Now().After(deadline) {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to connect DB after retries: %w", err)
		}
		logger.Warn().Err(err).Msg("Database not ready, retrying")
		time.Sleep(time.Second)
	}
}
