package db

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/humanizer-backend/internal/platform/logger"
	"github.com/yungbote/humanizer-backend/internal/utils"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewPostgresService opens the primary store. DB_DRIVER=sqlite opens a local
// file instead, which is handy for demos and single-node installs.
func NewPostgresService(logg *logger.Logger) (*PostgresService, error) {
	serviceLog := logg.With("service", "PostgresService")

	driver := strings.ToLower(utils.GetEnv("DB_DRIVER", "postgres", logg))
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		path := utils.GetEnv("SQLITE_PATH", "humanizer.db", logg)
		dialector = sqlite.Open(path + "?_foreign_keys=on")
	case "postgres":
		dsn := utils.GetEnv("POSTGRES_DSN", "", logg)
		if dsn == "" {
			dsn = fmt.Sprintf(
				"postgres://%s:%s@%s:%s/%s?sslmode=%s",
				utils.GetEnv("POSTGRES_USER", "postgres", logg),
				utils.GetEnv("POSTGRES_PASSWORD", "", logg),
				utils.GetEnv("POSTGRES_HOST", "localhost", logg),
				utils.GetEnv("POSTGRES_PORT", "5432", logg),
				utils.GetEnv("POSTGRES_NAME", "humanizer", logg),
				utils.GetEnv("POSTGRES_SSLMODE", "disable", logg),
			)
		}
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	db, err := Open(dialector)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}

	if driver == "postgres" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("postgres pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(utils.GetEnvAsInt("POSTGRES_MAX_OPEN_CONNS", 20, logg))
		sqlDB.SetMaxIdleConns(utils.GetEnvAsInt("POSTGRES_MAX_IDLE_CONNS", 5, logg))
		sqlDB.SetConnMaxLifetime(utils.GetEnvAsDuration("POSTGRES_CONN_MAX_LIFETIME", 30*time.Minute, logg))
	}

	serviceLog.Info("Database connected", "driver", driver)
	return &PostgresService{db: db, log: serviceLog}, nil
}

// Open applies the shared gorm settings. Timestamps are always UTC so that
// date comparisons agree across Postgres and SQLite.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	return gorm.Open(dialector, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLog,
		NowFunc:                                  func() time.Time { return time.Now().UTC() },
	})
}

func (s *PostgresService) DB() *gorm.DB { return s.db }

func (s *PostgresService) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
