package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/oriently/oriently-backend/internal/pkg/envutil"
	"github.com/oriently/oriently-backend/internal/pkg/logger"
)

// Service owns the gorm handle. The backend is selected by DB_DRIVER:
// "postgres" or "sqlite" (the two stores the submission sink supports).
type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewService(logg *logger.Logger) (*Service, error) {
	serviceLog := logg.With("service", "DBService")

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	cfg := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLog,
	}

	driver := envutil.Str("DB_DRIVER", "sqlite")
	var (
		handle *gorm.DB
		err    error
	)
	switch driver {
	case "postgres":
		dsn := postgresDSN(logg)
		handle, err = gorm.Open(postgres.Open(dsn), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
		}
	case "sqlite":
		path := envutil.Str("SQLITE_PATH", "quiz.db")
		handle, err = gorm.Open(sqlite.Open(path), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database %q: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", driver)
	}

	serviceLog.Info("Database connected", "driver", driver)
	return &Service{db: handle, log: serviceLog}, nil
}

func postgresDSN(logg *logger.Logger) string {
	host := envutil.Str("POSTGRES_HOST", "localhost")
	port := envutil.Str("POSTGRES_PORT", "5432")
	user := envutil.Str("POSTGRES_USER", "postgres")
	password := os.Getenv("POSTGRES_PASSWORD")
	name := envutil.Str("POSTGRES_NAME", "oriently")
	logg.Debug("Building postgres DSN", "host", host, "port", port, "db", name)
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		user, password, host, port, name,
	)
}

func (s *Service) DB() *gorm.DB { return s.db }

// AutoMigrateAll migrates the schema and seeds the city table.
func (s *Service) AutoMigrateAll() error {
	if err := AutoMigrateAll(s.db); err != nil {
		return err
	}
	n, err := SeedCities(s.db)
	if err != nil {
		return err
	}
	if n > 0 {
		s.log.Info("Seeded city table", "cities", n)
	}
	return nil
}
