package postgres

import (
	"time"

	"github.com/dom/zodiac-catalog/internal/domain"
	"github.com/dom/zodiac-catalog/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

// Now is the clock gorm stamps createdAt/updatedAt with. timestamptz keeps
// microseconds, so a record returned by Create or Update matches what a later
// read scans back.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Config is the gorm configuration every connection to the catalog uses.
func Config(logLevel logger.LogLevel) *gorm.Config {
	return &gorm.Config{
		Logger:  logger.Default.LogMode(logLevel),
		NowFunc: Now,
	}
}

func NewConnection(databaseURL string, logLevel logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), Config(logLevel))
	if err != nil {
		return nil, err
	}

	if err := db.Use(tracing.NewPlugin(tracing.WithDBName("postgres"), tracing.WithoutMetrics())); err != nil {
		return nil, err
	}

	// Auto-migrate tables
	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Character{})
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		Character: NewCharacterRepository(db),
	}
}
