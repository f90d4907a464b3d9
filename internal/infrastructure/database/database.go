package database

import (
	"context"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"taborra-server/whatsapp-bridge/internal/infrastructure/logger"
)

var SchemaRegistry []interface{}

func RegisterSchemaForAutoMigrate(models ...interface{}) {
	SchemaRegistry = append(SchemaRegistry, models...)
}

// Config holds database configuration for the split reader/writer pools.
type Config struct {
	WriteDSN    string
	ReadDSN     string
	MaxIdle     int
	MaxOpen     int
	MaxLifetime time.Duration
	LogLevel    gormlogger.LogLevel
}

// Connect opens the write-credential source connection and registers the
// read-credential replica. Statement routing follows dbresolver semantics:
// queries go to the replica, writes and transactions to the source.
func Connect(cfg Config) (*gorm.DB, error) {
	log := logger.GetLogger()

	db, err := gorm.Open(postgres.Open(cfg.WriteDSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(cfg.LogLevel),
	})
	if err != nil {
		log.Error().Err(err).Msg("unable to connect to database")
		return nil, err
	}

	resolver := dbresolver.Register(dbresolver.Config{
		Replicas:          []gorm.Dialector{postgres.Open(cfg.ReadDSN)},
		TraceResolverMode: true,
	}).
		SetMaxIdleConns(cfg.MaxIdle).
		SetMaxOpenConns(cfg.MaxOpen).
		SetConnMaxLifetime(cfg.MaxLifetime)

	if err := db.Use(resolver); err != nil {
		log.Error().Err(err).Msg("unable to register read replica")
		return nil, err
	}

	// Pool limits for the source connection; replica limits are set on the
	// resolver above.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	sqlDB.SetMaxOpenConns(cfg.MaxOpen)
	sqlDB.SetConnMaxLifetime(cfg.MaxLifetime)

	log.Info().Msg("Successfully connected to database")
	return db, nil
}

// AutoMigrate creates the registered tables on the write source.
func AutoMigrate(ctx context.Context, db *gorm.DB) error {
	log := logger.GetLogger()
	migrator := db.WithContext(ctx).Clauses(dbresolver.Write)
	for _, model := range SchemaRegistry {
		if err := migrator.AutoMigrate(model); err != nil {
			log.Error().Err(err).Msgf("failed to auto migrate schema: %T", model)
			return err
		}
	}
	return nil
}

// Close releases both pools. Safe to call multiple times.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
