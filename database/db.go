package database

import (
	"fmt"
	"log"

	"neuralife-notes/neuralife/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database wraps the local cache connection. It is opened once per
// process and shared by every sync session; the single-threaded call
// pattern of the coordinator serializes access to it.
type Database struct {
	DB *gorm.DB
}

func Setup(cfg config.Config) (*Database, error) {
	dialector, err := cacheDialector(cfg)
	if err != nil {
		return nil, err
	}

	gormConfig := &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Warn),
		PrepareStmt:            true,  // Cache prepared statements for better performance
		AllowGlobalUpdate:      false, // Prevent global updates without conditions
		SkipDefaultTransaction: true,  // Skip default transaction for better performance
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open local cache: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.CacheMaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.CacheMaxOpenConns)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("Local cache migrations completed successfully")

	return &Database{DB: db}, nil
}

// cacheDialector selects the cache backend. The embedded sqlite file is
// the default; postgres is supported for deployments that keep the cache
// on a shared host.
func cacheDialector(cfg config.Config) (gorm.Dialector, error) {
	switch cfg.CacheDriver {
	case "sqlite":
		return sqlite.Open(cfg.CachePath), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.CacheDBHost,
			cfg.CacheDBPort,
			cfg.CacheDBUser,
			cfg.CacheDBPassword,
			cfg.CacheDBName,
		)
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported cache driver %q", cfg.CacheDriver)
	}
}

func (d *Database) Close() {
	if d.DB == nil {
		log.Println("Database connection is nil, nothing to close.")
		return
	}
	sqlDB, err := d.DB.DB()
	if err != nil {
		log.Printf("Failed to get database connection: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Failed to close database connection: %v", err)
	}
}

func (d *Database) Query(query string, args ...interface{}) (*gorm.DB, error) {
	result := d.DB.Raw(query, args...)
	return result, result.Error
}

func (d *Database) Execute(query string, args ...interface{}) error {
	result := d.DB.Exec(query, args...)
	return result.Error
}
