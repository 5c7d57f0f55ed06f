package middleware

import (
	"fmt"

	"medleave_backend/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	DBConn *gorm.DB
	DBErr  error
)

// Dialector picks the gorm driver for a DB_DRIVER value.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "postgres", "":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", driver)
}

// ConnectDB opens the database and assigns it to DBConn.
func ConnectDB(driver, dsn string) error {
	dialector, err := Dialector(driver, dsn)
	if err != nil {
		DBErr = err
		return err
	}
	DBConn, DBErr = gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if DBErr != nil {
		return fmt.Errorf("connect %s: %w", driver, DBErr)
	}
	return nil
}

// MigrateDB creates or updates the tables.
func MigrateDB() error {
	if DBConn == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	err := DBConn.AutoMigrate(&model.User{}, &model.Hospital{}, &model.Doctor{},
		&model.Nationality{}, &model.Patient{}, &model.Setting{})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	Log().Info().Msg("database migration completed")
	return nil
}
