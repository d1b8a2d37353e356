package db

import (
	"github.com/contractdesk-dev/contractdesk/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

// MigrateDatabase runs unconditionally so columns added to a model after
// first deploy are picked up on existing tables.
func MigrateDatabase() error {
	return DB.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Issue{},
		&models.Report{},
	)
}
