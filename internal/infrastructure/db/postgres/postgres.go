package postgres

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/andrianarivo/haustiere/internal/core/domain"
)

// Connect opens the PostgreSQL connection through gorm and migrates the
// schema. The returned handle is shared by all repositories.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		// TranslateError maps driver unique-violation errors onto
		// gorm.ErrDuplicatedKey, which the repositories rely on.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}

	if err := db.AutoMigrate(&domain.User{}, &domain.Cat{}); err != nil {
		return nil, fmt.Errorf("postgres migrate: %w", err)
	}

	return db, nil
}
