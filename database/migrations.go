package database

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

func Migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "20250301_create_portfolio_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Project{}, &models.Skill{}, &models.Experience{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("projects", "skills", "experiences")
			},
		},
		{
			ID: "20250315_create_messages_table",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Message{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("messages")
			},
		},
	}
}

// Migrate applies every pending migration
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, Migrations())
	return m.Migrate()
}
