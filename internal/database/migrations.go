package database

import (
	"fmt"

	"github.com/yukikurage/template-settings-api/internal/logger"
	"github.com/yukikurage/template-settings-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AddIndexes adds query indexes that are not expressed in struct tags.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   interface{}
		name    string
		columns string
	}{
		// "my templates" filters by tenant set and creator together
		{&models.TemplateSetting{}, "idx_template_settings_tenant_creator", "tenant_id, created_by_id"},
		{&models.TemplateSetting{}, "idx_template_settings_template_name", "template_name"},
		{&models.Tenant{}, "idx_tenants_owner_created", "owner_id, created_at"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
			continue
		}

		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(idx.model); err != nil {
			return fmt.Errorf("failed to parse model for index %s: %w", idx.name, err)
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, stmt.Schema.Table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logger.GetLogger().Info("Created index",
			zap.String("index", idx.name),
			zap.String("table", stmt.Schema.Table),
		)
	}

	return nil
}

// MigrateDatabase runs all database migrations
func MigrateDatabase(db *gorm.DB) error {
	log := logger.GetLogger()
	log.Info("Running database migrations")

	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}

	log.Info("Database migrations completed")
	return nil
}
