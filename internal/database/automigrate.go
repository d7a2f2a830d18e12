package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskboard/internal/model"
)

// Models lists every table the service owns, parents before children.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Task{},
		&model.Todo{},
		&model.BoardPost{},
		&model.BoardComment{},
		&model.BoardLike{},
		&model.Diary{},
	}
}

// AutoMigrate bootstraps the schema. It is run once at startup, never per request.
func AutoMigrate(db *gorm.DB, logger *zap.Logger) error {
	migrator := db.Migrator()

	for _, m := range Models() {
		existed := migrator.HasTable(m)
		if err := db.AutoMigrate(m); err != nil {
			logger.Error("Failed to migrate table",
				zap.String("model", fmt.Sprintf("%T", m)),
				zap.Bool("table_existed", existed),
				zap.Error(err),
			)
			return fmt.Errorf("failed to migrate %T: %w", m, err)
		}
		logger.Debug("Migrated table",
			zap.String("model", fmt.Sprintf("%T", m)),
			zap.Bool("was_existing", existed),
		)
	}

	logger.Info("Schema bootstrap completed", zap.Int("tables", len(Models())))
	return nil
}
