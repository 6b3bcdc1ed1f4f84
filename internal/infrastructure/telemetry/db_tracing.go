package telemetry

import (
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RegisterDBTracing installs the otelgorm plugin so every statement becomes a
// child span of the request. Query variables are never recorded because they
// carry customer phone numbers and plates.
func RegisterDBTracing(db *gorm.DB, cfg Config, dbSystem string, logger *zap.Logger) error {
	if !cfg.TracesEnabled {
		logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}
	if dbSystem == "" {
		dbSystem = "postgresql"
	}

	plugin := otelgorm.NewPlugin(
		otelgorm.WithDBName(dbSystem),
		otelgorm.WithoutQueryVariables(),
	)
	if err := db.Use(plugin); err != nil {
		return err
	}

	logger.Info("Database tracing enabled", zap.String("db_system", dbSystem))
	return nil
}
