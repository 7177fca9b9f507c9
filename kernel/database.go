package kernel

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"git.sr.ht/~jkovac/booking-api/models"
)

func (art *AppRuntime) PrepareDatabase() error {
	dbLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	// TranslateError turns driver duplicate-key failures into
	// gorm.ErrDuplicatedKey, which the handlers map to 400.
	db, err := gorm.Open(mysql.Open(art.DatabaseDSN), &gorm.Config{
		Logger:         dbLogger,
		TranslateError: true,
	})
	if err != nil {
		return err
	}

	if err = db.Use(otelgorm.NewPlugin(
		otelgorm.WithAttributes(),
		otelgorm.WithTracerProvider(otel.GetTracerProvider()),
	)); err != nil {
		return err
	}

	return art.UseDatabase(db)
}

// UseDatabase installs an already-open gorm handle and migrates the
// schema. Tests call it directly with an in-memory sqlite handle.
func (art *AppRuntime) UseDatabase(db *gorm.DB) error {
	for _, m := range []any{
		&models.AdminUser{},
		&models.Slot{},
		&models.Data{},
		&models.Blog{},
		&models.Category{},
	} {
		if err := db.AutoMigrate(m); err != nil {
			return err
		}
	}

	art.DatabaseClient = db
	return nil
}

// First loads the first row matching the condition. The bool reports
// whether a row was found; a real database failure comes back as err.
func (rt *RequestRuntime) First(obj interface{}, where string, args ...interface{}) (bool, error) {
	if err := rt.DB.WithContext(rt.SpanContext).Where(where, args...).First(obj).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, rt.MakeError(err)
	}
	return true, nil
}
