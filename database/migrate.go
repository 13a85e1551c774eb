package database

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"school-backend/auth"
	"school-backend/config"
	"school-backend/models"
)

// Migrate creates or updates the schema on the pool's PostgreSQL database
// and seeds the initial administrator.
func Migrate(db *sqlx.DB, cfg *config.Config, log *zap.Logger) error {
	log.Info("starting database migration")

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db.DB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("opening gorm session: %w", err)
	}

	if err := AutoMigrate(gdb); err != nil {
		return err
	}
	log.Info("schema up to date", zap.Int("tables", len(models.All())))

	return SeedAdmin(gdb, cfg.SeedAdminLogin, cfg.SeedAdminPassword, log)
}

// AutoMigrate creates every model's table. It is dialect independent.
func AutoMigrate(gdb *gorm.DB) error {
	for _, m := range models.All() {
		if err := gdb.AutoMigrate(m); err != nil {
			return fmt.Errorf("migrating %T: %w", m, err)
		}
	}
	return nil
}

// SeedAdmin creates an administrator user when the user table is empty and
// a password is configured.
func SeedAdmin(gdb *gorm.DB, login, password string, log *zap.Logger) error {
	if password == "" {
		log.Debug("no seed password configured, skipping admin seed")
		return nil
	}
	if login == "" {
		return errors.New("seed: admin login is empty")
	}

	var count int64
	if err := gdb.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("seed: counting users: %w", err)
	}
	if count > 0 {
		log.Info("users already present, skipping admin seed", zap.Int64("users", count))
		return nil
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	level := models.AccessAdmin
	admin := models.User{Login: &login, Senha: &hashed, NivelAcesso: &level}
	if err := gdb.Create(&admin).Error; err != nil {
		return fmt.Errorf("seed: creating admin user: %w", err)
	}

	log.Info("created admin user", zap.String("login", login), zap.Int64("id_usuario", admin.ID))
	return nil
}
