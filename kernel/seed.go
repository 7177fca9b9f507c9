package kernel

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"git.sr.ht/~jkovac/booking-api/models"
)

// Seed creates the initial admin account when the table is empty.
// Credentials come from SEED_ADMIN / SEED_ADMIN_PASSWORD.
func (art *AppRuntime) Seed() {
	if art.SeedAdmin == "" || art.SeedAdminPassword == "" {
		return
	}
	if art.DatabaseClient.Find(&models.AdminUser{}).RowsAffected != 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(art.SeedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("seed: hashing admin password failed")
		return
	}

	id, err := UuidV7()
	if err != nil {
		log.Error().Err(err).Msg("seed: generating admin id failed")
		return
	}

	admin := &models.AdminUser{
		ID:           id,
		Admin:        art.SeedAdmin,
		PasswordHash: string(hash),
	}
	if err := art.DatabaseClient.Create(admin).Error; err != nil {
		log.Error().Err(err).Msg("seed: creating admin failed")
		return
	}
	log.Info().Str("admin", art.SeedAdmin).Msg("created initial admin")
}
