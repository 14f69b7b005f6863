package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/squeegee-samurai/squeegee-api/config"
	"github.com/squeegee-samurai/squeegee-api/internal/domain/entity"
	repo "github.com/squeegee-samurai/squeegee-api/internal/domain/repository"
	pginfra "github.com/squeegee-samurai/squeegee-api/internal/infrastructure/postgres"
	"github.com/squeegee-samurai/squeegee-api/pkg/helpers"
)

// seed ensures one staff account exists. Public signup can only create
// customers, so this is the way to get an EMPLOYEE or ADMIN.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)

	if cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		log.Fatal("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are required")
	}
	role, err := entity.ParseRole(cfg.SeedAdminRole)
	if err != nil {
		log.Fatalf("SEED_ADMIN_ROLE: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 0, 0)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	users := pginfra.NewUserRepository(pool)
	hasher := helpers.NewPasswordHasher(cfg.BcryptCost)
	if err := ensureStaff(ctx, users, hasher, cfg, role); err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
}

func ensureStaff(ctx context.Context, users repo.UserRepository, hasher *helpers.PasswordHasher, cfg *config.Config, role entity.Role) error {
	email := entity.NormalizeEmail(cfg.SeedAdminEmail)
	exists, err := users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		log.Printf("seed user %s already exists; nothing to do", email)
		return nil
	}

	hash, err := hasher.Hash(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}
	u := &entity.User{
		FirstName:    cfg.SeedAdminFirstName,
		LastName:     cfg.SeedAdminLastName,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			log.Printf("seed user %s created concurrently; nothing to do", email)
			return nil
		}
		return err
	}
	stored, err := users.GetByID(ctx, u.ID)
	if err != nil {
		return fmt.Errorf("read back seeded user: %w", err)
	}
	log.Printf("seeded user: id=%s email=%s role=%s", stored.ID, stored.Email, stored.Role)
	return nil
}
