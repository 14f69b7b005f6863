package postgres

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/squeegee-samurai/squeegee-api/internal/domain/entity"
	"github.com/squeegee-samurai/squeegee-api/internal/domain/repository"
)

// newTestPool starts Postgres 16 in a container (or uses TEST_DATABASE_URL),
// applies the migrations and truncates users.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test; skipped with -short")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		testcontainers.SkipIfProviderIsNotHealthy(t)
		pgC, err := tcpostgres.Run(ctx,
			"postgres:16",
			tcpostgres.WithDatabase("squeegee"),
			tcpostgres.WithUsername("squeegee"),
			tcpostgres.WithPassword("squeegee"),
			tcpostgres.BasicWaitStrategies(),
		)
		require.NoError(t, err)
		t.Cleanup(func() { _ = pgC.Terminate(context.Background()) })

		dsn, err = pgC.ConnectionString(ctx, "sslmode=disable")
		require.NoError(t, err)
	}

	require.NoError(t, RunMigrations(dsn, "../../../db/migrations", nil))

	pool, err := NewPool(ctx, dsn, 10, 0, 0)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE users`)
	require.NoError(t, err)
	return pool
}

func newUser(email string) *entity.User {
	return &entity.User{
		FirstName:    "Ana",
		LastName:     "Lee",
		Email:        email,
		Phone:        "555",
		PasswordHash: "$2a$04$notarealhashnotarealhashnotarealhashnotarealhashnota",
		Role:         entity.RoleCustomer,
	}
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	pool := newTestPool(t)
	repo := NewUserRepository(pool)
	ctx := context.Background()

	u := newUser("ana@x.com")
	require.NoError(t, repo.Create(ctx, u))
	require.NotEmpty(t, u.ID)
	require.False(t, u.CreatedAt.IsZero())

	got, err := repo.GetByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, entity.RoleCustomer, got.Role)
	require.Equal(t, "555", got.Phone)
	require.Equal(t, u.PasswordHash, got.PasswordHash)

	exists, err := repo.ExistsByEmail(ctx, "ANA@x.com")
	require.NoError(t, err)
	require.True(t, exists)

	_, err = repo.GetByEmail(ctx, "nobody@x.com")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_GetByID(t *testing.T) {
	pool := newTestPool(t)
	repo := NewUserRepository(pool)
	ctx := context.Background()

	u := newUser("ana@x.com")
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "ana@x.com", got.Email)
	require.Equal(t, "Ana Lee", got.FullName())

	_, err = repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.GetByID(ctx, "not-a-uuid")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_DuplicateEmailIsCaseInsensitive(t *testing.T) {
	pool := newTestPool(t)
	repo := NewUserRepository(pool)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("ana@x.com")))

	dup := newUser("Ana@X.com")
	dup.FirstName = "Impostor"
	require.ErrorIs(t, repo.Create(ctx, dup), repository.ErrEmailTaken)

	got, err := repo.GetByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	require.Equal(t, "Ana", got.FirstName)
}

func TestUserRepository_ConcurrentCreateKeepsOneRow(t *testing.T) {
	pool := newTestPool(t)
	repo := NewUserRepository(pool)
	ctx := context.Background()

	const n = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		conflicts int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Create(ctx, newUser("race@x.com"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, repository.ErrEmailTaken):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, created)
	require.Equal(t, n-1, conflicts)

	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM users WHERE lower(email) = 'race@x.com'`).Scan(&count))
	require.Equal(t, 1, count)
}
