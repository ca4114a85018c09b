//go:build integration

package data_test

import (
	"context"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"eduresource-api/internal/data"
	"eduresource-api/internal/infrastructure/database"
	"eduresource-api/internal/models"
	orm "eduresource-api/pkg/database"
)

// startPostgres runs a throwaway PostgreSQL container and returns its URL.
func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("eduresource"),
		postgres.WithUsername("eduresource"),
		postgres.WithPassword("eduresource"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return connStr
}

func TestPostgresRoundTrip(t *testing.T) {
	url := startPostgres(t)

	for _, driver := range []string{"pgx", "postgres"} {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()

			db, err := database.Open(ctx, &database.DBConfig{
				Driver:          driver,
				URL:             url,
				MaxConns:        4,
				MinConns:        1,
				MaxConnLifetime: time.Minute,
				MaxConnIdleTime: time.Minute,
				MaxRetries:      3,
				RetryDelay:      100 * time.Millisecond,
				ConnectTimeout:  5 * time.Second,
			})
			require.NoError(t, err)
			t.Cleanup(func() { _ = db.Close() })

			require.NoError(t, data.Migrate(ctx, db.SQL, db.Dialect))
			store := data.NewStore(db.SQL, db.Dialect)

			// both subtests share one database; the second run finds it seeded
			_, err = data.NewSeeder(store, data.AdminAccount{
				Email:    "admin@example.com",
				UserName: "admin",
				Password: "secret",
			}, 4).Seed(ctx)
			require.NoError(t, err)

			uow := store.NewUnitOfWork()
			authors, err := uow.Authors.Get(ctx, sq.Eq{"id": 1}, "Materials.Reviews")
			require.NoError(t, err)
			require.Len(t, authors, 1)
			assert.Equal(t, "Dominik Starzyk", authors[0].Name)
			assert.Len(t, authors[0].Materials, 4)

			a := &models.Author{Name: "Grace " + driver, Description: "Compiler pioneer."}
			uow.Authors.Insert(a)
			uow.Materials.Insert(&models.Material{
				Title:       "COBOL " + driver,
				Description: "History.",
				Location:    "https://example.com/cobol",
				Published:   time.Date(1959, time.May, 28, 0, 0, 0, 0, time.UTC),
				Author:      a,
				CategoryID:  3,
			})
			ok, err := uow.Commit(ctx)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.NotZero(t, a.ID)

			require.NoError(t, uow.Authors.Delete(ctx, a.ID))
			_, err = uow.Commit(ctx)
			require.Error(t, err)
			assert.True(t, orm.IsForeignKeyViolation(err))

			users, err := uow.Users.Get(ctx, nil)
			require.NoError(t, err)
			require.NotEmpty(t, users)
			dup := *users[0]
			dup.Roles = nil
			uow.Users.Insert(&dup)
			_, err = uow.Commit(ctx)
			require.Error(t, err)
			assert.True(t, orm.IsUniqueViolation(err))

			if driver == "pgx" {
				assert.NotNil(t, db.PoolStats())
			} else {
				assert.Nil(t, db.PoolStats())
			}
		})
	}
}
