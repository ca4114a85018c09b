package data_test

import (
	"context"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"eduresource-api/internal/data"
	"eduresource-api/internal/data/datatest"
	"eduresource-api/internal/domains/user"
	"eduresource-api/internal/domains/user/service"
	"eduresource-api/internal/models"
	"eduresource-api/pkg/database"
	"eduresource-api/pkg/jwt"
)

var testAdmin = data.AdminAccount{
	Email:    "admin@example.com",
	UserName: "admin",
	Password: "Admin123!",
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := datatest.NewStore(t)

	require.NoError(t, data.Migrate(context.Background(), store.DB(), store.Dialect()))
}

func TestSeedPopulatesEmptyDatabaseOnce(t *testing.T) {
	ctx := context.Background()
	store := datatest.NewStore(t)
	seeder := data.NewSeeder(store, testAdmin, bcrypt.MinCost)

	seeded, err := seeder.Seed(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)

	uow := store.NewUnitOfWork()

	authors, err := uow.Authors.Get(ctx, nil, "Materials")
	require.NoError(t, err)
	require.Len(t, authors, 3)
	assert.Equal(t, "Dominik Starzyk", authors[0].Name)
	assert.Len(t, authors[0].Materials, 4)
	assert.Len(t, authors[1].Materials, 0)
	assert.Len(t, authors[2].Materials, 1)

	categories, err := uow.Categories.Get(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, categories, 4)

	materials, err := uow.Materials.Get(ctx, nil, "Author,Category,Reviews")
	require.NoError(t, err)
	require.Len(t, materials, 5)
	assert.Equal(t, "CodeWars", materials[0].Title)
	assert.Equal(t, "Codecool Global", materials[0].Author.Name)
	assert.Equal(t, "Interactive", materials[0].Category.Name)
	assert.Equal(t, 2012, materials[0].Published.Year())
	assert.Len(t, materials[4].Reviews, 2)
	assert.Len(t, materials[3].Reviews, 1)

	users, err := uow.Users.Get(ctx, sq.Eq{"email": testAdmin.Email}, "Roles")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.ElementsMatch(t, []string{models.RoleAdmin, models.RoleUser}, users[0].RoleNames())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[0].PasswordHash), []byte(testAdmin.Password)))

	seeded, err = seeder.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	authors, err = uow.Authors.Get(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, authors, 3)
}

func TestSeedRequiresAdmin(t *testing.T) {
	store := datatest.NewStore(t)

	_, err := data.NewSeeder(store, data.AdminAccount{}, bcrypt.MinCost).Seed(context.Background())
	assert.ErrorIs(t, err, data.ErrInitialAdminMissing)
}

func TestSeedNormalizesAdminEmail(t *testing.T) {
	ctx := context.Background()
	store := datatest.NewStore(t)
	admin := data.AdminAccount{Email: "  Admin@EduResource.test ", UserName: "admin", Password: "Adm1nPassw0rd"}

	seeded, err := data.NewSeeder(store, admin, bcrypt.MinCost).Seed(ctx)
	require.NoError(t, err)
	require.True(t, seeded)

	users, err := store.NewUnitOfWork().Users.Get(ctx, nil)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "admin@eduresource.test", users[0].Email)

	svc := service.NewAuthService(store, jwt.NewManager("test-secret", time.Hour), bcrypt.MinCost)

	login, err := svc.Login(ctx, user.LoginRequest{Email: "Admin@EduResource.test", Password: admin.Password})
	require.NoError(t, err)
	assert.NotEmpty(t, login.BearerToken)

	_, err = svc.Register(ctx, user.RegisterRequest{UserName: "copycat", Email: "admin@eduresource.test", Password: "whatever"})
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
}

func TestDeletingReferencedAuthorIsRejected(t *testing.T) {
	ctx := context.Background()
	store := datatest.NewStore(t)
	_, err := data.NewSeeder(store, testAdmin, bcrypt.MinCost).Seed(ctx)
	require.NoError(t, err)

	uow := store.NewUnitOfWork()
	authors, err := uow.Authors.Get(ctx, sq.Eq{"name": "Codecool Global"})
	require.NoError(t, err)
	require.Len(t, authors, 1)

	require.NoError(t, uow.Authors.Delete(ctx, authors[0].ID))
	ok, err := uow.Commit(ctx)
	require.Error(t, err)
	assert.False(t, ok)
	assert.True(t, database.IsForeignKeyViolation(err))

	authors, err = uow.Authors.Get(ctx, sq.Eq{"id": authors[0].ID})
	require.NoError(t, err)
	assert.Len(t, authors, 1)
}

func TestCommitSpansRepositories(t *testing.T) {
	ctx := context.Background()
	store := datatest.NewStore(t)
	uow := store.NewUnitOfWork()

	author := &models.Author{Name: "A", Description: "d"}
	category := &models.Category{Name: "C", Definition: "d"}
	uow.Authors.Insert(author)
	uow.Categories.Insert(category)
	// references an author that does not exist, so the whole commit fails
	uow.Materials.Insert(&models.Material{Title: "t", Description: "d", Location: "l", AuthorID: 999, CategoryID: 1})

	_, err := uow.Commit(ctx)
	require.Error(t, err)

	authors, err := uow.Authors.Get(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, authors)
}
