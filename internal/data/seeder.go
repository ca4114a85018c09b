package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"eduresource-api/internal/models"
)

// ErrInitialAdminMissing is returned when the database is empty and no
// bootstrap admin account is configured.
var ErrInitialAdminMissing = errors.New("initial admin account is not configured")

// AdminAccount is the bootstrap administrator created on an empty database.
type AdminAccount struct {
	Email    string
	UserName string
	Password string
}

func (a AdminAccount) IsSet() bool {
	return a.Email != "" && a.UserName != "" && a.Password != ""
}

type Seeder struct {
	store      *Store
	admin      AdminAccount
	bcryptCost int
}

func NewSeeder(store *Store, admin AdminAccount, bcryptCost int) *Seeder {
	return &Seeder{store: store, admin: admin, bcryptCost: bcryptCost}
}

// Seed populates an empty database with the bootstrap admin and the
// reference data. It does nothing once any user exists and reports
// whether it wrote anything.
func (s *Seeder) Seed(ctx context.Context) (bool, error) {
	uow := s.store.NewUnitOfWork()

	users, err := uow.Users.Get(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("check users: %w", err)
	}
	if len(users) > 0 {
		log.Debug().Msg("[SEED] Users exist, skipping")
		return false, nil
	}

	if !s.admin.IsSet() {
		return false, ErrInitialAdminMissing
	}

	if err := s.seedIdentity(uow); err != nil {
		return false, err
	}
	seedEntities(uow)

	if _, err := uow.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit seed data: %w", err)
	}

	log.Info().Str("admin", s.admin.UserName).Msg("[SEED] Database seeded")
	return true, nil
}

func (s *Seeder) seedIdentity(uow *UnitOfWork) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(s.admin.Password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := &models.User{
		ID:           uuid.NewString(),
		UserName:     s.admin.UserName,
		Email:        models.NormalizeEmail(s.admin.Email),
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	uow.Users.Insert(admin)
	uow.UserRoles.Insert(&models.UserRole{UserID: admin.ID, Role: models.RoleAdmin})
	uow.UserRoles.Insert(&models.UserRole{UserID: admin.ID, Role: models.RoleUser})
	return nil
}

func seedEntities(uow *UnitOfWork) {
	authors := []*models.Author{
		{
			Name:        "Dominik Starzyk",
			Description: "Motorola academy mentor, CodeCool employee.",
		},
		{
			Name:        "Lukasz Czunko",
			Description: "Motorola academy student.",
		},
		{
			Name:        "Codecool Global",
			Description: "international company providing programming courses which come with real-life team projects in mentor-led, online classes.",
		},
	}
	for _, a := range authors {
		uow.Authors.Insert(a)
	}

	categories := []*models.Category{
		{
			Name:       "Documentation",
			Definition: "Detailed information on key language features provided by an official source.",
		},
		{
			Name:       "Video",
			Definition: "Video multimedia which transforms a passive learning experience into an active one.",
		},
		{
			Name:       "Literature",
			Definition: "Traditionally published books on programming and other educational topics.",
		},
		{
			Name:       "Interactive",
			Definition: "Interactive websites such as coding practice sites where you can learn various programming languages.",
		},
	}
	for _, c := range categories {
		uow.Categories.Insert(c)
	}

	materials := []*models.Material{
		{
			Title:       "CodeWars",
			Description: "Codewars is a coding practice site for all programmers where you can learn various programming languages. Join the community and improve your skills.",
			Location:    "https://www.codewars.com/",
			Published:   date(2012, time.November, 1),
			Author:      authors[2],
			Category:    categories[3],
		},
		{
			Title:       "Swagger in ASP.Net Core (Using Swashbuckle.AspNetCore NuGet Package)",
			Description: "YT Tutorial on how to set up Swagger.",
			Location:    "https://www.youtube.com/watch?v=jg_e011SjzE",
			Published:   date(2020, time.March, 23),
			Author:      authors[0],
			Category:    categories[1],
		},
		{
			Title:       "Introduction to ASP.NET Core MVC in C# plus LOTS of Tips",
			Description: "Intro to writing ASP .NET Core MVC app.",
			Location:    "https://www.youtube.com/watch?v=1ck9LIBxO14",
			Published:   date(2020, time.June, 8),
			Author:      authors[0],
			Category:    categories[1],
		},
		{
			Title:       "Get started with ASP.NET Core MVC",
			Description: "Tutorial on how to write an app.",
			Location:    "https://docs.microsoft.com/en-us/aspnet/core/tutorials/first-mvc-app/start-mvc",
			Published:   date(2021, time.November, 8),
			Author:      authors[0],
			Category:    categories[0],
		},
		{
			Title:       "Model validation in ASP.NET Core MVC and Razor Pages",
			Description: "How to validate a model state.",
			Location:    "https://docs.microsoft.com/en-us/aspnet/core/mvc/models/validation",
			Published:   date(2021, time.October, 5),
			Author:      authors[0],
			Category:    categories[0],
		},
	}
	for _, m := range materials {
		uow.Materials.Insert(m)
	}

	reviews := []*models.Review{
		{Text: "I found the explanation overly technical and unclear.", Score: 3, Material: materials[4]},
		{Text: "I understand validation better now, I guess...", Score: 5, Material: materials[4]},
		{Text: "I followed along with the tutorial and I learned a lot", Score: 9, Material: materials[3]},
	}
	for _, r := range reviews {
		uow.Reviews.Insert(r)
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
