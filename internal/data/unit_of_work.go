// Package data wires the entity repositories into request-scoped units of work.
package data

import (
	"context"

	"github.com/jmoiron/sqlx"

	"eduresource-api/internal/models"
	"eduresource-api/pkg/database"
)

// UnitOfWork groups one repository per entity over a single session.
// Writes staged on any repository are applied together by Commit.
// A UnitOfWork belongs to one request and must not be shared.
type UnitOfWork struct {
	session *database.Session

	Authors    *database.Repository[models.Author]
	Categories *database.Repository[models.Category]
	Materials  *database.Repository[models.Material]
	Reviews    *database.Repository[models.Review]
	Users      *database.Repository[models.User]
	UserRoles  *database.Repository[models.UserRole]
}

func NewUnitOfWork(db *sqlx.DB, dialect database.Dialect) *UnitOfWork {
	session := database.NewSession(db, dialect)
	return &UnitOfWork{
		session:    session,
		Authors:    database.NewRepository[models.Author](session),
		Categories: database.NewRepository[models.Category](session),
		Materials:  database.NewRepository[models.Material](session),
		Reviews:    database.NewRepository[models.Review](session),
		Users:      database.NewRepository[models.User](session),
		UserRoles:  database.NewRepository[models.UserRole](session),
	}
}

// Commit persists every staged change atomically. It returns false when
// nothing was affected and an error when the database rejected the changes.
func (u *UnitOfWork) Commit(ctx context.Context) (bool, error) {
	return u.session.Commit(ctx)
}

// Store hands out units of work over a shared connection pool.
type Store struct {
	db      *sqlx.DB
	dialect database.Dialect
}

func NewStore(db *sqlx.DB, dialect database.Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

func (s *Store) NewUnitOfWork() *UnitOfWork {
	return NewUnitOfWork(s.db, s.dialect)
}

func (s *Store) DB() *sqlx.DB              { return s.db }
func (s *Store) Dialect() database.Dialect { return s.dialect }
