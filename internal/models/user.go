package models

import (
	"strings"
	"time"

	"eduresource-api/pkg/database"
)

// Role names carried in the token "role" claim.
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

// User is an authenticated principal. The plaintext password is never stored.
type User struct {
	ID           string    `json:"id" db:"id"`
	UserName     string    `json:"userName" db:"user_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`

	Roles []*UserRole `json:"-" db:"-"`
}

// NormalizeEmail is the canonical form under which emails are stored and looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RoleNames returns the names of the loaded roles.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Role)
	}
	return names
}

// UserRole grants one role to one user.
type UserRole struct {
	ID     int64  `json:"id" db:"id"`
	UserID string `json:"userId" db:"user_id"`
	Role   string `json:"role" db:"role"`
}

type userSchema struct{}

func (userSchema) TableName() string  { return "users" }
func (userSchema) PrimaryKey() string { return "id" }

func (userSchema) SelectColumns() []string {
	return []string{"id", "user_name", "email", "password_hash", "created_at"}
}

func (userSchema) InsertRow(u *User) ([]string, []any) {
	return []string{"id", "user_name", "email", "password_hash", "created_at"},
		[]any{u.ID, u.UserName, u.Email, u.PasswordHash, u.CreatedAt}
}

func (userSchema) UpdateMap(u *User) map[string]any {
	return map[string]any{
		"user_name":     u.UserName,
		"email":         u.Email,
		"password_hash": u.PasswordHash,
	}
}

func (userSchema) KeyOf(u *User) any   { return u.ID }
func (userSchema) SetKey(*User, int64) {}
func (userSchema) AutoIncrement() bool { return false }

func (userSchema) Includes() map[string]database.Include[User] {
	return map[string]database.Include[User]{
		"Roles": database.HasMany("user_id",
			func(u *User) string { return u.ID },
			func(r *UserRole) string { return r.UserID },
			func(u *User, rs []*UserRole) { u.Roles = rs }),
	}
}

type userRoleSchema struct{}

func (userRoleSchema) TableName() string  { return "user_roles" }
func (userRoleSchema) PrimaryKey() string { return "id" }

func (userRoleSchema) SelectColumns() []string {
	return []string{"id", "user_id", "role"}
}

func (userRoleSchema) InsertRow(r *UserRole) ([]string, []any) {
	return []string{"user_id", "role"}, []any{r.UserID, r.Role}
}

func (userRoleSchema) UpdateMap(r *UserRole) map[string]any {
	return map[string]any{"user_id": r.UserID, "role": r.Role}
}

func (userRoleSchema) KeyOf(r *UserRole) any        { return r.ID }
func (userRoleSchema) SetKey(r *UserRole, id int64) { r.ID = id }
func (userRoleSchema) AutoIncrement() bool          { return true }

func (userRoleSchema) Includes() map[string]database.Include[UserRole] {
	return nil
}
