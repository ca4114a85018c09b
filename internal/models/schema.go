// Package models holds the persisted entities and their table mappings.
package models

import "eduresource-api/pkg/database"

func init() {
	database.RegisterSchema[Author](authorSchema{})
	database.RegisterSchema[Category](categorySchema{})
	database.RegisterSchema[Material](materialSchema{})
	database.RegisterSchema[Review](reviewSchema{})
	database.RegisterSchema[User](userSchema{})
	database.RegisterSchema[UserRole](userRoleSchema{})
}
