package model

import (
	"database/sql"
	gDto "stayledger/shared/dto"
	"stayledger/shared/model"
	"strings"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID         = "id"
	FieldEmail      = "email"
	FieldPassword   = "password"
	FieldLevel      = "level"
	FieldFullName   = "full_name"
	FieldPhone      = "phone"
	FieldIsVerified = "is_verified"
	FieldLastLogin  = "last_login"
	FieldActive     = "active"
)

// User is an account. Level holds the role used for authorization.
type User struct {
	ID         string       `db:"id"`
	Email      string       `db:"email"`
	Password   string       `db:"password"`
	Level      string       `db:"level"`
	FullName   *string      `db:"full_name"`
	Phone      *string      `db:"phone"`
	IsVerified bool         `db:"is_verified"`
	LastLogin  sql.NullTime `db:"last_login"`
	Active     bool         `db:"active"`
	model.Metadata
}

// NormalizeEmail is the form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func EmailFilter(email string) gDto.FilterGroup {
	filter := gDto.FilterGroup{}
	filter.Append(gDto.Eq(TableName, FieldEmail, NormalizeEmail(email)))

	return filter
}
