package dto

import (
	"stayledger/internal/domains/user/model"
	"stayledger/shared"
	"stayledger/shared/constant"
	gDto "stayledger/shared/dto"
	gModel "stayledger/shared/model"
	"stayledger/shared/timezone"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Email    string  `json:"email"               validate:"required,email,max=255"`
	Password string  `json:"password"            validate:"required,min=8,max=72"`
	Level    string  `json:"level"               validate:"omitempty,oneof=guest affiliate admin"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=255"`
	Phone    *string `json:"phone,omitempty"     validate:"omitempty,max=30"`
}

func (r *CreateUserRequest) ToModel(username string, hashedPassword string) model.User {
	level := r.Level
	if level == "" {
		level = constant.RoleGuest
	}

	now := timezone.Now()

	return model.User{
		ID:       uuid.NewString(),
		Email:    model.NormalizeEmail(r.Email),
		Password: hashedPassword,
		Level:    level,
		FullName: r.FullName,
		Phone:    r.Phone,
		Active:   true,
		Metadata: gModel.NewMetadata(now, username),
	}
}

type UserResponse struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Level      string  `json:"level"`
	FullName   *string `json:"full_name,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	IsVerified bool    `json:"is_verified"`
	LastLogin  string  `json:"last_login,omitempty"`
	Active     bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.Level = model.Level
	r.FullName = model.FullName
	r.Phone = model.Phone
	r.IsVerified = model.IsVerified
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)

	if model.LastLogin.Valid {
		r.LastLogin = model.LastLogin.Time.Format(constant.DateFormat)
	}
}

// UpdateUserRequest is the admin view of an account. Zero fields are left unchanged.
type UpdateUserRequest struct {
	Level      *string `db:"level"       json:"level,omitempty"       validate:"omitempty,oneof=guest affiliate admin"`
	FullName   *string `db:"full_name"   json:"full_name,omitempty"   validate:"omitempty,max=255"`
	Phone      *string `db:"phone"       json:"phone,omitempty"       validate:"omitempty,max=30"`
	IsVerified *bool   `db:"is_verified" json:"is_verified,omitempty"`
	Active     *bool   `db:"active"      json:"active,omitempty"`
}

type UpdateProfileRequest struct {
	FullName *string `db:"full_name" json:"full_name,omitempty" validate:"omitempty,max=255"`
	Phone    *string `db:"phone"     json:"phone,omitempty"     validate:"omitempty,max=30"`
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
