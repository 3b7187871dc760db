package user

import "errors"

// CreateUserDTO is the request body for POST /users/create.
type CreateUserDTO struct {
	Email       string `json:"email"       binding:"required,email"`
	Password    string `json:"password"    binding:"required,min=6"`
	DisplayName string `json:"displayName" binding:"required"`
	Role        string `json:"role"        binding:"required"`
}

// UpdateUserDTO patches account credentials and identity fields; every
// provided field is mirrored to the identity provider.
type UpdateUserDTO struct {
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	DisplayName *string `json:"displayName"`
}

// UpdateProfileDTO patches local-only profile fields.
type UpdateProfileDTO struct {
	DisplayName *string `json:"displayName"`
	Email       *string `json:"email"`
}

// LogoutDTO carries the external identity whose sessions are revoked.
type LogoutDTO struct {
	UID string `json:"uid" binding:"required"`
}

var (
	errUserNotFound = errors.New("user not found")
	errEmailInUse   = errors.New("email already in use")
)
