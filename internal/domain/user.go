package domain

import (
	"strings"

	"github.com/diagnosis/parkingpro/internal/utils"
)

type User struct {
	ID           string `json:"id"`
	Fullname     string `json:"fullname"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

type RegisterRequest struct {
	Fullname        string `json:"fullname"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Normalize trims identity fields. Passwords are left exactly as typed.
func (r *RegisterRequest) Normalize() {
	r.Fullname = strings.TrimSpace(r.Fullname)
	r.Username = strings.TrimSpace(r.Username)
	r.Email = utils.NormalizeEmail(r.Email)
}

func (r *RegisterRequest) Validate() error {
	if r.Fullname == "" || r.Username == "" || r.Email == "" || r.Password == "" || r.ConfirmPassword == "" {
		return NewValidationError(MsgFieldsRequired)
	}
	if r.Password != r.ConfirmPassword {
		return NewValidationError(MsgPasswordMismatch)
	}
	return nil
}

func (r *LoginRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
}

func (r *LoginRequest) Validate() error {
	if r.Username == "" || r.Password == "" {
		return NewValidationError(MsgFieldsRequired)
	}
	return nil
}
