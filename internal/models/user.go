package models

// Roles carried in the backend-issued token.
const (
	RoleUser     = "user"
	RoleKaryawan = "karyawan"
	RoleAdmin    = "admin"
)

// User is an account as served by the backend. Password is write-only: the
// profile form round-trips it, the gateway never stores or checks it.
type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Address  string `json:"address" validate:"required"`
	Password string `json:"password,omitempty" validate:"omitempty,min=6"`
	Role     string `json:"role"`
}

// LoginRequest is the credential payload forwarded to the backend issuer.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is what the issuer hands back on success. The browser keeps
// all three in storage; the gateway only ever sees them again as the bearer
// token on later requests.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	Role        string `json:"role"`
	UserID      uint   `json:"user_id"`
}

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Address  string `json:"address" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=user karyawan admin"`
}
