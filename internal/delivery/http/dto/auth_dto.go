package dto

// RegisterRequest is the registration request payload
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the login request payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserOutput is user data in API responses
type UserOutput struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// LoginResponse is the login response payload
type LoginResponse struct {
	Token string     `json:"token"`
	User  UserOutput `json:"user"`
}
