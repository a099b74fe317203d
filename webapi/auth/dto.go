package auth

// RegisterInput is the request body for creating a user. Superuser accounts
// are provisioned from the CLI, not over the API.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=owner employee"`
}

// LoginInput is the request body for authenticating a user.
type LoginInput struct {
	Identity string `json:"identity" validate:"required"`
	Password string `json:"password" validate:"required"`
}
