package handler

// --- Requests ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Username string `json:"username" validate:"required,min=3"`
	Role     string `json:"role"     validate:"omitempty,oneof=user admin"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"    validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

type resendVerificationRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}

type updateUserRequest struct {
	Email    string `json:"email"    validate:"omitempty,email"`
	Username string `json:"username" validate:"omitempty,min=3"`
	Role     string `json:"role"     validate:"omitempty,oneof=user admin"`
}

// --- Responses ---

// userResponse is the wire projection of an account. Timestamps are
// RFC3339 strings; the client parses them back into dates.
type userResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type messageResponse struct {
	Message string `json:"message"`
}
