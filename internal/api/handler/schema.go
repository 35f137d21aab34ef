package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the standard acknowledgement envelope.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Request / Response types ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	Username string `json:"username"`
}

type signupRequest struct {
	Username      string `json:"username"      validate:"required"`
	Password      string `json:"password"      validate:"required"`
	Email         string `json:"email"         validate:"omitempty,email"`
	Mobile        string `json:"mobile"`
	AcceptanceKey string `json:"acceptanceKey"`
}

type banRequest struct {
	UserID   string `json:"userId" validate:"required"`
	IsBanned bool   `json:"isBanned"`
}

type postUpdateRequest struct {
	Content string `json:"content"`
}

// memberResponse is the admin view of a non-admin account.
// Response-only type owned by the transport layer, so the JSON contract is
// not coupled to internal domain changes.
type memberResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsBanned bool   `json:"is_banned"`
}
