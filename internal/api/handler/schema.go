package handler

// messageResponse is the standard envelope for errors and confirmations.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// userResponse exposes the public profile fields only. The password hash
// never crosses the wire.
type userResponse struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
}

type authResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

// --- Tasks ---

type createTaskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
}

// updateTaskRequest fields are optional: an omitted field leaves the stored
// value unchanged.
type updateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
