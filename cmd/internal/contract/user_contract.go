package contract

type RegisterRequest struct {
	Email    string  `json:"email" validate:"required,email,nospaces"`
	Password string  `json:"password" validate:"required,min=6,maxbytes=72" sanitize:"-"`
	Name     string  `json:"name" validate:"required,max=80"`
	College  *string `json:"college" validate:"omitempty,max=120"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required" sanitize:"-"`
}

type UserResponse struct {
	ID        int64   `json:"id"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	College   *string `json:"college"`
	CreatedAt string  `json:"created_at,omitempty"`
}

type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

type ProfileResponse struct {
	User  *UserResponse   `json:"user"`
	Notes []*NoteResponse `json:"notes"`
}
