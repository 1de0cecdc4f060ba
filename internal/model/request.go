package model

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

type CreateTicketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Project     string `json:"project"`
	Developer   string `json:"developer"`
	Type        string `json:"type"`
	Priority    string `json:"priority"`
}

// UpdateTicketRequest carries a partial update; nil fields are left unchanged.
type UpdateTicketRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Developer   *string `json:"developer"`
	Type        *string `json:"type"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
}
