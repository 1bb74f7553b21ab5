package request_models

type RegisterRequest struct {
	Email       string         `json:"email" binding:"required,email"`
	Password    string         `json:"password" binding:"required,min=8"`
	FullName    string         `json:"full_name" binding:"required"`
	Phone       string         `json:"phone"`
	Preferences map[string]any `json:"preferences"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
