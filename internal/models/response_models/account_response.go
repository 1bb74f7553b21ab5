package response_models

import "gorm.io/datatypes"

type AccountLoginResponse struct {
	Token   string          `json:"token"`
	Account AccountResponse `json:"account"`
}

type AccountResponse struct {
	ID          string         `json:"id"`
	FullName    string         `json:"full_name"`
	Email       string         `json:"email"`
	Phone       string         `json:"phone,omitempty"`
	Preferences datatypes.JSON `json:"preferences"`
	CreatedAt   string         `json:"created_at"`
}
