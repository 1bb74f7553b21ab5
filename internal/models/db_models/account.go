package db_models

import "gorm.io/datatypes"

type Account struct {
	BaseModel
	FullName     string
	Email        string `gorm:"unique"`
	PasswordHash string
	Phone        string

	// Travel preferences captured at signup (themes, dietary, language).
	Preferences datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	Trips []Trip
}
