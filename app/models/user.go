package models

import "gorm.io/gorm"

// User is the primary account model. Passwords are bcrypt hashes and are
// never serialised.
type User struct {
	gorm.Model
	Name     string `gorm:"size:255;not null"            json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null"            json:"-"`
	IsAdmin  bool   `gorm:"not null;default:false"       json:"is_admin"`
}
