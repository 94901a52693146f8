package seeders

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/766ms/Glam-rent-v1/app/models"
	"github.com/766ms/Glam-rent-v1/pkg/auth"
)

// CreateAdmin bootstraps an administrator account. An existing account
// with the same email is promoted instead of duplicated. Used by the
// admin:create CLI command rather than the seed registry so the
// password never lives in source.
func CreateAdmin(db *gorm.DB, name, email, password string) error {
	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		if existing.IsAdmin {
			fmt.Printf("  admin %s already exists\n", email)
			return nil
		}
		existing.IsAdmin = true
		if err := db.Save(&existing).Error; err != nil {
			return err
		}
		fmt.Printf("  promoted %s to admin\n", email)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{Name: name, Email: email, Password: hash, IsAdmin: true}
	if err := db.Create(&user).Error; err != nil {
		return err
	}
	fmt.Printf("  created admin %s\n", email)
	return nil
}
