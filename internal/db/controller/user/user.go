// Package user lists workspace members and toggles their status.
package user

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/brandalign/brandalign/internal/db/models"
	"github.com/brandalign/brandalign/internal/governance"
)

var (
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// List returns all users ordered by name, filtered by name or email when search is set.
func List(db *gorm.DB, search string) ([]models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	tx := db.Order("name")

	if search = strings.TrimSpace(search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var users []models.User
	if err := tx.Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

// ToggleActive flips the active flag and returns the updated user.
func ToggleActive(db *gorm.DB, id uint64) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var u models.User
	if err := db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	u.Active = !u.Active
	if err := db.Model(&u).Update("active", u.Active).Error; err != nil {
		return nil, err
	}

	return &u, nil
}

// Seed adds the sample workspace members when there are none.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	general := string(governance.RoleGeneralUser)
	admin := string(governance.RoleAdmin)

	users := []models.User{
		{Name: "Jane Doe", Email: "jane.doe@acme.com", Role: general, Region: "Global", Active: true},
		{Name: "John Smith", Email: "john.smith@acme.com", Role: admin, Region: "North America", Active: true},
		{Name: "Sarah Connor", Email: "sarah.c@acme.com", Role: general, Region: "Europe", Active: false},
		{Name: "Mike Ross", Email: "mike.ross@acme.com", Role: general, Region: "APAC", Active: true},
		{Name: "Jessica Pearson", Email: "j.pearson@acme.com", Role: admin, Region: "Global", Active: true},
	}

	return db.Create(&users).Error
}
