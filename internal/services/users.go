package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/huddle-dev/huddle/internal/models"
	"github.com/huddle-dev/huddle/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const invalidCredentials = "Invalid credentials"

// dummyHash is compared against when the email is unknown so that both
// login failures cost one bcrypt comparison.
var dummyHash = sync.OnceValue(func() []byte {
	hash, _ := bcrypt.GenerateFromPassword([]byte("huddle-dummy-password"), bcrypt.DefaultCost)
	return hash
})

// Users is the credential store.
type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// UserPatch carries optional profile changes. Nil fields are left untouched.
type UserPatch struct {
	Name            *string
	Email           *string
	CurrentPassword *string
	NewPassword     *string
}

func (s *Users) CreateUser(ctx context.Context, email, name, password string) (models.User, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)

	if email == "" || name == "" || password == "" {
		return models.User{}, types.Errorf(types.ErrInvalidInput, "Please provide all required fields")
	}

	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error

	if err == nil {
		return models.User{}, types.Errorf(types.ErrConflict, "User already exists")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, fmt.Errorf("check existing user: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(passwordHash),
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// Lost a race with a concurrent signup for the same email.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, types.Errorf(types.ErrConflict, "User already exists")
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Authenticate never reveals whether the email or the password was wrong.
func (s *Users) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	var user models.User

	err := s.db.WithContext(ctx).Where("email = ?", strings.TrimSpace(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			return models.User{}, types.Errorf(types.ErrUnauthenticated, invalidCredentials)
		}
		return models.User{}, fmt.Errorf("fetch user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, types.Errorf(types.ErrUnauthenticated, invalidCredentials)
	}

	return user, nil
}

func (s *Users) GetUser(ctx context.Context, id string) (models.User, error) {
	var user models.User

	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return models.User{}, notFoundOr(err, "User not found")
	}

	return user, nil
}

func (s *Users) UpdateUser(ctx context.Context, id string, patch UserPatch) (models.User, error) {
	var user models.User

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return notFoundOr(err, "User not found")
		}

		updates := make(map[string]interface{})

		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return types.Errorf(types.ErrInvalidInput, "Name cannot be empty")
			}
			updates["name"] = name
		}

		if patch.Email != nil {
			email := strings.TrimSpace(*patch.Email)
			if email == "" {
				return types.Errorf(types.ErrInvalidInput, "Email cannot be empty")
			}

			if email != user.Email {
				var existing models.User
				err := tx.Where("email = ? AND id <> ?", email, user.ID).First(&existing).Error
				if err == nil {
					return types.Errorf(types.ErrConflict, "Email already exists")
				}
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("check existing email: %w", err)
				}
			}

			updates["email"] = email
		}

		if patch.NewPassword != nil {
			if *patch.NewPassword == "" {
				return types.Errorf(types.ErrInvalidInput, "New password cannot be empty")
			}
			if patch.CurrentPassword == nil || *patch.CurrentPassword == "" {
				return types.Errorf(types.ErrInvalidInput, "Current password is required to change password")
			}

			if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(*patch.CurrentPassword)); err != nil {
				return types.Errorf(types.ErrUnauthenticated, "Current password is incorrect")
			}

			passwordHash, err := bcrypt.GenerateFromPassword([]byte(*patch.NewPassword), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			updates["password_hash"] = string(passwordHash)
		}

		if len(updates) == 0 {
			return types.Errorf(types.ErrInvalidInput, "No valid fields to update")
		}

		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return types.Errorf(types.ErrConflict, "Email already exists")
			}
			return fmt.Errorf("update user: %w", err)
		}

		return tx.First(&user, "id = ?", id).Error
	})

	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

// DeleteUser removes the account together with the events it created and every
// attendance row touching the user or those events. It returns the ids of the
// removed events.
func (s *Users) DeleteUser(ctx context.Context, id, password string) ([]string, error) {
	var eventIDs []string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return notFoundOr(err, "User not found")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			return types.Errorf(types.ErrUnauthenticated, "Incorrect password")
		}

		if err := tx.Model(&models.Event{}).Where("creator_id = ?", id).Pluck("id", &eventIDs).Error; err != nil {
			return fmt.Errorf("list authored events: %w", err)
		}

		if len(eventIDs) > 0 {
			if err := tx.Where("event_id IN ?", eventIDs).Delete(&models.EventAttendee{}).Error; err != nil {
				return fmt.Errorf("delete attendance of authored events: %w", err)
			}
			if err := tx.Where("id IN ?", eventIDs).Delete(&models.Event{}).Error; err != nil {
				return fmt.Errorf("delete authored events: %w", err)
			}
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.EventAttendee{}).Error; err != nil {
			return fmt.Errorf("delete attendance: %w", err)
		}

		return tx.Where("id = ?", id).Delete(&models.User{}).Error
	})

	if err != nil {
		return nil, err
	}

	return eventIDs, nil
}
