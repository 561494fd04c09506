package repository

import (
	"errors"

	"github.com/creditkeeper/creditkeeper/internal/models"
)

// ErrNotFound is returned when a looked-up entity does not exist
var ErrNotFound = errors.New("not found")

// ProfileStore holds synthetic financial profiles keyed by id. The scoring
// core never touches a store; it is injected into the service layer only.
type ProfileStore interface {
	Get(id string) (*models.Profile, error)
	Put(profile *models.Profile) error
	List() ([]*models.Profile, error)
}

// UserProfileStore holds learner app profiles keyed by customer id
type UserProfileStore interface {
	Get(customerID string) (*models.UserProfile, error)
	Put(profile *models.UserProfile) error
}

// UserStore holds registered users
type UserStore interface {
	CreateUser(user *models.User) error
	FindUserByEmail(email string) (*models.User, error)
}
