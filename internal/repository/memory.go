package repository

import (
	"fmt"
	"sync"
	"time"

	"github.com/creditkeeper/creditkeeper/internal/models"
)

// In-memory stores. The default backing when no database is configured; the
// mutexes exist only because the HTTP layer is concurrent, the stored values
// themselves are treated as immutable snapshots.

// MemoryProfileStore keeps profiles in a map keyed by id
type MemoryProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]*models.Profile
}

// NewMemoryProfileStore initializes an empty profile store
func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{profiles: make(map[string]*models.Profile)}
}

// Get returns the profile with the given id
func (s *MemoryProfileStore) Get(id string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[id]
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	return profile, nil
}

// Put stores the profile under its id
func (s *MemoryProfileStore) Put(profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.ID] = profile
	return nil
}

// List returns all stored profiles
func (s *MemoryProfileStore) List() ([]*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profiles := make([]*models.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// MemoryUserProfileStore keeps learner profiles in a map keyed by customer id
type MemoryUserProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]*models.UserProfile
}

// NewMemoryUserProfileStore initializes an empty user-profile store
func NewMemoryUserProfileStore() *MemoryUserProfileStore {
	return &MemoryUserProfileStore{profiles: make(map[string]*models.UserProfile)}
}

// Get returns the learner profile for the given customer id
func (s *MemoryUserProfileStore) Get(customerID string) (*models.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[customerID]
	if !ok {
		return nil, fmt.Errorf("user profile %s: %w", customerID, ErrNotFound)
	}
	return profile, nil
}

// Put stores the learner profile under its customer id
func (s *MemoryUserProfileStore) Put(profile *models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.CustomerID] = profile
	return nil
}

// MemoryUserStore keeps registered users in memory
type MemoryUserStore struct {
	mu     sync.Mutex
	users  map[string]*models.User
	nextID int64
}

// NewMemoryUserStore initializes an empty user store
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]*models.User), nextID: 1}
}

// CreateUser registers a new user, assigning its id
func (s *MemoryUserStore) CreateUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.Email]; exists {
		return fmt.Errorf("user with email %s already exists", user.Email)
	}
	user.ID = s.nextID
	s.nextID++
	user.CreatedAt = time.Now()
	s.users[user.Email] = user
	return nil
}

// FindUserByEmail retrieves a user by email
func (s *MemoryUserStore) FindUserByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	return user, nil
}
