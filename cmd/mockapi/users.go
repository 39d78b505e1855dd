package main

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Backend messages, kept identical to the hosted service.
const (
	msgRegistered          = "User registered successfully"
	msgEmailAndPhoneExists = "User with this email and phone already exists"
	msgEmailExists         = "User with this email already exists"
	msgPhoneExists         = "User with this phone number already exists"
	msgLoginSuccessful     = "Login successful"
	msgInvalidCredentials  = "Invalid credentials"
)

var errInvalidCredentials = errors.New(msgInvalidCredentials)

type user struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	ProfileImage string    `json:"profile_image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	passwordHash []byte
}

// userTable is the in-memory account store.
type userTable struct {
	mu      sync.RWMutex
	byID    map[string]*user
	byEmail map[string]*user
	byPhone map[string]*user
	cost    int
}

func newUserTable(cost int) *userTable {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &userTable{
		byID:    map[string]*user{},
		byEmail: map[string]*user{},
		byPhone: map[string]*user{},
		cost:    cost,
	}
}

// Create adds a user. On a duplicate it returns the backend's duplicate
// message and ok=false.
func (t *userTable) Create(fullName, email, phone, password, image string) (user, string, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	t.mu.Lock()
	defer t.mu.Unlock()

	_, emailTaken := t.byEmail[email]
	_, phoneTaken := t.byPhone[phone]
	switch {
	case emailTaken && phoneTaken:
		return user{}, msgEmailAndPhoneExists, false, nil
	case emailTaken:
		return user{}, msgEmailExists, false, nil
	case phoneTaken:
		return user{}, msgPhoneExists, false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), t.cost)
	if err != nil {
		return user{}, "", false, err
	}
	u := &user{
		ID:           uuid.NewString(),
		FullName:     fullName,
		Email:        email,
		Phone:        phone,
		ProfileImage: image,
		CreatedAt:    time.Now().UTC(),
		passwordHash: hash,
	}
	t.byID[u.ID] = u
	t.byEmail[email] = u
	t.byPhone[phone] = u
	return *u, msgRegistered, true, nil
}

// Authenticate accepts either the email or the phone number as identifier.
func (t *userTable) Authenticate(identifier, password string) (user, error) {
	t.mu.RLock()
	u, ok := t.byEmail[strings.ToLower(strings.TrimSpace(identifier))]
	if !ok {
		u, ok = t.byPhone[strings.TrimSpace(identifier)]
	}
	t.mu.RUnlock()

	if !ok {
		return user{}, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)); err != nil {
		return user{}, errInvalidCredentials
	}
	return *u, nil
}

// Page returns users ordered by creation time. page is 1-based.
func (t *userTable) Page(page, limit int) ([]user, int) {
	t.mu.RLock()
	all := make([]user, 0, len(t.byID))
	for _, u := range t.byID {
		all = append(all, *u)
	}
	t.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	start := (page - 1) * limit
	if start >= len(all) {
		return []user{}, len(all)
	}
	end := min(start+limit, len(all))
	return all[start:end], len(all)
}
