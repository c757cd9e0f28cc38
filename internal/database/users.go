package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mgufindo/ffb-swt/pkg/types"
)

// Authentication errors. Both map to the same coarse message at the facade
// so callers cannot probe which accounts exist.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
)

// UserStore implements account lookup and creation. Passwords are stored as
// bcrypt hashes.
type UserStore struct {
	db *sql.DB
}

// NewUserStore returns a UserStore bound to db.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// GetByEmail returns the user and whether it exists.
func (s *UserStore) GetByEmail(email string) (types.User, bool, error) {
	row := s.db.QueryRow("SELECT id, email, name, role, password FROM users WHERE email = ?", email)

	var u types.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.Password)
	if err == sql.ErrNoRows {
		return types.User{}, false, nil
	}
	if err != nil {
		return types.User{}, false, fmt.Errorf("getting user %s: %w", email, err)
	}
	return u, true, nil
}

// Authenticate verifies the password and returns the user with the password
// hash stripped.
func (s *UserStore) Authenticate(email, password string) (types.User, error) {
	u, found, err := s.GetByEmail(email)
	if err != nil {
		return types.User{}, err
	}
	if !found {
		return types.User{}, ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return types.User{}, ErrInvalidPassword
	}
	u.Password = ""
	return u, nil
}

// Create inserts a user, hashing the supplied plaintext password, and
// returns the generated ID.
func (s *UserStore) Create(u types.User) (string, error) {
	if !types.ValidRole(u.Role) {
		return "", types.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	id := uuid.New().String()
	_, err = s.db.Exec(
		"INSERT INTO users (id, email, name, role, password) VALUES (?, ?, ?, ?, ?)",
		id, u.Email, u.Name, u.Role, string(hash),
	)
	if err != nil {
		return "", fmt.Errorf("creating user: %w", err)
	}
	return id, nil
}

// Clients returns every client-role account, without password hashes.
func (s *UserStore) Clients() ([]types.User, error) {
	rows, err := s.db.Query("SELECT id, email, name, role FROM users WHERE role = ?", types.RoleClient)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	users := []types.User{}
	for rows.Next() {
		var u types.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

// Count returns the total number of accounts.
func (s *UserStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return count, nil
}
