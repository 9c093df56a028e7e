package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"restaurant_ops_backend/internal/models"
)

// AuthRepository defines the interface for user account database operations.
type AuthRepository interface {
	CreateUser(user *models.User) (int64, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(userID int64) (*models.User, error)
}

type authRepository struct {
	db *sql.DB
}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository(db *sql.DB) AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) CreateUser(user *models.User) (int64, error) {
	query := `INSERT INTO users (username, password_hash, email, full_name, role, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query,
		user.Username, user.PasswordHash, user.Email, user.FullName, user.Role, user.IsActive, time.Now(),
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateKey
		}
		return 0, fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	return user.ID, nil
}

func (r *authRepository) GetUserByUsername(username string) (*models.User, error) {
	return r.getUser(`SELECT id, username, password_hash, email, full_name, role, is_active, created_at, updated_at
	  FROM users WHERE username = $1`, username)
}

func (r *authRepository) GetUserByID(userID int64) (*models.User, error) {
	return r.getUser(`SELECT id, username, password_hash, email, full_name, role, is_active, created_at, updated_at
	  FROM users WHERE id = $1`, userID)
}

func (r *authRepository) getUser(query string, arg interface{}) (*models.User, error) {
	var user models.User
	var email, fullName sql.NullString
	err := r.db.QueryRow(query, arg).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &email, &fullName,
		&user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting user: %v", ErrDatabaseError, err)
	}
	if email.Valid {
		user.Email = &email.String
	}
	if fullName.Valid {
		user.FullName = &fullName.String
	}
	return &user, nil
}
