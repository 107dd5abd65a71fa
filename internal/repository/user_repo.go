package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"careteam/internal/db"
)

type UserRepository interface {
	Create(name, email, phone, password string) (*db.User, error)
	GetByEmail(email string) (*db.User, error)
	CountExisting(ids []int64) (int, error)
	RevokeToken(jti string) error
	IsTokenRevoked(jti string) (bool, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(database *sql.DB) UserRepository {
	return &userRepository{db: database}
}

func (r *userRepository) Create(name, email, phone, password string) (*db.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &db.User{Name: name, Email: email, Phone: phone}
	err = r.db.QueryRow(
		`INSERT INTO users (name, email, phone, password_hash) VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		name, email, phone, hashedPassword,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("error inserting user: %w", err)
	}
	return user, nil
}

func (r *userRepository) GetByEmail(email string) (*db.User, error) {
	var user db.User
	err := r.db.QueryRow(
		`SELECT id, name, email, phone, password_hash FROM users WHERE email = $1`, email).
		Scan(&user.ID, &user.Name, &user.Email, &user.Phone, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) CountExisting(ids []int64) (int, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(*) FROM users WHERE id = ANY($1)`, pq.Array(ids)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return count, nil
}

func (r *userRepository) RevokeToken(jti string) error {
	_, err := r.db.Exec(
		`INSERT INTO revoked_tokens (jti) VALUES ($1) ON CONFLICT (jti) DO NOTHING`, jti)
	if err != nil {
		return fmt.Errorf("error revoking token: %w", err)
	}
	return nil
}

func (r *userRepository) IsTokenRevoked(jti string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = $1)`, jti).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking token revocation: %w", err)
	}
	return exists, nil
}
