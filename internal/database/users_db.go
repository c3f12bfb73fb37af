package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/valeriaulyamaeva/resilience-tracker/models"
)

const userColumns = `id, username, password, email, phone, role, name, city, created_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Email, &u.Phone, &u.Role, &u.Name, &u.City, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a user whose password is already hashed.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, password, email, phone, role, name, city)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`
	err := s.pool.QueryRow(ctx, query,
		user.Username, user.Password, user.Email, user.Phone, user.Role, user.Name, user.City,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			switch constraint {
			case "users_username_key":
				return ErrDuplicateUsername
			case "users_email_key":
				return ErrDuplicateEmail
			}
		}
		return fmt.Errorf("error inserting user: %w", err)
	}
	return nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("error fetching user %q: %w", username, err)
	}
	return u, err
}

func (s *Store) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("error fetching user by id %d: %w", id, err)
	}
	return u, err
}

func (s *Store) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username)
}

func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email)
}

func (s *Store) exists(ctx context.Context, query string, arg any) (bool, error) {
	var found bool
	if err := s.pool.QueryRow(ctx, query, arg).Scan(&found); err != nil {
		return false, fmt.Errorf("error checking existence: %w", err)
	}
	return found, nil
}

// ListUsersWithProfile returns the ids of users that saved a financial profile.
func (s *Store) ListUsersWithProfile(ctx context.Context) ([]int, error) {
	rows, err := s.pool.Query(ctx, `SELECT user_id FROM financial_profiles ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("error listing profiled users: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, fmt.Errorf("error scanning profiled users: %w", err)
	}
	return ids, nil
}

// UpdatePassword replaces the stored password hash.
func (s *Store) UpdatePassword(ctx context.Context, userID int, hash string) error {
	tag, err := s.pool.Exec(ctx, `UPDATE users SET password = $1 WHERE id = $2`, hash, userID)
	if err != nil {
		return fmt.Errorf("error updating password for user %d: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPasswords returns every user id with its stored password, for rehashing.
func (s *Store) ListPasswords(ctx context.Context) (map[int]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, password FROM users`)
	if err != nil {
		return nil, fmt.Errorf("error fetching users: %w", err)
	}
	defer rows.Close()

	out := make(map[int]string)
	for rows.Next() {
		var id int
		var password string
		if err := rows.Scan(&id, &password); err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		out[id] = password
	}
	return out, rows.Err()
}
