package auth

import (
	"context"
	"fmt"
)

// PasswordStore is the storage RehashPasswords works on.
type PasswordStore interface {
	ListPasswords(ctx context.Context) (map[int]string, error)
	UpdatePassword(ctx context.Context, userID int, hash string) error
}

// RehashPasswords replaces every stored password that is not a bcrypt hash
// with its hash and returns how many rows changed. Running it twice is a no-op.
func RehashPasswords(ctx context.Context, store PasswordStore) (int, error) {
	passwords, err := store.ListPasswords(ctx)
	if err != nil {
		return 0, err
	}

	updated := 0
	for userID, stored := range passwords {
		if IsHashed(stored) {
			continue
		}
		hash, err := HashPassword(stored)
		if err != nil {
			return updated, err
		}
		if err := store.UpdatePassword(ctx, userID, hash); err != nil {
			return updated, fmt.Errorf("error updating password for user %d: %w", userID, err)
		}
		updated++
	}
	return updated, nil
}
