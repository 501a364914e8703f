package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/smartbiz/store"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// DefaultPassword opens the settings of a new shop.
const DefaultPassword = "admin"

// ErrWrongPassword is returned when the admin password does not match.
var ErrWrongPassword = errors.New("wrong admin password")

// isHash reports whether stored looks like a bcrypt hash.
func isHash(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$")
}

// CheckPassword returns nil if password is the admin password. Before any
// password is set, that is DefaultPassword. A password stored in clear text
// is accepted and replaced by its hash.
func CheckPassword(ctx context.Context, st store.Store, password string) error {
	stored, err := getString(ctx, st, store.KeyAdminPassword)
	if err != nil {
		return err
	}
	if stored == "" {
		stored = DefaultPassword
	}
	if isHash(stored) {
		err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrWrongPassword
		}
		return err
	}
	if stored != password {
		return ErrWrongPassword
	}
	if err := putPassword(ctx, st, password); err != nil {
		// the check succeeded, the rehash will be tried again next time
		log.Warn().Err(err).Msg("cannot hash the stored admin password")
	}
	return nil
}

// SetPassword replaces the admin password once the current one is checked.
func SetPassword(ctx context.Context, st store.Store, current, next string) error {
	if strings.TrimSpace(next) == "" {
		return errors.New("the new password cannot be empty")
	}
	if err := CheckPassword(ctx, st, current); err != nil {
		return err
	}
	return putPassword(ctx, st, next)
}

func putPassword(ctx context.Context, st store.Store, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("cannot hash password: %w", err)
	}
	return putString(ctx, st, store.KeyAdminPassword, string(hash))
}
