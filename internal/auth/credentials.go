package auth

import (
	"context"

	"backoffice/internal/common/errors"
	"backoffice/internal/common/logger"
	"backoffice/internal/models"
	"backoffice/internal/store"

	"golang.org/x/crypto/bcrypt"
)

// UserFinder is the slice of the store the authenticator needs.
type UserFinder interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Authenticator verifies username/password pairs against bcrypt hashes in
// the users table.
type Authenticator struct {
	users  UserFinder
	logger logger.Logger
}

func NewAuthenticator(users UserFinder, log logger.Logger) *Authenticator {
	return &Authenticator{
		users:  users,
		logger: log.WithFields(map[string]interface{}{"component": "auth"}),
	}
}

// Authenticate returns the user when the credentials match. A wrong password
// and an unknown username both return the same authentication error so the
// response does not leak which usernames exist.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, errors.NewAuthenticationError("Ongeldige inloggegevens")
	}

	user, err := a.users.GetUserByUsername(ctx, username)
	if err == store.ErrNotFound {
		// Burn comparable time so unknown usernames are not distinguishable
		// by response latency.
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$000000000000000000000uGZLcTQp3tbcPjJmO7CjQzXe4c4C1vO"), []byte(password))
		return nil, errors.NewAuthenticationError("Ongeldige inloggegevens")
	}
	if err != nil {
		a.logger.Error("failed to load user", map[string]interface{}{
			"username": username,
			"error":    err.Error(),
		})
		return nil, errors.NewInternalError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.NewAuthenticationError("Ongeldige inloggegevens")
	}
	return user, nil
}

// HashPassword produces a bcrypt hash for seeding and user creation.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
