package user

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/user"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/store"
)

type TokenIssuer interface {
	Issue(userID uint) (string, error)
}

type Login struct {
	repo   domain.Repository
	tokens TokenIssuer
}

func NewLogin(repo domain.Repository, tokens TokenIssuer) *Login {
	return &Login{repo: repo, tokens: tokens}
}

// Execute verifies the credentials and returns the user with a fresh
// token. Unknown email and wrong password fail the same way.
func (uc *Login) Execute(
	ctx context.Context,
	email string,
	password string,
) (*models.User, string, error) {

	u, err := uc.repo.GetUserByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		return nil, "", errBadCredentials()
	}
	if err != nil {
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", errBadCredentials()
	}

	token, err := uc.tokens.Issue(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func errBadCredentials() error {
	return httperr.ErrInvalidCredentials("Invalid email or password.")
}
