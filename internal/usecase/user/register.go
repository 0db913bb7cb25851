package user

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/user"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/store"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

const minPasswordLen = 6

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	TaxID    string
}

type Register struct {
	repo domain.Repository

	// CheckDomain, when set, rejects emails whose domain it refuses.
	CheckDomain func(email string) bool
}

func NewRegister(repo domain.Repository) *Register {
	return &Register{repo: repo}
}

func (uc *Register) Execute(
	ctx context.Context,
	in RegisterInput,
) (*models.User, error) {

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.ErrInvalidInput("invalid_name", "Name is required.")
	}

	email := NormalizeEmail(in.Email)
	if !validators.IsEmailFormatValid(email) {
		return nil, httperr.ErrInvalidInput("invalid_email", "Email address is not valid.")
	}
	if uc.CheckDomain != nil && !uc.CheckDomain(email) {
		return nil, httperr.ErrInvalidInput("invalid_email_domain", "The email domain does not look valid.")
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(in.Phone),
		TaxID:        strings.TrimSpace(in.TaxID),
	}

	if err := uc.repo.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, httperr.ErrDuplicateEmail("This email is already registered.")
		}
		return nil, err
	}
	return u, nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashPassword(password string) (string, error) {
	if len(password) < minPasswordLen {
		return "", httperr.ErrInvalidInput("weak_password", "Password must have at least 6 characters.")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
