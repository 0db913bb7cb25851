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
)

func userErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return httperr.ErrNotFound("user_not_found", "User not found.")
	}
	return err
}

type GetProfile struct {
	repo domain.Repository
}

func NewGetProfile(repo domain.Repository) *GetProfile {
	return &GetProfile{repo: repo}
}

func (uc *GetProfile) Execute(ctx context.Context, userID uint) (*models.User, error) {
	u, err := uc.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, userErr(err)
	}
	return u, nil
}

// UpdateProfileInput only touches contact data; email and password have
// their own flows.
type UpdateProfileInput struct {
	Name  *string
	Phone *string
	TaxID *string
}

type UpdateProfile struct {
	repo domain.Repository
}

func NewUpdateProfile(repo domain.Repository) *UpdateProfile {
	return &UpdateProfile{repo: repo}
}

func (uc *UpdateProfile) Execute(
	ctx context.Context,
	userID uint,
	in UpdateProfileInput,
) (*models.User, error) {

	u, err := uc.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, userErr(err)
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, httperr.ErrInvalidInput("invalid_name", "Name is required.")
		}
		u.Name = name
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.TaxID != nil {
		u.TaxID = strings.TrimSpace(*in.TaxID)
	}

	if err := uc.repo.UpdateUser(ctx, u); err != nil {
		return nil, userErr(err)
	}
	return u, nil
}

type ChangePassword struct {
	repo domain.Repository
}

func NewChangePassword(repo domain.Repository) *ChangePassword {
	return &ChangePassword{repo: repo}
}

func (uc *ChangePassword) Execute(
	ctx context.Context,
	userID uint,
	oldPassword string,
	newPassword string,
) error {

	u, err := uc.repo.GetUserByID(ctx, userID)
	if err != nil {
		return userErr(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(oldPassword)) != nil {
		return httperr.ErrInvalidCredentials("Current password is incorrect.")
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return err
	}
	u.PasswordHash = hash

	return userErr(uc.repo.UpdateUser(ctx, u))
}
