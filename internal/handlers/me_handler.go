package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	ucUser "github.com/BruksfildServices01/barber-booking/internal/usecase/user"
)

type MeHandler struct {
	profile        *ucUser.GetProfile
	updateProfile  *ucUser.UpdateProfile
	changePassword *ucUser.ChangePassword
}

func NewMeHandler(
	profile *ucUser.GetProfile,
	updateProfile *ucUser.UpdateProfile,
	changePassword *ucUser.ChangePassword,
) *MeHandler {
	return &MeHandler{
		profile:        profile,
		updateProfile:  updateProfile,
		changePassword: changePassword,
	}
}

type UpdateMeRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	TaxID *string `json:"tax_id"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	u, err := h.profile.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, err, "profile_failed")
		return
	}
	httpresp.OK(c, dto.NewUserView(u))
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	var req UpdateMeRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.updateProfile.Execute(c.Request.Context(), middleware.UserID(c), ucUser.UpdateProfileInput{
		Name:  req.Name,
		Phone: req.Phone,
		TaxID: req.TaxID,
	})
	if err != nil {
		httperr.FromError(c, err, "profile_update_failed")
		return
	}
	httpresp.Message(c, "Profile updated.", dto.NewUserView(u))
}

func (h *MeHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.changePassword.Execute(
		c.Request.Context(),
		middleware.UserID(c),
		req.CurrentPassword,
		req.NewPassword,
	); err != nil {
		httperr.FromError(c, err, "password_change_failed")
		return
	}
	httpresp.Message(c, "Password changed.", nil)
}
