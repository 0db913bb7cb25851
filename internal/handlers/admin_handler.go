package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/snapshot"
	"github.com/BruksfildServices01/barber-booking/internal/store"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	ucBarbershop "github.com/BruksfildServices01/barber-booking/internal/usecase/barbershop"
)

// ======================================================
// HANDLER
// ======================================================

// AdminHandler serves operator routes. It sits behind the admin token.
type AdminHandler struct {
	createShop *ucBarbershop.CreateBarbershop
	updateShop *ucBarbershop.UpdateBarbershop

	list         *ucAppointment.ListAppointments
	updateStatus *ucAppointment.UpdateStatus
	remove       *ucAppointment.DeleteAppointment

	snapshots *snapshot.Service
	uploader  *snapshot.Uploader
}

type AdminDeps struct {
	CreateBarbershop *ucBarbershop.CreateBarbershop
	UpdateBarbershop *ucBarbershop.UpdateBarbershop

	ListAppointments  *ucAppointment.ListAppointments
	UpdateStatus      *ucAppointment.UpdateStatus
	DeleteAppointment *ucAppointment.DeleteAppointment

	Snapshots *snapshot.Service
	// Uploader is nil when no bucket is configured.
	Uploader *snapshot.Uploader
}

func NewAdminHandler(deps AdminDeps) *AdminHandler {
	return &AdminHandler{
		createShop:   deps.CreateBarbershop,
		updateShop:   deps.UpdateBarbershop,
		list:         deps.ListAppointments,
		updateStatus: deps.UpdateStatus,
		remove:       deps.DeleteAppointment,
		snapshots:    deps.Snapshots,
		uploader:     deps.Uploader,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBarbershopRequest struct {
	Name         string              `json:"name" binding:"required"`
	Location     string              `json:"location"`
	Price        float64             `json:"price"`
	Emoji        string              `json:"emoji"`
	Services     []models.Service    `json:"services"`
	WorkingHours models.WorkingHours `json:"working_hours"`
}

type UpdateBarbershopRequest struct {
	Name         *string              `json:"name"`
	Location     *string              `json:"location"`
	Price        *float64             `json:"price"`
	Emoji        *string              `json:"emoji"`
	Services     []models.Service     `json:"services"`
	WorkingHours *models.WorkingHours `json:"working_hours"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// BARBERSHOPS
// ======================================================

func (h *AdminHandler) CreateBarbershop(c *gin.Context) {
	var req CreateBarbershopRequest
	if !bindJSON(c, &req) {
		return
	}

	shop, err := h.createShop.Execute(c.Request.Context(), ucBarbershop.CreateBarbershopInput{
		Name:         req.Name,
		Location:     req.Location,
		Price:        req.Price,
		Emoji:        req.Emoji,
		Services:     req.Services,
		WorkingHours: req.WorkingHours,
	})
	if err != nil {
		httperr.FromError(c, err, "barbershop_create_failed")
		return
	}
	httpresp.Created(c, "Barbershop created.", shop)
}

func (h *AdminHandler) UpdateBarbershop(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateBarbershopRequest
	if !bindJSON(c, &req) {
		return
	}

	shop, err := h.updateShop.Execute(c.Request.Context(), id, ucBarbershop.UpdateBarbershopInput{
		Name:         req.Name,
		Location:     req.Location,
		Price:        req.Price,
		Emoji:        req.Emoji,
		Services:     req.Services,
		WorkingHours: req.WorkingHours,
	})
	if err != nil {
		httperr.FromError(c, err, "barbershop_update_failed")
		return
	}
	httpresp.Message(c, "Barbershop updated.", shop)
}

// ======================================================
// APPOINTMENTS
// ======================================================

func (h *AdminHandler) ListAppointments(c *gin.Context) {
	var filter domain.ListFilter

	if raw := c.Query("barbershop_id"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_barbershop_id", "Invalid barbershop_id.")
			return
		}
		filter.BarbershopID = uint(n)
	}
	filter.Date = c.Query("date")

	list, err := h.list.Execute(c.Request.Context(), filter)
	if err != nil {
		httperr.FromError(c, err, "appointment_list_failed")
		return
	}
	httpresp.List(c, list)
}

func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.updateStatus.Execute(c.Request.Context(), id, req.Status)
	if err != nil {
		httperr.FromError(c, err, "status_update_failed")
		return
	}
	httpresp.Message(c, "Status updated.", ap)
}

func (h *AdminHandler) DeleteAppointment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err, "appointment_delete_failed")
		return
	}
	httpresp.Message(c, "Appointment deleted.", nil)
}

// ======================================================
// SNAPSHOTS
// ======================================================

func (h *AdminHandler) Export(c *gin.Context) {
	db, err := h.snapshots.Export(c.Request.Context())
	if err != nil {
		httperr.FromError(c, err, "export_failed")
		return
	}
	httpresp.OK(c, db)
}

func (h *AdminHandler) Import(c *gin.Context) {
	var db store.Database
	if !bindJSON(c, &db) {
		return
	}

	if err := h.snapshots.Import(c.Request.Context(), db); err != nil {
		httperr.FromError(c, err, "import_failed")
		return
	}
	httpresp.Message(c, "Database imported.", nil)
}

func (h *AdminHandler) Reset(c *gin.Context) {
	if err := h.snapshots.Reset(c.Request.Context()); err != nil {
		httperr.FromError(c, err, "reset_failed")
		return
	}
	httpresp.Message(c, "Database reset.", nil)
}

type uploadResponse struct {
	Key string `json:"key"`
}

func (h *AdminHandler) ExportToS3(c *gin.Context) {
	if h.uploader == nil {
		httperr.Write(c, http.StatusNotImplemented, "s3_disabled", "S3 export is not configured.")
		return
	}

	key, err := h.snapshots.UploadExport(c.Request.Context(), h.uploader)
	if err != nil {
		httperr.FromError(c, err, "s3_export_failed")
		return
	}
	httpresp.Created(c, "Export uploaded.", uploadResponse{Key: key})
}
