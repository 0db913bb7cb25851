package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	ucBarbershop "github.com/BruksfildServices01/barber-booking/internal/usecase/barbershop"
)

// ======================================================
// HANDLER
// ======================================================

// AppointmentHandler serves the authenticated user's bookings.
type AppointmentHandler struct {
	catalog *ucBarbershop.GetBarbershop
	create  *ucAppointment.CreateAppointment
	cancel  *ucAppointment.CancelAppointment
	list    *ucAppointment.ListUserAppointments
	stats   *ucAppointment.GetUserStats

	timezone string
}

func NewAppointmentHandler(
	catalog *ucBarbershop.GetBarbershop,
	create *ucAppointment.CreateAppointment,
	cancel *ucAppointment.CancelAppointment,
	list *ucAppointment.ListUserAppointments,
	stats *ucAppointment.GetUserStats,
	tz string,
) *AppointmentHandler {
	return &AppointmentHandler{
		catalog:  catalog,
		create:   create,
		cancel:   cancel,
		list:     list,
		stats:    stats,
		timezone: tz,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BarbershopID uint   `json:"barbershop_id" binding:"required"`
	ServiceID    uint   `json:"service_id" binding:"required"`
	Date         string `json:"date" binding:"required"`
	Time         string `json:"time" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()

	// name and price come from the catalog, never from the client
	shop, err := h.catalog.Execute(ctx, req.BarbershopID)
	if err != nil {
		httperr.FromError(c, err, "appointment_create_failed")
		return
	}
	service, ok := shop.FindService(req.ServiceID)
	if !ok {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	ap, err := h.create.Execute(ctx, ucAppointment.CreateAppointmentInput{
		UserID:       middleware.UserID(c),
		BarbershopID: shop.ID,
		ServiceID:    service.ID,
		ServiceName:  service.Name,
		Price:        service.Price,
		Date:         req.Date,
		Time:         req.Time,
	})
	if err != nil {
		httperr.FromError(c, err, "appointment_create_failed")
		return
	}

	httpresp.Created(c, "Appointment booked.", ap)
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		httperr.FromError(c, err, "appointment_cancel_failed")
		return
	}
	httpresp.Message(c, "Appointment cancelled.", ap)
}

// ======================================================
// QUERIES
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	views, err := h.list.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, err, "appointment_list_failed")
		return
	}
	httpresp.List(c, views)
}

func (h *AppointmentHandler) Upcoming(c *gin.Context) {
	views, err := h.list.Upcoming(c.Request.Context(), middleware.UserID(c), h.asOf(c))
	if err != nil {
		httperr.FromError(c, err, "appointment_list_failed")
		return
	}
	httpresp.List(c, views)
}

func (h *AppointmentHandler) History(c *gin.Context) {
	views, err := h.list.History(c.Request.Context(), middleware.UserID(c), h.asOf(c))
	if err != nil {
		httperr.FromError(c, err, "appointment_list_failed")
		return
	}
	httpresp.List(c, views)
}

func (h *AppointmentHandler) Stats(c *gin.Context) {
	stats, err := h.stats.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		httperr.FromError(c, err, "stats_failed")
		return
	}
	httpresp.OK(c, stats)
}

// asOf defaults to today in the service timezone.
func (h *AppointmentHandler) asOf(c *gin.Context) string {
	if v := c.Query("as_of"); v != "" {
		return v
	}
	return timezone.Today(h.timezone)
}
