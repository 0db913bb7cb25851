package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	ucBarbershop "github.com/BruksfildServices01/barber-booking/internal/usecase/barbershop"
)

// BarbershopHandler serves the public catalog and its availability.
type BarbershopHandler struct {
	list  *ucBarbershop.ListBarbershops
	get   *ucBarbershop.GetBarbershop
	slots *ucAppointment.GetAvailability
	check *ucAppointment.CheckSlot
}

func NewBarbershopHandler(
	list *ucBarbershop.ListBarbershops,
	get *ucBarbershop.GetBarbershop,
	slots *ucAppointment.GetAvailability,
	check *ucAppointment.CheckSlot,
) *BarbershopHandler {
	return &BarbershopHandler{list: list, get: get, slots: slots, check: check}
}

func (h *BarbershopHandler) List(c *gin.Context) {
	shops, err := h.list.Execute(c.Request.Context(), c.Query("query"))
	if err != nil {
		httperr.FromError(c, err, "barbershop_list_failed")
		return
	}
	httpresp.List(c, shops)
}

func (h *BarbershopHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	shop, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err, "barbershop_get_failed")
		return
	}
	httpresp.OK(c, shop)
}

func (h *BarbershopHandler) Slots(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	slots, err := h.slots.Execute(c.Request.Context(), domain.AvailabilityInput{
		BarbershopID: id,
		Date:         c.Query("date"),
	})
	if err != nil {
		httperr.FromError(c, err, "availability_failed")
		return
	}
	httpresp.List(c, slots)
}

type slotCheckResponse struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

func (h *BarbershopHandler) CheckSlot(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	date, clock := c.Query("date"), c.Query("time")
	free, err := h.check.Execute(c.Request.Context(), id, date, clock)
	if err != nil {
		httperr.FromError(c, err, "availability_failed")
		return
	}
	httpresp.OK(c, slotCheckResponse{Date: date, Time: clock, Available: free})
}
