package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hospital-appointment-api/internal/middleware"
	"hospital-appointment-api/internal/model"
	"hospital-appointment-api/internal/store"
)

type bookRequest struct {
	DoctorID  string `json:"doctorId" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	Reason    string `json:"reason"`
}

type appointmentResponse struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patientId"`
	DoctorID  string    `json:"doctorId"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	Reason    string    `json:"reason"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toAppointmentResponse(a *model.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:        a.ID,
		PatientID: a.PatientID,
		DoctorID:  a.DoctorID,
		Date:      a.Date.Format("2006-01-02"),
		StartTime: a.StartTime,
		Reason:    a.Reason,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// parseSlot normalizes the date/time pair; slots are exact points, so the
// stored "HH:MM" string is the unit of comparison.
func parseSlot(date, startTime string) (time.Time, string, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, "", err
	}
	t, err := time.Parse("15:04", startTime)
	if err != nil {
		return time.Time{}, "", err
	}
	return d, t.Format("15:04"), nil
}

func (h *Handler) BookAppointment(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	date, startTime, err := parseSlot(req.Date, req.StartTime)
	if err != nil {
		badRequest(c, "date must be YYYY-MM-DD and startTime HH:MM")
		return
	}
	// both sides are YYYY-MM-DD in server-local time, so string order is date order
	if req.Date < time.Now().Format("2006-01-02") {
		badRequest(c, "cannot book in the past")
		return
	}

	p, err := h.store.PatientByUsername(c.Request.Context(), middleware.Username(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	exists, err := h.store.DoctorExists(c.Request.Context(), req.DoctorID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !exists {
		h.fail(c, &store.NotFoundError{Kind: "Doctor", ID: req.DoctorID})
		return
	}

	// app-level slot check; the partial unique index closes the race
	if taken, err := h.store.HasSlotConflict(c.Request.Context(), req.DoctorID, date, startTime, ""); err != nil {
		h.fail(c, err)
		return
	} else if taken {
		h.fail(c, store.ErrSlotTaken)
		return
	}

	a := &model.Appointment{
		ID:        uuid.New().String(),
		PatientID: p.ID,
		DoctorID:  req.DoctorID,
		Date:      date,
		StartTime: startTime,
		Reason:    req.Reason,
		Status:    model.StatusPending,
	}
	if err := h.store.CreateAppointment(c.Request.Context(), a); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, toAppointmentResponse(a))
}

func (h *Handler) PatientAppointments(c *gin.Context) {
	p, err := h.store.PatientByUsername(c.Request.Context(), middleware.Username(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	appts, err := h.store.ListAppointmentsForPatient(c.Request.Context(), p.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]appointmentResponse, len(appts))
	for i := range appts {
		out[i] = toAppointmentResponse(&appts[i])
	}
	c.JSON(http.StatusOK, out)
}

type rescheduleRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	Reason    string `json:"reason"`
}

func (h *Handler) RescheduleAppointment(c *gin.Context) {
	var req rescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	date, startTime, err := parseSlot(req.Date, req.StartTime)
	if err != nil {
		badRequest(c, "date must be YYYY-MM-DD and startTime HH:MM")
		return
	}
	if req.Date < time.Now().Format("2006-01-02") {
		badRequest(c, "cannot reschedule into the past")
		return
	}

	p, err := h.store.PatientByUsername(c.Request.Context(), middleware.Username(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	id := c.Param("id")
	a, err := h.store.AppointmentByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	// ownership — report not-found rather than reveal the appointment
	if a.PatientID != p.ID {
		h.fail(c, &store.NotFoundError{Kind: "Appointment", ID: id})
		return
	}
	if model.IsTerminal(a.Status) {
		badRequest(c, "cannot reschedule a "+a.Status+" appointment")
		return
	}

	// exclude self so the appointment does not conflict with its own slot
	if taken, err := h.store.HasSlotConflict(c.Request.Context(), a.DoctorID, date, startTime, a.ID); err != nil {
		h.fail(c, err)
		return
	} else if taken {
		h.fail(c, store.ErrSlotTaken)
		return
	}

	a.Date = date
	a.StartTime = startTime
	if req.Reason != "" {
		a.Reason = req.Reason
	}
	if err := h.store.RescheduleAppointment(c.Request.Context(), a); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, toAppointmentResponse(a))
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	p, err := h.store.PatientByUsername(c.Request.Context(), middleware.Username(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	id := c.Param("id")
	a, err := h.store.AppointmentByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if a.PatientID != p.ID {
		h.fail(c, &store.NotFoundError{Kind: "Appointment", ID: id})
		return
	}
	if model.IsTerminal(a.Status) {
		badRequest(c, "cannot cancel a "+a.Status+" appointment")
		return
	}

	if err := h.store.CancelAppointment(c.Request.Context(), id, p.ID); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) DoctorAppointments(c *gin.Context) {
	d, err := h.store.DoctorByUsername(c.Request.Context(), middleware.Username(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	appts, err := h.store.ListAppointmentsForDoctor(c.Request.Context(), d.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]appointmentResponse, len(appts))
	for i := range appts {
		out[i] = toAppointmentResponse(&appts[i])
	}
	c.JSON(http.StatusOK, out)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) UpdateAppointmentStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	d, err := h.store.DoctorByUsername(c.Request.Context(), middleware.Username(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	id := c.Param("id")
	a, err := h.store.AppointmentByID(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if a.DoctorID != d.ID {
		h.fail(c, &store.NotFoundError{Kind: "Appointment", ID: id})
		return
	}
	if !model.CanTransition(a.Status, req.Status) {
		badRequest(c, "cannot transition from "+a.Status+" to "+req.Status)
		return
	}

	if err := h.store.UpdateAppointmentStatus(c.Request.Context(), id, req.Status); err != nil {
		h.fail(c, err)
		return
	}

	a.Status = req.Status
	c.JSON(http.StatusOK, toAppointmentResponse(a))
}
