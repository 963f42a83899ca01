package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hospital-appointment-api/internal/store"
)

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.store.ListDoctors(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]doctorResponse, len(doctors))
	for i := range doctors {
		out[i] = toDoctorResponse(&doctors[i])
	}
	c.JSON(http.StatusOK, out)
}

// DoctorStats reports load figures: total appointments booked hospital-wide
// on the given date, and how many distinct patients the doctor has held a
// PENDING, CONFIRMED or COMPLETED appointment with.
func (h *Handler) DoctorStats(c *gin.Context) {
	doctorID := c.Param("doctorId")

	exists, err := h.store.DoctorExists(c.Request.Context(), doctorID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !exists {
		h.fail(c, &store.NotFoundError{Kind: "Doctor", ID: doctorID})
		return
	}

	date := time.Now()
	if q := c.Query("date"); q != "" {
		d, err := time.Parse("2006-01-02", q)
		if err != nil {
			badRequest(c, "date must be YYYY-MM-DD")
			return
		}
		date = d
	}

	onDate, err := h.store.CountAppointmentsOnDate(c.Request.Context(), date)
	if err != nil {
		h.fail(c, err)
		return
	}
	patients, err := h.store.CountDistinctPatients(c.Request.Context(), doctorID)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"doctorId":           doctorID,
		"date":               date.Format("2006-01-02"),
		"appointmentsOnDate": onDate,
		"distinctPatients":   patients,
	})
}
