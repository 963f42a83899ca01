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

type prescriptionRequest struct {
	MedicineName string `json:"medicineName" binding:"required"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions"`
}

type createRecordRequest struct {
	AppointmentID string                `json:"appointmentId" binding:"required"`
	PatientID     string                `json:"patientId" binding:"required"`
	DoctorID      string                `json:"doctorId" binding:"required"`
	Reason        string                `json:"reason"`
	Diagnosis     string                `json:"diagnosis" binding:"required"`
	Notes         string                `json:"notes"`
	Prescriptions []prescriptionRequest `json:"prescriptions"`
}

type prescriptionResponse struct {
	ID           string `json:"id"`
	MedicineName string `json:"medicineName"`
	Dosage       string `json:"dosage"`
	Frequency    string `json:"frequency"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions"`
}

type medicalRecordResponse struct {
	RecordID      string                 `json:"recordId"`
	PatientID     string                 `json:"patientId"`
	DoctorID      string                 `json:"doctorId"`
	PatientName   string                 `json:"patientName"`
	DoctorName    string                 `json:"doctorName"`
	Reason        string                 `json:"reason"`
	Diagnosis     string                 `json:"diagnosis"`
	Notes         string                 `json:"notes"`
	CreatedAt     time.Time              `json:"createdAt"`
	Prescriptions []prescriptionResponse `json:"prescriptions"`
}

func toMedicalRecordResponse(r *model.MedicalRecord) medicalRecordResponse {
	resp := medicalRecordResponse{
		RecordID:      r.ID,
		PatientID:     r.PatientID,
		DoctorID:      r.DoctorID,
		PatientName:   r.PatientName,
		DoctorName:    r.DoctorName,
		Reason:        r.Reason,
		Diagnosis:     r.Diagnosis,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
		Prescriptions: make([]prescriptionResponse, len(r.Prescriptions)),
	}
	for i, p := range r.Prescriptions {
		resp.Prescriptions[i] = prescriptionResponse{
			ID:           p.ID,
			MedicineName: p.MedicineName,
			Dosage:       p.Dosage,
			Frequency:    p.Frequency,
			Duration:     p.Duration,
			Instructions: p.Instructions,
		}
	}
	return resp
}

// CreateRecord writes a medical record for an appointment. The appointment's
// patient and doctor must match the ones named in the request exactly.
func (h *Handler) CreateRecord(c *gin.Context) {
	var req createRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	appt, err := h.store.AppointmentByID(ctx, req.AppointmentID)
	if err != nil {
		h.fail(c, err)
		return
	}
	patient, err := h.store.PatientByID(ctx, req.PatientID)
	if err != nil {
		h.fail(c, err)
		return
	}
	doctor, err := h.store.DoctorByID(ctx, req.DoctorID)
	if err != nil {
		h.fail(c, err)
		return
	}

	if appt.PatientID != patient.ID || appt.DoctorID != doctor.ID {
		badRequest(c, "appointment does not belong to provided patient/doctor")
		return
	}

	rec := &model.MedicalRecord{
		ID:          uuid.New().String(),
		PatientID:   patient.ID,
		DoctorID:    doctor.ID,
		PatientName: patient.Name,
		DoctorName:  doctor.DoctorName,
		Reason:      req.Reason,
		Diagnosis:   req.Diagnosis,
		Notes:       req.Notes,
	}
	for _, p := range req.Prescriptions {
		rec.Prescriptions = append(rec.Prescriptions, model.Prescription{
			ID:           uuid.New().String(),
			MedicineName: p.MedicineName,
			Dosage:       p.Dosage,
			Frequency:    p.Frequency,
			Duration:     p.Duration,
			Instructions: p.Instructions,
		})
	}

	if err := h.store.CreateMedicalRecord(ctx, rec); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, toMedicalRecordResponse(rec))
}

// PatientRecords lists the caller's own records, newest first.
func (h *Handler) PatientRecords(c *gin.Context) {
	p, err := h.store.PatientByUsername(c.Request.Context(), middleware.Username(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	recs, err := h.store.MedicalRecordsForPatient(c.Request.Context(), p.ID)
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]medicalRecordResponse, len(recs))
	for i := range recs {
		out[i] = toMedicalRecordResponse(&recs[i])
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) DoctorRecords(c *gin.Context) {
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

	recs, err := h.store.MedicalRecordsForDoctor(c.Request.Context(), doctorID)
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]medicalRecordResponse, len(recs))
	for i := range recs {
		out[i] = toMedicalRecordResponse(&recs[i])
	}
	c.JSON(http.StatusOK, out)
}
