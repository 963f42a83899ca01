package handler

import (
	"github.com/gin-gonic/gin"

	"hospital-appointment-api/internal/middleware"
	"hospital-appointment-api/internal/model"
)

// Routes is the whole authorization map: every protected route names the role
// it demands right where it is registered.
func (h *Handler) Routes(r *gin.Engine, rl *middleware.RateLimiter) {
	api := r.Group("/api")

	pub := api.Group("/auth")
	pub.POST("/register", middleware.RateLimit(rl), h.Register)
	pub.POST("/login", middleware.RateLimit(rl), h.Login)
	pub.POST("/refresh", h.Refresh)

	authed := api.Group("", middleware.Auth(h.secret))
	authed.POST("/auth/logout", h.Logout)

	authed.POST("/admin/users", middleware.RequireRole(model.RoleAdmin), h.ProvisionUser)

	authed.GET("/doctors", h.ListDoctors)
	authed.GET("/doctors/:doctorId/stats", middleware.RequireRole(model.RoleDoctor), h.DoctorStats)
	authed.GET("/doctors/:doctorId/medical-records", middleware.RequireRole(model.RoleDoctor), h.DoctorRecords)

	patient := authed.Group("/patients/me", middleware.RequireRole(model.RolePatient))
	patient.POST("/appointments", h.BookAppointment)
	patient.GET("/appointments", h.PatientAppointments)
	patient.PUT("/appointments/:id", h.RescheduleAppointment)
	patient.DELETE("/appointments/:id", h.CancelAppointment)
	patient.GET("/medical-records", h.PatientRecords)

	doctor := authed.Group("/doctors/me", middleware.RequireRole(model.RoleDoctor))
	doctor.GET("/appointments", h.DoctorAppointments)
	doctor.PATCH("/appointments/:id/status", h.UpdateAppointmentStatus)
	doctor.POST("/medical-records", h.CreateRecord)
}
