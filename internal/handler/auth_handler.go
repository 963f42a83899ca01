package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hospital-appointment-api/internal/auth"
	"hospital-appointment-api/internal/middleware"
	"hospital-appointment-api/internal/model"
	"hospital-appointment-api/internal/store"
)

const refreshCookie = "refresh_token"

type registerRequest struct {
	Username      string `json:"username" binding:"required"`
	Password      string `json:"password" binding:"required,min=8"`
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	ContactNumber string `json:"contactNumber"`
	Address       string `json:"address"`
	Gender        string `json:"gender"`
	BloodGroup    string `json:"bloodGroup"`
	DateOfBirth   string `json:"dateOfBirth"`
}

type patientResponse struct {
	PatientID     string `json:"patientId"`
	Username      string `json:"username"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ContactNumber string `json:"contactNumber"`
	Address       string `json:"address"`
	Gender        string `json:"gender"`
	BloodGroup    string `json:"bloodGroup"`
	DateOfBirth   string `json:"dateOfBirth,omitempty"`
}

func toPatientResponse(p *model.Patient, username string) patientResponse {
	resp := patientResponse{
		PatientID:     p.ID,
		Username:      username,
		Name:          p.Name,
		Email:         p.Email,
		ContactNumber: p.ContactNumber,
		Address:       p.Address,
		Gender:        p.Gender,
		BloodGroup:    p.BloodGroup,
	}
	if p.DateOfBirth != nil {
		resp.DateOfBirth = p.DateOfBirth.Format("2006-01-02")
	}
	return resp
}

// Register creates a PATIENT account: credential row plus profile in one
// transaction. A missing PATIENT seed role is a deployment fault, not a
// client error.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	var dob *time.Time
	if req.DateOfBirth != "" {
		d, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			badRequest(c, "dateOfBirth must be YYYY-MM-DD")
			return
		}
		dob = &d
	}

	roleID, err := h.store.RoleIDByName(c.Request.Context(), model.RolePatient)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "default role PATIENT is not seeded"})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		PasswordHash: hash,
	}
	p := &model.Patient{
		ID:            uuid.New().String(),
		UserID:        u.ID,
		Name:          req.Name,
		Email:         req.Email,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
		Gender:        req.Gender,
		BloodGroup:    req.BloodGroup,
		DateOfBirth:   dob,
	}

	if err := h.store.CreatePatientUser(c.Request.Context(), u, roleID, p); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPatientResponse(p, u.Username))
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	u, err := h.store.UserByUsername(c.Request.Context(), req.Username)
	if err != nil {
		// same response for unknown user and bad password
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if !u.Enabled {
		c.JSON(http.StatusForbidden, gin.H{"error": "account disabled"})
		return
	}
	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	h.issueTokens(c, u)
}

func (h *Handler) issueTokens(c *gin.Context, u *model.User) {
	tok, err := auth.MakeToken(u.Username, u.Role, h.secret)
	if err != nil {
		h.fail(c, err)
		return
	}

	rawRefresh, refreshHash, err := auth.GenerateRefreshToken()
	if err != nil {
		h.fail(c, err)
		return
	}
	expiry := time.Now().Add(auth.RefreshTokenTTL)
	if _, err := h.store.CreateRefreshToken(c.Request.Context(), u.ID, refreshHash, expiry); err != nil {
		h.fail(c, err)
		return
	}

	c.SetCookie(refreshCookie, rawRefresh, int(auth.RefreshTokenTTL.Seconds()), "/api/auth", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"token":    tok,
		"username": u.Username,
		"role":     u.Role,
	})
}

// Refresh rotates the cookie-held token: the presented one is revoked and a
// replacement issued alongside a fresh access token.
func (h *Handler) Refresh(c *gin.Context) {
	raw, err := c.Cookie(refreshCookie)
	if err != nil || raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing refresh token"})
		return
	}

	newRaw, newHash, err := auth.GenerateRefreshToken()
	if err != nil {
		h.fail(c, err)
		return
	}
	expiry := time.Now().Add(auth.RefreshTokenTTL)

	userID, err := h.store.ConsumeRefreshToken(c.Request.Context(), auth.HashRefreshToken(raw), newHash, expiry)
	if err != nil {
		h.fail(c, err)
		return
	}

	u, err := h.store.UserByID(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !u.Enabled {
		c.JSON(http.StatusForbidden, gin.H{"error": "account disabled"})
		return
	}

	tok, err := auth.MakeToken(u.Username, u.Role, h.secret)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.SetCookie(refreshCookie, newRaw, int(auth.RefreshTokenTTL.Seconds()), "/api/auth", "", false, true)
	c.JSON(http.StatusOK, gin.H{"token": tok, "username": u.Username, "role": u.Role})
}

func (h *Handler) Logout(c *gin.Context) {
	u, err := h.store.UserByUsername(c.Request.Context(), middleware.Username(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.store.RevokeAllRefreshTokens(c.Request.Context(), u.ID); err != nil {
		h.fail(c, err)
		return
	}
	c.SetCookie(refreshCookie, "", -1, "/api/auth", "", false, true)
	c.Status(http.StatusNoContent)
}

type provisionRequest struct {
	Username          string `json:"username" binding:"required"`
	Password          string `json:"password" binding:"required,min=8"`
	RoleName          string `json:"roleName" binding:"required"`
	DoctorName        string `json:"doctorName" binding:"required"`
	Qualification     string `json:"qualification"`
	Specialization    string `json:"specialization"`
	ClinicAddress     string `json:"clinicAddress"`
	YearsOfExperience int    `json:"yearsOfExperience"`
	Email             string `json:"email" binding:"required,email"`
	ContactNumber     string `json:"contactNumber"`
}

type doctorResponse struct {
	DoctorID          string `json:"doctorId"`
	DoctorName        string `json:"doctorName"`
	Qualification     string `json:"qualification"`
	Specialization    string `json:"specialization"`
	ClinicAddress     string `json:"clinicAddress"`
	YearsOfExperience int    `json:"yearsOfExperience"`
	Email             string `json:"email"`
	ContactNumber     string `json:"contactNumber"`
}

func toDoctorResponse(d *model.Doctor) doctorResponse {
	return doctorResponse{
		DoctorID:          d.ID,
		DoctorName:        d.DoctorName,
		Qualification:     d.Qualification,
		Specialization:    d.Specialization,
		ClinicAddress:     d.ClinicAddress,
		YearsOfExperience: d.YearsOfExperience,
		Email:             d.Email,
		ContactNumber:     d.ContactNumber,
	}
}

// ProvisionUser creates a privileged (DOCTOR/ADMIN) account with its doctor
// profile. The role must already exist; names are matched case-insensitively
// by upper-casing the input.
func (h *Handler) ProvisionUser(c *gin.Context) {
	var req provisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	roleName := strings.ToUpper(req.RoleName)
	roleID, err := h.store.RoleIDByName(c.Request.Context(), roleName)
	if errors.Is(err, store.ErrNotFound) {
		badRequest(c, "role '"+req.RoleName+"' not found")
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		PasswordHash: hash,
	}
	d := &model.Doctor{
		ID:                uuid.New().String(),
		UserID:            u.ID,
		DoctorName:        req.DoctorName,
		Qualification:     req.Qualification,
		Specialization:    req.Specialization,
		ClinicAddress:     req.ClinicAddress,
		YearsOfExperience: req.YearsOfExperience,
		Email:             req.Email,
		ContactNumber:     req.ContactNumber,
	}

	if err := h.store.CreateDoctorUser(c.Request.Context(), u, roleID, d); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, toDoctorResponse(d))
}
