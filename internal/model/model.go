package model

import "time"

// role names as seeded in the roles table
const (
	RolePatient = "PATIENT"
	RoleDoctor  = "DOCTOR"
	RoleAdmin   = "ADMIN"
)

// appointment statuses; CANCELLED and COMPLETED are terminal
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

// allowed status transitions, keyed by current status
var transitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

func CanTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func IsTerminal(status string) bool {
	return status == StatusCompleted || status == StatusCancelled
}

type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
	Enabled      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Patient struct {
	ID            string
	UserID        string
	Name          string
	Email         string
	ContactNumber string
	Address       string
	Gender        string
	BloodGroup    string
	DateOfBirth   *time.Time
	CreatedAt     time.Time
}

type Doctor struct {
	ID                string
	UserID            string
	DoctorName        string
	Qualification     string
	Specialization    string
	ClinicAddress     string
	YearsOfExperience int
	Email             string
	ContactNumber     string
	CreatedAt         time.Time
}

// Date holds the calendar day and StartTime the "HH:MM" slot; a slot is a
// point in time, not an interval, so conflict checks are exact-match only.
type Appointment struct {
	ID        string
	PatientID string
	DoctorID  string
	Date      time.Time
	StartTime string
	Reason    string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PatientName and DoctorName are denormalized display names filled in by
// reads; writes ignore them.
type MedicalRecord struct {
	ID            string
	PatientID     string
	DoctorID      string
	PatientName   string
	DoctorName    string
	Reason        string
	Diagnosis     string
	Notes         string
	CreatedAt     time.Time
	Prescriptions []Prescription
}

type Prescription struct {
	ID           string
	RecordID     string
	MedicineName string
	Dosage       string
	Frequency    string
	Duration     string
	Instructions string
}
