package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"hospital-appointment-api/internal/model"
)

func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO appointments (id, patient_id, doctor_id, appointment_date, start_time, reason, status)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		a.ID, a.PatientID, a.DoctorID, a.Date, a.StartTime, a.Reason, a.Status,
	)
	if isUniqueViolation(err, "appointments_slot_unique") {
		// the partial unique index caught a concurrent booking
		return ErrSlotTaken
	}
	return err
}

// HasSlotConflict reports whether the doctor already holds a non-cancelled
// appointment at exactly (date, startTime). excludeID keeps a reschedule from
// conflicting with the appointment being moved.
func (s *Store) HasSlotConflict(ctx context.Context, doctorID string, date time.Time, startTime, excludeID string) (bool, error) {
	q := `SELECT EXISTS(
		SELECT 1 FROM appointments
		WHERE doctor_id = $1
		  AND appointment_date = $2
		  AND start_time = $3
		  AND status <> 'CANCELLED'`

	args := []any{doctorID, date, startTime}

	if excludeID != "" {
		q += ` AND id <> $4`
		args = append(args, excludeID)
	}
	q += `)`

	var exists bool
	err := s.pool.QueryRow(ctx, q, args...).Scan(&exists)
	return exists, err
}

func (s *Store) AppointmentByID(ctx context.Context, id string) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, patient_id, doctor_id, appointment_date, start_time, reason, status, created_at, updated_at
		 FROM appointments WHERE id = $1`, id,
	).Scan(&a.ID, &a.PatientID, &a.DoctorID, &a.Date, &a.StartTime, &a.Reason, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("Appointment", id)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Store) RescheduleAppointment(ctx context.Context, a *model.Appointment) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE appointments
		 SET appointment_date=$1, start_time=$2, reason=$3, updated_at=NOW()
		 WHERE id=$4 AND patient_id=$5`,
		a.Date, a.StartTime, a.Reason, a.ID, a.PatientID,
	)
	if isUniqueViolation(err, "appointments_slot_unique") {
		return ErrSlotTaken
	}
	return err
}

func (s *Store) UpdateAppointmentStatus(ctx context.Context, id, status string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE appointments SET status=$1, updated_at=NOW() WHERE id=$2`,
		status, id,
	)
	return err
}

// CancelAppointment is a soft delete; the row stays for history but stops
// counting toward slot conflicts.
func (s *Store) CancelAppointment(ctx context.Context, id, patientID string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE appointments SET status='CANCELLED', updated_at=NOW()
		 WHERE id=$1 AND patient_id=$2`, id, patientID,
	)
	return err
}

func (s *Store) ListAppointmentsForPatient(ctx context.Context, patientID string) ([]model.Appointment, error) {
	return s.listAppointments(ctx, `patient_id`, patientID)
}

func (s *Store) ListAppointmentsForDoctor(ctx context.Context, doctorID string) ([]model.Appointment, error) {
	return s.listAppointments(ctx, `doctor_id`, doctorID)
}

func (s *Store) listAppointments(ctx context.Context, col, id string) ([]model.Appointment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, patient_id, doctor_id, appointment_date, start_time, reason, status, created_at, updated_at
		 FROM appointments
		 WHERE `+col+` = $1
		 ORDER BY appointment_date DESC, start_time DESC`, id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		var a model.Appointment
		if err := rows.Scan(
			&a.ID, &a.PatientID, &a.DoctorID, &a.Date, &a.StartTime,
			&a.Reason, &a.Status, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) CountAppointmentsOnDate(ctx context.Context, date time.Time) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM appointments WHERE appointment_date = $1`, date,
	).Scan(&n)
	return n, err
}

// CountDistinctPatients counts every patient the doctor has seen or is going
// to see. COMPLETED is included here even though the conflict check treats it
// as terminal; the load metric wants historical reach, not slot occupancy.
func (s *Store) CountDistinctPatients(ctx context.Context, doctorID string) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(DISTINCT patient_id) FROM appointments
		 WHERE doctor_id = $1 AND status IN ('PENDING','CONFIRMED','COMPLETED')`, doctorID,
	).Scan(&n)
	return n, err
}
