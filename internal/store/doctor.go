package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"hospital-appointment-api/internal/model"
)

func scanDoctor(row pgx.Row) (*model.Doctor, error) {
	d := &model.Doctor{}
	err := row.Scan(&d.ID, &d.UserID, &d.DoctorName, &d.Qualification, &d.Specialization,
		&d.ClinicAddress, &d.YearsOfExperience, &d.Email, &d.ContactNumber, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Store) DoctorByID(ctx context.Context, id string) (*model.Doctor, error) {
	d, err := scanDoctor(s.pool.QueryRow(ctx,
		`SELECT id, user_id, doctor_name, qualification, specialization,
		        clinic_address, years_of_experience, email, contact_number, created_at
		 FROM doctors WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("Doctor", id)
	}
	return d, err
}

func (s *Store) DoctorByUsername(ctx context.Context, username string) (*model.Doctor, error) {
	d, err := scanDoctor(s.pool.QueryRow(ctx,
		`SELECT d.id, d.user_id, d.doctor_name, d.qualification, d.specialization,
		        d.clinic_address, d.years_of_experience, d.email, d.contact_number, d.created_at
		 FROM doctors d JOIN users u ON u.id = d.user_id
		 WHERE u.username = $1`, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("Doctor", username)
	}
	return d, err
}

func (s *Store) DoctorExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM doctors WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (s *Store) ListDoctors(ctx context.Context) ([]model.Doctor, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, doctor_name, qualification, specialization,
		        clinic_address, years_of_experience, email, contact_number, created_at
		 FROM doctors ORDER BY doctor_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Doctor
	for rows.Next() {
		var d model.Doctor
		if err := rows.Scan(&d.ID, &d.UserID, &d.DoctorName, &d.Qualification, &d.Specialization,
			&d.ClinicAddress, &d.YearsOfExperience, &d.Email, &d.ContactNumber, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
