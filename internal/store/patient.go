package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"hospital-appointment-api/internal/model"
)

func scanPatient(row pgx.Row) (*model.Patient, error) {
	p := &model.Patient{}
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Email, &p.ContactNumber,
		&p.Address, &p.Gender, &p.BloodGroup, &p.DateOfBirth, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) PatientByID(ctx context.Context, id string) (*model.Patient, error) {
	p, err := scanPatient(s.pool.QueryRow(ctx,
		`SELECT id, user_id, name, email, contact_number, address, gender, blood_group, date_of_birth, created_at
		 FROM patients WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("Patient", id)
	}
	return p, err
}

// PatientByUsername resolves the authenticated identity to its profile.
func (s *Store) PatientByUsername(ctx context.Context, username string) (*model.Patient, error) {
	p, err := scanPatient(s.pool.QueryRow(ctx,
		`SELECT p.id, p.user_id, p.name, p.email, p.contact_number,
		        p.address, p.gender, p.blood_group, p.date_of_birth, p.created_at
		 FROM patients p JOIN users u ON u.id = p.user_id
		 WHERE u.username = $1`, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("Patient", username)
	}
	return p, err
}
