package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"hospital-appointment-api/internal/model"
)

func (s *Store) UserByUsername(ctx context.Context, username string) (*model.User, error) {
	u := &model.User{}
	err := s.pool.QueryRow(ctx,
		`SELECT u.id, u.username, u.password_hash, r.name, u.enabled, u.created_at, u.updated_at
		 FROM users u JOIN roles r ON r.id = u.role_id
		 WHERE u.username = $1`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.Enabled, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("User", username)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Store) UserByID(ctx context.Context, id string) (*model.User, error) {
	u := &model.User{}
	err := s.pool.QueryRow(ctx,
		`SELECT u.id, u.username, u.password_hash, r.name, u.enabled, u.created_at, u.updated_at
		 FROM users u JOIN roles r ON r.id = u.role_id
		 WHERE u.id = $1`, id,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.Enabled, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("User", id)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// RoleIDByName resolves a role name to its seeded id. Lookups are
// case-sensitive; callers upper-case input first.
func (s *Store) RoleIDByName(ctx context.Context, name string) (int, error) {
	var id int
	err := s.pool.QueryRow(ctx, `SELECT id FROM roles WHERE name = $1`, name).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, notFound("Role", name)
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// CreatePatientUser writes the credential row and the patient profile in one
// transaction so a failed profile insert never leaves an orphaned user.
func (s *Store) CreatePatientUser(ctx context.Context, u *model.User, roleID int, p *model.Patient) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO users (id, username, password_hash, role_id) VALUES ($1,$2,$3,$4)`,
		u.ID, u.Username, u.PasswordHash, roleID,
	)
	if isUniqueViolation(err, "") {
		return ErrDuplicate
	}
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO patients (id, user_id, name, email, contact_number, address, gender, blood_group, date_of_birth)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		p.ID, u.ID, p.Name, p.Email, p.ContactNumber, p.Address, p.Gender, p.BloodGroup, p.DateOfBirth,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// CreateDoctorUser is the privileged-provisioning counterpart of
// CreatePatientUser: credential row plus doctor profile, atomically.
func (s *Store) CreateDoctorUser(ctx context.Context, u *model.User, roleID int, d *model.Doctor) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO users (id, username, password_hash, role_id) VALUES ($1,$2,$3,$4)`,
		u.ID, u.Username, u.PasswordHash, roleID,
	)
	if isUniqueViolation(err, "") {
		return ErrDuplicate
	}
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO doctors (id, user_id, doctor_name, qualification, specialization,
		                      clinic_address, years_of_experience, email, contact_number)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		d.ID, u.ID, d.DoctorName, d.Qualification, d.Specialization,
		d.ClinicAddress, d.YearsOfExperience, d.Email, d.ContactNumber,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
