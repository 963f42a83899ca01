package store

import (
	"context"

	"hospital-appointment-api/internal/model"
)

// CreateMedicalRecord persists the record and its prescriptions in one
// transaction; prescriptions never exist without their record.
func (s *Store) CreateMedicalRecord(ctx context.Context, rec *model.MedicalRecord) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO medical_records (id, patient_id, doctor_id, reason, diagnosis, notes)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 RETURNING created_at`,
		rec.ID, rec.PatientID, rec.DoctorID, rec.Reason, rec.Diagnosis, rec.Notes,
	).Scan(&rec.CreatedAt)
	if err != nil {
		return err
	}

	for i := range rec.Prescriptions {
		p := &rec.Prescriptions[i]
		p.RecordID = rec.ID
		_, err = tx.Exec(ctx,
			`INSERT INTO prescriptions (id, record_id, medicine_name, dosage, frequency, duration, instructions)
			 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			p.ID, p.RecordID, p.MedicineName, p.Dosage, p.Frequency, p.Duration, p.Instructions,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (s *Store) MedicalRecordsForPatient(ctx context.Context, patientID string) ([]model.MedicalRecord, error) {
	return s.listRecords(ctx, `patient_id`, patientID)
}

func (s *Store) MedicalRecordsForDoctor(ctx context.Context, doctorID string) ([]model.MedicalRecord, error) {
	return s.listRecords(ctx, `doctor_id`, doctorID)
}

func (s *Store) listRecords(ctx context.Context, col, id string) ([]model.MedicalRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT m.id, m.patient_id, m.doctor_id, p.name, d.doctor_name,
		        m.reason, m.diagnosis, m.notes, m.created_at
		 FROM medical_records m
		 JOIN patients p ON p.id = m.patient_id
		 JOIN doctors d ON d.id = m.doctor_id
		 WHERE m.`+col+` = $1
		 ORDER BY m.created_at DESC`, id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MedicalRecord
	var ids []string
	for rows.Next() {
		var r model.MedicalRecord
		if err := rows.Scan(&r.ID, &r.PatientID, &r.DoctorID, &r.PatientName, &r.DoctorName,
			&r.Reason, &r.Diagnosis, &r.Notes, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
		ids = append(ids, r.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	if err := s.attachPrescriptions(ctx, out, ids); err != nil {
		return nil, err
	}
	return out, nil
}

// attachPrescriptions loads prescriptions for all records in one query and
// distributes them by record id.
func (s *Store) attachPrescriptions(ctx context.Context, recs []model.MedicalRecord, ids []string) error {
	rows, err := s.pool.Query(ctx,
		`SELECT id, record_id, medicine_name, dosage, frequency, duration, instructions
		 FROM prescriptions WHERE record_id = ANY($1)`, ids,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	byRecord := make(map[string][]model.Prescription)
	for rows.Next() {
		var p model.Prescription
		if err := rows.Scan(&p.ID, &p.RecordID, &p.MedicineName, &p.Dosage, &p.Frequency, &p.Duration, &p.Instructions); err != nil {
			return err
		}
		byRecord[p.RecordID] = append(byRecord[p.RecordID], p)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range recs {
		recs[i].Prescriptions = byRecord[recs[i].ID]
	}
	return nil
}
