package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dentalops/vob-extractor/internal/common"
	"github.com/dentalops/vob-extractor/internal/vob"
)

// VOBForm is one stored verification form.
type VOBForm struct {
	ID          uuid.UUID
	PatientName string
	Record      vob.BenefitsRecord
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type FormRepository interface {
	Create(ctx context.Context, form *VOBForm) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*VOBForm, error)
	Update(ctx context.Context, id uuid.UUID, record vob.BenefitsRecord) error
	ListRecent(ctx context.Context, limit int) ([]*VOBForm, error)
}

type formRepo struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewFormRepository(pool *pgxpool.Pool, log *slog.Logger) FormRepository {
	if log == nil {
		log = slog.Default()
	}
	return &formRepo{pool: pool, log: log}
}

func (r *formRepo) Create(ctx context.Context, form *VOBForm) (uuid.UUID, error) {
	if form.ID == uuid.Nil {
		form.ID = uuid.New()
	}
	if form.PatientName == "" {
		form.PatientName = form.Record.PatientInfo.PatientName
	}
	rec, err := json.Marshal(form.Record)
	if err != nil {
		return uuid.Nil, common.WrapError(err, "marshal record")
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO vob_form (id, patient_name, record, created_at, updated_at)
		 VALUES ($1, $2, $3, now(), now())`,
		form.ID, form.PatientName, rec,
	)
	if err != nil {
		r.log.Error("vob_form create failed", "err", err)
		return uuid.Nil, err
	}
	r.log.Info("vob_form created", "form_id", form.ID, "patient", form.PatientName)
	return form.ID, nil
}

func (r *formRepo) GetByID(ctx context.Context, id uuid.UUID) (*VOBForm, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, patient_name, record, created_at, updated_at
		 FROM vob_form WHERE id = $1`, id)
	form, err := scanForm(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewAppError("FORM_NOT_FOUND", id.String(), common.ErrNotFound)
		}
		return nil, err
	}
	return form, nil
}

func (r *formRepo) Update(ctx context.Context, id uuid.UUID, record vob.BenefitsRecord) error {
	rec, err := json.Marshal(record)
	if err != nil {
		return common.WrapError(err, "marshal record")
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE vob_form
		 SET record = $2, patient_name = $3, updated_at = now()
		 WHERE id = $1`,
		id, rec, record.PatientInfo.PatientName,
	)
	if err != nil {
		r.log.Error("vob_form update failed", "form_id", id, "err", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return common.NewAppError("FORM_NOT_FOUND", id.String(), common.ErrNotFound)
	}
	return nil
}

func (r *formRepo) ListRecent(ctx context.Context, limit int) ([]*VOBForm, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx,
		`SELECT id, patient_name, record, created_at, updated_at
		 FROM vob_form ORDER BY updated_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var forms []*VOBForm
	for rows.Next() {
		form, err := scanForm(rows)
		if err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}
	return forms, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanForm(row rowScanner) (*VOBForm, error) {
	var form VOBForm
	var rec []byte
	if err := row.Scan(&form.ID, &form.PatientName, &rec, &form.CreatedAt, &form.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(rec, &form.Record); err != nil {
		return nil, common.WrapError(err, "unmarshal record")
	}
	return &form, nil
}
