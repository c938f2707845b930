package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dentalops/vob-extractor/constants"
	"github.com/dentalops/vob-extractor/internal/common"
)

// ExtractJob is one extraction attempt's bookkeeping row.
type ExtractJob struct {
	ID           uuid.UUID
	Filename     string
	Status       constants.JobStatus
	Method       constants.ExtractionMethod
	Pages        int
	TextBytes    int
	FieldsFound  int
	ErrorMessage string
	StartedAt    time.Time
	FinishedAt   *time.Time
}

type ExtractJobRepository interface {
	Start(ctx context.Context, filename string) (uuid.UUID, error)
	FinishExtract(ctx context.Context, jobID uuid.UUID, pages, textBytes int) error
	FinishParse(ctx context.Context, jobID uuid.UUID, method constants.ExtractionMethod, fieldsFound int, rawResult []byte) error
	FinishFailure(ctx context.Context, jobID uuid.UUID, message string) error
	GetByID(ctx context.Context, jobID uuid.UUID) (*ExtractJob, error)
}

type extractJobRepo struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewExtractJobRepository(pool *pgxpool.Pool, log *slog.Logger) ExtractJobRepository {
	if log == nil {
		log = slog.Default()
	}
	return &extractJobRepo{pool: pool, log: log}
}

func (r *extractJobRepo) Start(ctx context.Context, filename string) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.pool.Exec(ctx,
		`INSERT INTO vob_extract_job (id, filename, status, started_at)
		 VALUES ($1, $2, $3, now())`,
		id, filename, string(constants.JobStatusRunning),
	)
	if err != nil {
		r.log.Error("extract_job start failed", "filename", filename, "err", err)
		return uuid.Nil, err
	}
	r.log.Info("extract_job started", "job_id", id, "filename", filename)
	return id, nil
}

func (r *extractJobRepo) FinishExtract(ctx context.Context, jobID uuid.UUID, pages, textBytes int) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE vob_extract_job
		 SET status = $2, pages = $3, text_bytes = $4
		 WHERE id = $1`,
		jobID, string(constants.JobStatusExtractOK), pages, textBytes,
	)
	if err != nil {
		r.log.Error("extract_job finish(EXTRACT_OK) failed", "job_id", jobID, "err", err)
		return err
	}
	r.log.Info("extract_job text views built", "job_id", jobID, "pages", pages, "text_bytes", textBytes)
	return nil
}

func (r *extractJobRepo) FinishParse(ctx context.Context, jobID uuid.UUID, method constants.ExtractionMethod, fieldsFound int, rawResult []byte) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE vob_extract_job
		 SET status = $2, method = $3, fields_found = $4, raw_result = $5, finished_at = now()
		 WHERE id = $1`,
		jobID, string(constants.JobStatusParseOK), string(method), fieldsFound, rawResult,
	)
	if err != nil {
		r.log.Error("extract_job finish(PARSE_OK) failed", "job_id", jobID, "err", err)
		return err
	}
	r.log.Info("extract_job finished", "job_id", jobID, "method", method, "fields_found", fieldsFound)
	return nil
}

func (r *extractJobRepo) FinishFailure(ctx context.Context, jobID uuid.UUID, message string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE vob_extract_job
		 SET status = $2, error_message = $3, finished_at = now()
		 WHERE id = $1`,
		jobID, string(constants.JobStatusFailed), message,
	)
	if err != nil {
		r.log.Error("extract_job finish(FAILED) failed", "job_id", jobID, "err", err)
		return err
	}
	r.log.Warn("extract_job failed", "job_id", jobID, "error", message)
	return nil
}

func (r *extractJobRepo) GetByID(ctx context.Context, jobID uuid.UUID) (*ExtractJob, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, filename, status, method, pages, text_bytes, fields_found,
		        error_message, started_at, finished_at
		 FROM vob_extract_job WHERE id = $1`,
		jobID,
	)
	var job ExtractJob
	var status, method string
	if err := row.Scan(&job.ID, &job.Filename, &status, &method, &job.Pages,
		&job.TextBytes, &job.FieldsFound, &job.ErrorMessage,
		&job.StartedAt, &job.FinishedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.NewAppError("JOB_NOT_FOUND", jobID.String(), common.ErrNotFound)
		}
		return nil, err
	}
	job.Status = constants.JobStatus(status)
	job.Method = constants.ExtractionMethod(method)
	return &job, nil
}
