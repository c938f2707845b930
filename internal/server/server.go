// Package server exposes the extraction pipeline and stored forms over HTTP.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dentalops/vob-extractor/constants"
	"github.com/dentalops/vob-extractor/internal/common"
	"github.com/dentalops/vob-extractor/internal/export"
	"github.com/dentalops/vob-extractor/internal/pipeline"
	"github.com/dentalops/vob-extractor/internal/repository"
	"github.com/dentalops/vob-extractor/internal/vob"
)

// Result classification by number of fields found.
const (
	ResultEmpty   = "empty"
	ResultPartial = "partial"
	ResultSuccess = "success"

	successThreshold = 5

	shutdownTimeout = 10 * time.Second
)

type Server struct {
	processor *pipeline.Processor
	forms     repository.FormRepository
	jobs      repository.ExtractJobRepository
	exporter  *export.Service
	pool      *pgxpool.Pool
	cfg       common.ServerConfig
	log       *slog.Logger
}

func New(processor *pipeline.Processor, forms repository.FormRepository, jobs repository.ExtractJobRepository, exporter *export.Service, pool *pgxpool.Pool, cfg common.ServerConfig, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		processor: processor,
		forms:     forms,
		jobs:      jobs,
		exporter:  exporter,
		pool:      pool,
		cfg:       cfg,
		log:       log,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID())
	r.MaxMultipartMemory = s.cfg.MaxUploadSize

	r.GET("/healthz", s.handleHealth)

	v1 := r.Group("/v1")
	{
		v1.POST("/extract", s.handleExtract)
		v1.GET("/jobs/:id", s.handleGetJob)
		v1.GET("/forms", s.handleListForms)
		v1.GET("/forms/:id", s.handleGetForm)
		v1.PUT("/forms/:id", s.handleUpdateForm)
		v1.POST("/forms/:id/apply", s.handleApply)
		v1.GET("/forms/:id/export", s.handleExport)
	}
	return r
}

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.NewString()
		}
		ctx := common.WithRequestID(c.Request.Context(), reqID)
		if office := c.GetHeader("X-Office-ID"); office != "" {
			ctx = common.WithOfficeID(ctx, office)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", reqID)
		c.Next()
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	if s.pool != nil {
		if err := s.pool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": "database unreachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type extractResponse struct {
	JobID       uuid.UUID                  `json:"jobId"`
	FormID      *uuid.UUID                 `json:"formId,omitempty"`
	Result      string                     `json:"result"`
	FieldsFound int                        `json:"fieldsFound"`
	Method      constants.ExtractionMethod `json:"method"`
	Pages       int                        `json:"pages"`
	Record      *vob.BenefitsRecord        `json:"record"`
}

// handleExtract accepts a multipart PDF upload, runs the pipeline, and
// optionally persists the result as a new form when save=true.
func (s *Server) handleExtract(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only .pdf uploads are accepted"})
		return
	}
	if s.cfg.MaxUploadSize > 0 && fileHeader.Size > s.cfg.MaxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
		return
	}

	outcome, err := s.processor.Process(c.Request.Context(), fileHeader.Filename, data)
	if err != nil {
		s.writeError(c, err)
		return
	}

	resp := extractResponse{
		JobID:       outcome.JobID,
		Result:      classify(outcome.FieldsFound),
		FieldsFound: outcome.FieldsFound,
		Method:      outcome.Method,
		Pages:       outcome.Pages,
		Record:      outcome.Record,
	}

	if c.Query("save") == "true" && s.forms != nil {
		form := &repository.VOBForm{Record: *outcome.Record}
		id, err := s.forms.Create(c.Request.Context(), form)
		if err != nil {
			s.writeError(c, err)
			return
		}
		resp.FormID = &id
	}

	c.JSON(http.StatusOK, resp)
}

// handleGetJob reports one extraction attempt's bookkeeping, so callers can
// check what happened to an upload after the fact.
func (s *Server) handleGetJob(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}
	job, err := s.jobs.GetByID(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	resp := gin.H{
		"id":          job.ID,
		"filename":    job.Filename,
		"status":      job.Status,
		"method":      job.Method,
		"pages":       job.Pages,
		"textBytes":   job.TextBytes,
		"fieldsFound": job.FieldsFound,
		"startedAt":   job.StartedAt,
	}
	if job.ErrorMessage != "" {
		resp["error"] = job.ErrorMessage
	}
	if job.FinishedAt != nil {
		resp["finishedAt"] = job.FinishedAt
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleListForms(c *gin.Context) {
	forms, err := s.forms.ListRecent(c.Request.Context(), 50)
	if err != nil {
		s.writeError(c, err)
		return
	}
	type summary struct {
		ID          uuid.UUID `json:"id"`
		PatientName string    `json:"patientName"`
		FieldsFound int       `json:"fieldsFound"`
		UpdatedAt   string    `json:"updatedAt"`
	}
	out := make([]summary, 0, len(forms))
	for _, form := range forms {
		out = append(out, summary{
			ID:          form.ID,
			PatientName: form.PatientName,
			FieldsFound: form.Record.FieldsFound(),
			UpdatedAt:   form.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}
	c.JSON(http.StatusOK, gin.H{"forms": out})
}

func (s *Server) handleGetForm(c *gin.Context) {
	id, ok := s.formID(c)
	if !ok {
		return
	}
	form, err := s.forms.GetByID(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":          form.ID,
		"patientName": form.PatientName,
		"record":      form.Record,
		"fieldsFound": form.Record.FieldsFound(),
	})
}

// handleUpdateForm replaces the stored record wholesale. Manual edits from
// the front desk come through here, so no merge semantics apply.
func (s *Server) handleUpdateForm(c *gin.Context) {
	id, ok := s.formID(c)
	if !ok {
		return
	}
	var record vob.BenefitsRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record body"})
		return
	}
	if err := s.forms.Update(c.Request.Context(), id, record); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "fieldsFound": record.FieldsFound()})
}

// handleApply runs a fresh extraction and merges the result into the stored
// form, overwriting only fields the new document actually produced.
func (s *Server) handleApply(c *gin.Context) {
	id, ok := s.formID(c)
	if !ok {
		return
	}
	form, err := s.forms.GetByID(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
		return
	}

	outcome, err := s.processor.Process(c.Request.Context(), fileHeader.Filename, data)
	if err != nil {
		s.writeError(c, err)
		return
	}

	merged := vob.Merge(outcome.Record, form.Record)
	if err := s.forms.Update(c.Request.Context(), id, merged); err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          id,
		"jobId":       outcome.JobID,
		"result":      classify(outcome.FieldsFound),
		"fieldsFound": outcome.FieldsFound,
		"method":      outcome.Method,
		"record":      merged,
	})
}

func (s *Server) handleExport(c *gin.Context) {
	id, ok := s.formID(c)
	if !ok {
		return
	}
	data, err := s.exporter.ExportFormXLSX(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="verification-`+id.String()+`.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (s *Server) formID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form id"})
		return uuid.Nil, false
	}
	return id, true
}

// classify maps a fields-found count onto the coarse result label the
// caller keys UI behavior off of.
func classify(found int) string {
	switch {
	case found == 0:
		return ResultEmpty
	case found < successThreshold:
		return ResultPartial
	default:
		return ResultSuccess
	}
}

func (s *Server) writeError(c *gin.Context, err error) {
	reqID := common.RequestIDFromContext(c.Request.Context())
	status := http.StatusInternalServerError
	msg := "internal error"
	switch {
	case errors.Is(err, common.ErrNotFound):
		status, msg = http.StatusNotFound, "not found"
	case errors.Is(err, common.ErrInvalidDocument):
		status, msg = http.StatusUnprocessableEntity, "document could not be read"
	case errors.Is(err, common.ErrProtectedDocument):
		status, msg = http.StatusUnprocessableEntity, "document is password protected"
	case errors.Is(err, common.ErrInvalidInput):
		status, msg = http.StatusBadRequest, "invalid input"
	}
	var appErr *common.AppError
	if errors.As(err, &appErr) && appErr.Message != "" && status != http.StatusInternalServerError {
		msg = appErr.Message
	}
	s.log.Warn("http.request.failed", "req_id", reqID, "status", status, "err", err)
	c.JSON(status, gin.H{"error": msg, "requestId": reqID})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http.listen", "addr", s.cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
