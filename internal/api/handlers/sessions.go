package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RMahshie/reynolds/internal/export"
	"github.com/RMahshie/reynolds/internal/repository"
	"github.com/RMahshie/reynolds/pkg/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// CreateSession starts a calculator session with default or given inputs
func (h *ReynoldsHandler) CreateSession(ctx context.Context, req *models.CreateSessionRequest) (*models.SessionResponse, error) {
	now := time.Now()
	session := &models.Session{
		ID:         uuid.New().String(),
		Parameters: models.DefaultInputParameters(),
		Mode:       models.PlotVelocity,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.Body != nil {
		if req.Body.Parameters != nil {
			session.Parameters = *req.Body.Parameters
		}
		if req.Body.Mode != "" {
			session.Mode = req.Body.Mode
		}
	}
	if !session.Mode.Valid() {
		return nil, huma.Error400BadRequest("Unknown plot mode", fmt.Errorf("plot mode %q", session.Mode))
	}

	if err := h.repo.Create(ctx, session); err != nil {
		return nil, huma.Error500InternalServerError("Failed to create session", err)
	}
	log.Info().Str("sessionID", session.ID).Str("mode", string(session.Mode)).Msg("Session created")

	return h.sessionResponse(ctx, session)
}

// GetSession returns the current render pass of a session
func (h *ReynoldsHandler) GetSession(ctx context.Context, req *models.SessionRequest) (*models.SessionResponse, error) {
	session, err := h.loadSession(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return h.sessionResponse(ctx, session)
}

// UpdateSession replaces the inputs and/or plot mode, then recomputes
func (h *ReynoldsHandler) UpdateSession(ctx context.Context, req *models.UpdateSessionRequest) (*models.SessionResponse, error) {
	session, err := h.loadSession(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Body.Parameters != nil {
		session.Parameters = *req.Body.Parameters
	}
	if req.Body.Mode != "" {
		if !req.Body.Mode.Valid() {
			return nil, huma.Error400BadRequest("Unknown plot mode", fmt.Errorf("plot mode %q", req.Body.Mode))
		}
		session.Mode = req.Body.Mode
	}
	session.UpdatedAt = time.Now()

	if err := h.repo.Update(ctx, session); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, huma.Error404NotFound("Session not found", err)
		}
		return nil, huma.Error500InternalServerError("Failed to update session", err)
	}
	log.Info().Str("sessionID", session.ID).Str("mode", string(session.Mode)).Msg("Session updated")

	return h.sessionResponse(ctx, session)
}

// DeleteSession ends a session
func (h *ReynoldsHandler) DeleteSession(ctx context.Context, req *models.SessionRequest) (*struct{}, error) {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid session ID", err)
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, huma.Error404NotFound("Session not found", err)
		}
		return nil, huma.Error500InternalServerError("Failed to delete session", err)
	}
	log.Info().Str("sessionID", req.ID).Msg("Session deleted")

	h.purgeExports(ctx, req.ID)

	return nil, nil
}

// purgeExports removes objects published for a session. Failures are logged
// only: the session is already gone and the presigned URLs expire anyway.
func (h *ReynoldsHandler) purgeExports(ctx context.Context, sessionID string) {
	if h.s3Service == nil {
		return
	}

	keys, err := h.s3Service.ListFiles(ctx, exportPrefix(sessionID))
	if err != nil {
		log.Warn().Err(err).Str("sessionID", sessionID).Msg("Failed to list published exports")
		return
	}
	for _, key := range keys {
		if err := h.s3Service.DeleteFile(ctx, key); err != nil {
			log.Warn().Err(err).Str("sessionID", sessionID).Str("key", key).Msg("Failed to delete published export")
		}
	}
	if len(keys) > 0 {
		log.Info().Str("sessionID", sessionID).Int("count", len(keys)).Msg("Published exports deleted")
	}
}

func exportPrefix(sessionID string) string {
	return "exports/" + sessionID + "/"
}

// GetSessionSweep returns the dataset behind the session's chart
func (h *ReynoldsHandler) GetSessionSweep(ctx context.Context, req *models.SessionRequest) (*models.SweepResponse, error) {
	pass, err := h.validPass(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &models.SweepResponse{Body: sweepBody(pass.Dataset)}, nil
}

// DownloadChart returns the chart as a PNG attachment
func (h *ReynoldsHandler) DownloadChart(ctx context.Context, req *models.SessionRequest) (*models.FileResponse, error) {
	return h.download(ctx, req.ID, models.ExportChart)
}

// DownloadTable returns the sweep data as an XLSX attachment
func (h *ReynoldsHandler) DownloadTable(ctx context.Context, req *models.SessionRequest) (*models.FileResponse, error) {
	return h.download(ctx, req.ID, models.ExportTable)
}

// DownloadWordReport returns the DOCX report
func (h *ReynoldsHandler) DownloadWordReport(ctx context.Context, req *models.SessionRequest) (*models.FileResponse, error) {
	return h.download(ctx, req.ID, models.ExportWord)
}

// DownloadPDFReport returns the PDF report
func (h *ReynoldsHandler) DownloadPDFReport(ctx context.Context, req *models.SessionRequest) (*models.FileResponse, error) {
	return h.download(ctx, req.ID, models.ExportPDF)
}

// PublishExport uploads an export to object storage and returns a
// pre-signed download URL
func (h *ReynoldsHandler) PublishExport(ctx context.Context, req *models.PublishExportRequest) (*models.PublishExportResponse, error) {
	if h.s3Service == nil {
		return nil, huma.Error503ServiceUnavailable("Export publishing is not configured")
	}

	pass, err := h.validPass(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	file, err := h.buildExport(pass, req.Body.Kind)
	if err != nil {
		return nil, err
	}

	key := exportPrefix(req.ID) + uuid.New().String() + "/" + file.Name
	log.Info().Str("sessionID", req.ID).Str("key", key).Int("bytes", len(file.Data)).Msg("Publishing export")
	if err := h.s3Service.UploadFile(ctx, key, file.ContentType, file.Data); err != nil {
		return nil, huma.Error500InternalServerError("Failed to store export", err)
	}

	url, err := h.s3Service.GenerateDownloadURL(ctx, key)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to prepare download", err)
	}

	return &models.PublishExportResponse{
		Body: models.PublishExportResponseBody{
			Key:         key,
			FileName:    file.Name,
			DownloadURL: url,
			ExpiresIn:   int(h.s3Service.URLExpiry().Seconds()),
		},
	}, nil
}

func (h *ReynoldsHandler) loadSession(ctx context.Context, rawID string) (*models.Session, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid session ID", err)
	}

	session, err := h.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, huma.Error404NotFound("Session not found", err)
		}
		return nil, huma.Error500InternalServerError("Failed to load session", err)
	}
	return session, nil
}

func (h *ReynoldsHandler) renderPass(ctx context.Context, session *models.Session) (*models.RenderPass, error) {
	pass, err := h.processingSvc.RenderPass(ctx, session.Parameters, session.Mode)
	if err != nil {
		log.Error().Err(err).Str("sessionID", session.ID).Msg("Render pass failed")
		return nil, huma.Error500InternalServerError("Failed to compute session state", err)
	}
	return pass, nil
}

// validPass loads a session and recomputes it, answering 409 when the
// inputs fail the guard
func (h *ReynoldsHandler) validPass(ctx context.Context, rawID string) (*models.RenderPass, error) {
	session, err := h.loadSession(ctx, rawID)
	if err != nil {
		return nil, err
	}
	pass, err := h.renderPass(ctx, session)
	if err != nil {
		return nil, err
	}
	if !pass.Valid {
		return nil, huma.Error409Conflict(pass.Warning)
	}
	return pass, nil
}

func (h *ReynoldsHandler) sessionResponse(ctx context.Context, session *models.Session) (*models.SessionResponse, error) {
	pass, err := h.renderPass(ctx, session)
	if err != nil {
		return nil, err
	}

	state := models.SessionState{
		ID:         session.ID,
		Parameters: session.Parameters,
		Mode:       session.Mode,
		ModeLabel:  session.Mode.Label(),
		Valid:      pass.Valid,
		Re:         pass.Re,
		Warning:    pass.Warning,
		CreatedAt:  session.CreatedAt,
		UpdatedAt:  session.UpdatedAt,
	}
	if pass.Re != nil {
		state.Display = displayRe(*pass.Re)
	}
	return &models.SessionResponse{Body: state}, nil
}

func (h *ReynoldsHandler) download(ctx context.Context, rawID string, kind models.ExportKind) (*models.FileResponse, error) {
	pass, err := h.validPass(ctx, rawID)
	if err != nil {
		return nil, err
	}
	file, err := h.buildExport(pass, kind)
	if err != nil {
		return nil, err
	}

	log.Info().Str("sessionID", rawID).Str("kind", string(kind)).Int("bytes", len(file.Data)).Msg("Serving export")
	return &models.FileResponse{
		ContentType:        file.ContentType,
		ContentDisposition: file.ContentDisposition(),
		Body:               file.Data,
	}, nil
}

// buildExport renders the chart and encodes the requested artifact
func (h *ReynoldsHandler) buildExport(pass *models.RenderPass, kind models.ExportKind) (*export.File, error) {
	var (
		file *export.File
		err  error
	)

	if kind == models.ExportTable {
		file, err = h.exporter.Table(pass.Dataset, pass.Mode)
		if err != nil {
			return nil, huma.Error500InternalServerError("Failed to export table", err)
		}
		return file, nil
	}

	png, err := h.renderer.Render(pass)
	if err != nil {
		log.Error().Err(err).Str("mode", string(pass.Mode)).Msg("Chart rendering failed")
		return nil, huma.Error500InternalServerError("Failed to render chart", err)
	}

	switch kind {
	case models.ExportChart:
		return h.exporter.Chart(png, pass.Mode), nil
	case models.ExportWord, models.ExportPDF:
		report, err := export.NewReport(pass, png)
		if err != nil {
			return nil, huma.Error500InternalServerError("Failed to assemble report", err)
		}
		if kind == models.ExportWord {
			file, err = h.exporter.WordReport(report)
		} else {
			file, err = h.exporter.PDFReport(report)
		}
		if err != nil {
			log.Error().Err(err).Str("kind", string(kind)).Msg("Report encoding failed")
			return nil, huma.Error500InternalServerError("Failed to export report", err)
		}
		return file, nil
	}

	return nil, huma.Error400BadRequest("Unknown export kind", fmt.Errorf("export kind %q", kind))
}
