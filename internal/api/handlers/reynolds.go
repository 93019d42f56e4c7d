package handlers

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/RMahshie/reynolds/internal/charts"
	"github.com/RMahshie/reynolds/internal/export"
	"github.com/RMahshie/reynolds/internal/processing"
	"github.com/RMahshie/reynolds/internal/repository"
	"github.com/RMahshie/reynolds/internal/storage"
	"github.com/RMahshie/reynolds/pkg/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"
)

// ReynoldsHandler handles calculator HTTP requests
type ReynoldsHandler struct {
	repo          repository.SessionRepository
	s3Service     storage.S3Service
	processingSvc processing.ProcessingService
	renderer      charts.Renderer
	exporter      export.Exporter
}

// NewReynoldsHandler creates a new calculator handler. s3Service may be nil,
// in which case publishing exports is unavailable.
func NewReynoldsHandler(repo repository.SessionRepository, s3Service storage.S3Service, processingSvc processing.ProcessingService, renderer charts.Renderer, exporter export.Exporter) *ReynoldsHandler {
	return &ReynoldsHandler{
		repo:          repo,
		s3Service:     s3Service,
		processingSvc: processingSvc,
		renderer:      renderer,
		exporter:      exporter,
	}
}

// ListPlotModes returns every plot mode with its label and sweep kind
func (h *ReynoldsHandler) ListPlotModes(ctx context.Context, _ *struct{}) (*models.ListPlotModesResponse, error) {
	resp := &models.ListPlotModesResponse{}
	resp.Body.Modes = make([]models.PlotModeInfo, 0, len(models.PlotModes))
	for _, m := range models.PlotModes {
		resp.Body.Modes = append(resp.Body.Modes, models.PlotModeInfo{
			Mode:  m,
			Label: m.Label(),
			Sweep: m.Sweep(),
		})
	}
	return resp, nil
}

// Calculate evaluates the Reynolds number for one set of inputs
func (h *ReynoldsHandler) Calculate(ctx context.Context, req *models.CalculateRequest) (*models.CalculateResponse, error) {
	calc, err := h.processingSvc.Calculate(ctx, req.Body)
	if err != nil {
		if errors.Is(err, processing.ErrInvalidParameters) {
			log.Info().Err(err).Msg("Calculation rejected by parameter guard")
			return nil, huma.Error400BadRequest(processing.InvalidParametersWarning, err)
		}
		return nil, huma.Error500InternalServerError("Failed to calculate Reynolds number", err)
	}

	log.Info().Float64("re", calc.Re).Msg("Reynolds number calculated")
	return &models.CalculateResponse{
		Body: models.CalculateResponseBody{
			Parameters: calc.Parameters,
			Re:         calc.Re,
			Display:    displayRe(calc.Re),
		},
	}, nil
}

// Sweep samples the formula across a range without the positivity guard
func (h *ReynoldsHandler) Sweep(ctx context.Context, req *models.SweepRequest) (*models.SweepResponse, error) {
	ds, err := h.processingSvc.Sweep(ctx, req.Body.Parameters, req.Body.Kind)
	if err != nil {
		if errors.Is(err, processing.ErrUnknownSweep) {
			return nil, huma.Error400BadRequest("Unknown sweep kind", err)
		}
		return nil, huma.Error500InternalServerError("Failed to generate sweep", err)
	}

	log.Info().Str("kind", string(ds.Kind)).Int("samples", len(ds.Samples)).Msg("Sweep generated")
	return &models.SweepResponse{Body: sweepBody(ds)}, nil
}

func displayRe(re float64) string {
	return fmt.Sprintf("Re = %.6f", re)
}

// sweepBody converts a dataset to its wire form; non-finite values become null
func sweepBody(ds *models.SweepDataset) models.SweepResponseBody {
	points := make([]models.SweepPoint, len(ds.Samples))
	for i, s := range ds.Samples {
		points[i] = models.SweepPoint{Velocity: s.Velocity, Porosity: s.Porosity}
		if !math.IsNaN(s.Re) && !math.IsInf(s.Re, 0) {
			re := s.Re
			points[i].Re = &re
		}
	}
	return models.SweepResponseBody{
		Kind:    ds.Kind,
		Columns: ds.Columns(),
		Count:   len(points),
		Samples: points,
	}
}
