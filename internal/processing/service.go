package processing

import (
	"context"
	"errors"
	"fmt"

	"github.com/RMahshie/reynolds/pkg/models"
	"github.com/rs/zerolog/log"
)

type ProcessingService interface {
	Calculate(ctx context.Context, params models.InputParameters) (*models.Calculation, error)
	Sweep(ctx context.Context, params models.InputParameters, kind models.SweepKind) (*models.SweepDataset, error)
	RenderPass(ctx context.Context, params models.InputParameters, mode models.PlotMode) (*models.RenderPass, error)
}

type processingService struct{}

func NewProcessingService() ProcessingService {
	return &processingService{}
}

func (s *processingService) Calculate(ctx context.Context, params models.InputParameters) (*models.Calculation, error) {
	re, err := Calculate(params)
	if err != nil {
		return nil, err
	}
	return &models.Calculation{Parameters: params, Re: re}, nil
}

func (s *processingService) Sweep(ctx context.Context, params models.InputParameters, kind models.SweepKind) (*models.SweepDataset, error) {
	return Sweep(params, kind)
}

// RenderPass recomputes everything a client shows for the given inputs.
// A failed guard is not an error: the pass comes back invalid with a warning.
func (s *processingService) RenderPass(ctx context.Context, params models.InputParameters, mode models.PlotMode) (*models.RenderPass, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: plot mode %q", ErrUnknownSweep, mode)
	}

	pass := &models.RenderPass{Parameters: params, Mode: mode}

	re, err := Calculate(params)
	if errors.Is(err, ErrInvalidParameters) {
		log.Debug().Err(err).Str("mode", string(mode)).Msg("Render pass rejected by parameter guard")
		pass.Warning = InvalidParametersWarning
		return pass, nil
	}
	if err != nil {
		return nil, err
	}

	ds, err := Sweep(params, mode.Sweep())
	if err != nil {
		return nil, err
	}

	pass.Valid = true
	pass.Re = &re
	pass.Dataset = ds
	return pass, nil
}
