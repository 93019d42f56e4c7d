package api

import (
	"context"
	"net/http"
	"time"

	"github.com/RMahshie/reynolds/internal/api/handlers"
	"github.com/RMahshie/reynolds/internal/charts"
	"github.com/RMahshie/reynolds/internal/export"
	"github.com/RMahshie/reynolds/internal/processing"
	"github.com/RMahshie/reynolds/internal/repository"
	"github.com/RMahshie/reynolds/internal/storage"
	"github.com/RMahshie/reynolds/pkg/models"
	"github.com/danielgtaylor/huma/v2"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// RegisterHealth registers the health check endpoint
func RegisterHealth(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns the health status of the service",
	}, func(ctx context.Context, input *struct{}) (*models.HealthResponse, error) {
		resp := &models.HealthResponse{}
		resp.Body.Status = "healthy"
		resp.Body.Version = Version
		resp.Body.Time = time.Now()
		return resp, nil
	})
}

// RegisterRoutes sets up all API routes. s3Service may be nil.
func RegisterRoutes(api huma.API, sessionRepo repository.SessionRepository, s3Service storage.S3Service, processingSvc processing.ProcessingService, renderer charts.Renderer, exporter export.Exporter) {
	// Initialize handlers
	h := handlers.NewReynoldsHandler(sessionRepo, s3Service, processingSvc, renderer, exporter)

	// Stateless calculator routes
	huma.Register(api, huma.Operation{
		OperationID: "listPlotModes",
		Method:      http.MethodGet,
		Path:        "/api/plot-modes",
		Summary:     "List plot modes",
		Description: "Returns the available plot modes with their labels and sweep kinds",
		Tags:        []string{"Reynolds"},
	}, h.ListPlotModes)

	huma.Register(api, huma.Operation{
		OperationID: "calculateReynolds",
		Method:      http.MethodPost,
		Path:        "/api/reynolds/calculate",
		Summary:     "Calculate Reynolds number",
		Description: "Evaluates the seepage Reynolds number; all inputs must be positive",
		Tags:        []string{"Reynolds"},
	}, h.Calculate)

	huma.Register(api, huma.Operation{
		OperationID: "sweepReynolds",
		Method:      http.MethodPost,
		Path:        "/api/reynolds/sweep",
		Summary:     "Sweep Reynolds number",
		Description: "Samples the Reynolds number over velocity, porosity or both. Undefined values are null.",
		Tags:        []string{"Reynolds"},
	}, h.Sweep)

	// Session routes
	huma.Register(api, huma.Operation{
		OperationID:   "createSession",
		Method:        http.MethodPost,
		Path:          "/api/sessions",
		Summary:       "Create a calculator session",
		Description:   "Starts a session with default or given inputs and returns its state",
		Tags:          []string{"Sessions"},
		DefaultStatus: http.StatusCreated,
	}, h.CreateSession)

	huma.Register(api, huma.Operation{
		OperationID: "getSession",
		Method:      http.MethodGet,
		Path:        "/api/sessions/{id}",
		Summary:     "Get session state",
		Description: "Returns the result or warning for the session's current inputs",
		Tags:        []string{"Sessions"},
	}, h.GetSession)

	huma.Register(api, huma.Operation{
		OperationID: "updateSession",
		Method:      http.MethodPut,
		Path:        "/api/sessions/{id}",
		Summary:     "Update session",
		Description: "Replaces the inputs and/or plot mode and recomputes",
		Tags:        []string{"Sessions"},
	}, h.UpdateSession)

	huma.Register(api, huma.Operation{
		OperationID:   "deleteSession",
		Method:        http.MethodDelete,
		Path:          "/api/sessions/{id}",
		Summary:       "Delete session",
		Tags:          []string{"Sessions"},
		DefaultStatus: http.StatusNoContent,
	}, h.DeleteSession)

	huma.Register(api, huma.Operation{
		OperationID: "getSessionSweep",
		Method:      http.MethodGet,
		Path:        "/api/sessions/{id}/sweep",
		Summary:     "Get session dataset",
		Description: "Returns the sweep behind the session's chart",
		Tags:        []string{"Sessions"},
	}, h.GetSessionSweep)

	// Export routes
	huma.Register(api, huma.Operation{
		OperationID: "downloadChart",
		Method:      http.MethodGet,
		Path:        "/api/sessions/{id}/chart",
		Summary:     "Download chart",
		Description: "Returns the session chart as a PNG",
		Tags:        []string{"Exports"},
	}, h.DownloadChart)

	huma.Register(api, huma.Operation{
		OperationID: "downloadTable",
		Method:      http.MethodGet,
		Path:        "/api/sessions/{id}/table",
		Summary:     "Download data table",
		Description: "Returns the session sweep as an Excel workbook",
		Tags:        []string{"Exports"},
	}, h.DownloadTable)

	huma.Register(api, huma.Operation{
		OperationID: "downloadWordReport",
		Method:      http.MethodGet,
		Path:        "/api/sessions/{id}/report/word",
		Summary:     "Download Word report",
		Tags:        []string{"Exports"},
	}, h.DownloadWordReport)

	huma.Register(api, huma.Operation{
		OperationID: "downloadPDFReport",
		Method:      http.MethodGet,
		Path:        "/api/sessions/{id}/report/pdf",
		Summary:     "Download PDF report",
		Tags:        []string{"Exports"},
	}, h.DownloadPDFReport)

	huma.Register(api, huma.Operation{
		OperationID: "publishExport",
		Method:      http.MethodPost,
		Path:        "/api/sessions/{id}/exports",
		Summary:     "Publish an export",
		Description: "Uploads an export to object storage and returns a pre-signed download URL",
		Tags:        []string{"Exports"},
	}, h.PublishExport)
}
