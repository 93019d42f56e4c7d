package models

import (
	"time"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Body struct {
		Status  string    `json:"status" example:"healthy" doc:"Service health status"`
		Version string    `json:"version" example:"1.0.0" doc:"API version"`
		Time    time.Time `json:"time" doc:"Current server time"`
	}
}

// PlotModeInfo describes one selectable plot mode
type PlotModeInfo struct {
	Mode  PlotMode  `json:"mode" doc:"Plot mode identifier"`
	Label string    `json:"label" doc:"Display label"`
	Sweep SweepKind `json:"sweep" doc:"Sweep kind feeding the chart"`
}

// ListPlotModesResponse lists the available plot modes
type ListPlotModesResponse struct {
	Body struct {
		Modes []PlotModeInfo `json:"modes" doc:"Available plot modes"`
	}
}

// CalculateRequest represents a request for a single Reynolds number
type CalculateRequest struct {
	Body InputParameters
}

// CalculateResponseBody is the body of the calculate response
type CalculateResponseBody struct {
	Parameters InputParameters `json:"parameters" doc:"Inputs the result was computed from"`
	Re         float64         `json:"re" doc:"Reynolds number"`
	Display    string          `json:"display" example:"Re = 0.457143" doc:"Result formatted to six decimals"`
}

// CalculateResponse represents the calculate response
type CalculateResponse struct {
	Body CalculateResponseBody
}

// SweepRequest represents a request for an unguarded parameter sweep
type SweepRequest struct {
	Body struct {
		Parameters InputParameters `json:"parameters" doc:"Fixed inputs of the sweep"`
		Kind       SweepKind       `json:"kind" enum:"v,phi,grid" doc:"Which inputs to vary"`
	}
}

// SweepPoint is a sweep sample on the wire. Re is null when the fixed
// inputs make it undefined.
type SweepPoint struct {
	Velocity float64  `json:"v" doc:"Seepage velocity v in cm/s"`
	Porosity float64  `json:"phi" doc:"Porosity φ"`
	Re       *float64 `json:"re" doc:"Reynolds number, null when not finite"`
}

// SweepResponseBody is the body of a sweep response
type SweepResponseBody struct {
	Kind    SweepKind    `json:"kind" doc:"Sweep kind"`
	Columns []string     `json:"columns" doc:"Table columns of the exported data"`
	Count   int          `json:"count" doc:"Number of samples"`
	Samples []SweepPoint `json:"samples" doc:"Samples in table order"`
}

// SweepResponse represents a sweep response
type SweepResponse struct {
	Body SweepResponseBody
}

// CreateSessionBody carries optional initial values for a new session
type CreateSessionBody struct {
	Parameters *InputParameters `json:"parameters,omitempty" doc:"Initial inputs, defaults when omitted"`
	Mode       PlotMode         `json:"mode,omitempty" enum:"velocity,porosity,heatmap,contour" doc:"Initial plot mode"`
}

// CreateSessionRequest represents a request to start a calculator session
type CreateSessionRequest struct {
	Body *CreateSessionBody `required:"false"`
}

// SessionRequest addresses a single session
type SessionRequest struct {
	ID string `path:"id" doc:"Session ID"`
}

// UpdateSessionRequest replaces the inputs and/or the plot mode of a session
type UpdateSessionRequest struct {
	ID   string `path:"id" doc:"Session ID"`
	Body struct {
		Parameters *InputParameters `json:"parameters,omitempty" doc:"New inputs"`
		Mode       PlotMode         `json:"mode,omitempty" enum:"velocity,porosity,heatmap,contour" doc:"New plot mode"`
	}
}

// SessionState is the render pass of a session as returned to clients
type SessionState struct {
	ID         string          `json:"id" doc:"Session ID"`
	Parameters InputParameters `json:"parameters" doc:"Current inputs"`
	Mode       PlotMode        `json:"mode" doc:"Current plot mode"`
	ModeLabel  string          `json:"mode_label" doc:"Display label of the plot mode"`
	Valid      bool            `json:"valid" doc:"Whether the inputs pass the positivity check"`
	Re         *float64        `json:"re,omitempty" doc:"Reynolds number when inputs are valid"`
	Display    string          `json:"display,omitempty" example:"Re = 0.457143" doc:"Result formatted to six decimals"`
	Warning    string          `json:"warning,omitempty" doc:"Why no result was produced"`
	CreatedAt  time.Time       `json:"created_at" doc:"Session creation time"`
	UpdatedAt  time.Time       `json:"updated_at" doc:"Last change to the session"`
}

// SessionResponse represents the current state of a session
type SessionResponse struct {
	Body SessionState
}

// FileResponse is a binary download
type FileResponse struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// ExportKind identifies one of the downloadable artifacts
type ExportKind string

const (
	ExportChart ExportKind = "chart"
	ExportTable ExportKind = "table"
	ExportWord  ExportKind = "word"
	ExportPDF   ExportKind = "pdf"
)

// PublishExportRequest asks for an export to be stored in object storage
type PublishExportRequest struct {
	ID   string `path:"id" doc:"Session ID"`
	Body struct {
		Kind ExportKind `json:"kind" enum:"chart,table,word,pdf" doc:"Artifact to publish"`
	}
}

// PublishExportResponseBody is the body of the publish response
type PublishExportResponseBody struct {
	Key         string `json:"key" doc:"Object key"`
	FileName    string `json:"file_name" doc:"Download file name"`
	DownloadURL string `json:"download_url" doc:"Pre-signed download URL"`
	ExpiresIn   int    `json:"expires_in" doc:"URL expiration time in seconds"`
}

// PublishExportResponse represents the publish response
type PublishExportResponse struct {
	Body PublishExportResponseBody
}

// Session is the calculator state kept between requests (for internal use)
type Session struct {
	ID         string          `json:"id"`
	Parameters InputParameters `json:"parameters"`
	Mode       PlotMode        `json:"mode"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
