package server

import (
	"github.com/katalvlaran/flowtrace/flow"
	"github.com/katalvlaran/flowtrace/network"
)

// APIResponse is the envelope of every response body. Code is 0 on success and
// the HTTP status otherwise.
type APIResponse[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

// NewSuccessResponse wraps data in a success envelope.
func NewSuccessResponse[T any](data T) APIResponse[T] {
	return APIResponse[T]{
		Code:    0,
		Message: "success",
		Data:    data,
	}
}

// NewErrorResponse builds an error envelope without data.
func NewErrorResponse(code int, message string) APIResponse[any] {
	return APIResponse[any]{
		Code:    code,
		Message: message,
	}
}

// TraceRequest is the body of POST /api/v1/traces. An empty Algorithm selects
// the configured default.
type TraceRequest struct {
	Algorithm string           `json:"algorithm"`
	Network   network.Document `json:"network"`
}

// CompareRequest is the body of POST /api/v1/compare.
type CompareRequest struct {
	Network network.Document `json:"network"`
}

// CompareResponse reports a comparison and the IDs under which its three
// traces were stored.
type CompareResponse struct {
	Graph     flow.GraphProperties      `json:"graph"`
	Summaries []flow.Summary            `json:"summaries"`
	Agree     bool                      `json:"agree"`
	TraceIDs  map[flow.Algorithm]string `json:"traceIds"`
}

// PresetSummary describes one built-in network.
type PresetSummary struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Sink   string `json:"sink"`
	Edges  int    `json:"edges"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
	Stored  int    `json:"stored"`
}
