package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/katalvlaran/flowtrace/flow"
	"github.com/katalvlaran/flowtrace/network"
)

var errTraceNotFound = errors.New("server: trace not found")

// Handler serves the trace API over a Store.
type Handler struct {
	store      *Store
	algorithm  flow.Algorithm
	flowOpts   flow.FlowOptions
	duplicates network.DuplicatePolicy
	version    string
	startTime  time.Time
	log        zerolog.Logger
}

// Health reports liveness.
// GET /healthz
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, NewSuccessResponse(HealthResponse{
		Status:  "healthy",
		Version: h.version,
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
		Stored:  h.store.Len(),
	}))
}

// CreateTrace runs one engine on the posted network and stores the trace.
// POST /api/v1/traces
func (h *Handler) CreateTrace(c *gin.Context) {
	var req TraceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, fmt.Errorf("%w: %v", network.ErrMalformedDocument, err))
		return
	}
	alg := h.algorithm
	if req.Algorithm != "" {
		var err error
		if alg, err = flow.ParseAlgorithm(req.Algorithm); err != nil {
			h.fail(c, err)
			return
		}
	}
	nw, err := req.Network.Build(network.WithDuplicatePolicy(h.duplicates))
	if err != nil {
		h.fail(c, err)
		return
	}

	tr, err := flow.Run(alg, nw, req.Network.Source, req.Network.Sink, flow.WithOptions(h.flowOpts))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.keep(tr)
	c.JSON(http.StatusCreated, NewSuccessResponse(tr))
}

// GetTrace returns a stored trace.
// GET /api/v1/traces/:id
func (h *Handler) GetTrace(c *gin.Context) {
	tr, ok := h.store.Get(c.Param("id"))
	if !ok {
		h.fail(c, fmt.Errorf("%w: %q", errTraceNotFound, c.Param("id")))
		return
	}
	c.JSON(http.StatusOK, NewSuccessResponse(tr))
}

// GetStep returns the view of one record; index -1 is the initial network.
// GET /api/v1/traces/:id/steps/:index
func (h *Handler) GetStep(c *gin.Context) {
	tr, ok := h.store.Get(c.Param("id"))
	if !ok {
		h.fail(c, fmt.Errorf("%w: %q", errTraceNotFound, c.Param("id")))
		return
	}
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, fmt.Sprintf("step index %q is not an integer", c.Param("index"))))
		return
	}
	v, err := tr.At(i)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSuccessResponse(v))
}

// Compare runs every engine on the posted network and stores the traces.
// POST /api/v1/compare
func (h *Handler) Compare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, fmt.Errorf("%w: %v", network.ErrMalformedDocument, err))
		return
	}
	nw, err := req.Network.Build(network.WithDuplicatePolicy(h.duplicates))
	if err != nil {
		h.fail(c, err)
		return
	}
	cmp, err := flow.Compare(nw, req.Network.Source, req.Network.Sink, flow.WithOptions(h.flowOpts))
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := CompareResponse{
		Graph:     cmp.Graph,
		Summaries: cmp.Summaries,
		Agree:     cmp.Agree(),
		TraceIDs:  make(map[flow.Algorithm]string, len(cmp.Traces)),
	}
	for _, tr := range cmp.Traces {
		h.keep(tr)
		resp.TraceIDs[tr.Algorithm] = tr.ID
	}
	c.JSON(http.StatusOK, NewSuccessResponse(resp))
}

// ListPresets lists the built-in networks.
// GET /api/v1/presets
func (h *Handler) ListPresets(c *gin.Context) {
	names := network.PresetNames()
	out := make([]PresetSummary, 0, len(names))
	for _, name := range names {
		doc, err := network.Preset(name)
		if err != nil {
			h.fail(c, err)
			return
		}
		out = append(out, PresetSummary{Name: name, Source: doc.Source, Sink: doc.Sink, Edges: len(doc.Edges)})
	}
	c.JSON(http.StatusOK, NewSuccessResponse(out))
}

// GetPreset returns one built-in network document.
// GET /api/v1/presets/:name
func (h *Handler) GetPreset(c *gin.Context) {
	doc, err := network.Preset(c.Param("name"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSuccessResponse(doc))
}

func (h *Handler) keep(tr *flow.Trace) {
	if evicted := h.store.Put(tr); evicted != "" {
		h.log.Debug().Str("trace_id", evicted).Msg("trace evicted")
	}
	h.log.Info().
		Str("trace_id", tr.ID).
		Str("algorithm", string(tr.Algorithm)).
		Int("steps", tr.Len()).
		Int64("max_flow", tr.MaxFlow()).
		Msg("trace stored")
}

// fail writes the error envelope with the status statusFor assigns to err.
func (h *Handler) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	c.JSON(status, NewErrorResponse(status, err.Error()))
}

// statusFor maps domain errors onto HTTP statuses:
// malformed input 400, unknown resource 404, step budget or node limit 422,
// anything else 500.
func statusFor(err error) int {
	var (
		edgeErr      network.EdgeError
		invariantErr *flow.InvariantError
	)
	switch {
	case errors.As(err, &invariantErr):
		return http.StatusInternalServerError
	case errors.Is(err, flow.ErrStepBudgetExceeded),
		errors.Is(err, flow.ErrNetworkTooLarge):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errTraceNotFound),
		errors.Is(err, network.ErrPresetNotFound),
		errors.Is(err, flow.ErrStepOutOfRange):
		return http.StatusNotFound
	case errors.As(err, &edgeErr),
		errors.Is(err, network.ErrMalformedDocument),
		errors.Is(err, network.ErrEmptyNodeID),
		errors.Is(err, network.ErrInvalidNodeID),
		errors.Is(err, network.ErrSelfLoop),
		errors.Is(err, network.ErrDuplicateEdge),
		errors.Is(err, network.ErrNoEdges),
		errors.Is(err, network.ErrNodeNotFound),
		errors.Is(err, flow.ErrSourceNotFound),
		errors.Is(err, flow.ErrSinkNotFound),
		errors.Is(err, flow.ErrSourceIsSink),
		errors.Is(err, flow.ErrUnknownAlgorithm),
		errors.Is(err, flow.ErrOptionViolation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
