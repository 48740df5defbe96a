// Package http provides http transport for replays
package http

import (
	stdhttp "net/http"

	"rdtlog/internal/adapters/logsource"
	"rdtlog/internal/modkit/httpkit"
	perr "rdtlog/internal/platform/errors"
	"rdtlog/internal/services/api/replay/domain"
)

// Register mounts replay endpoints. maxLogBytes sizes the request body limit;
// JSON escaping can double a log, so the body may be twice as large
func Register(r httpkit.Router, s domain.ServicePort, maxLogBytes int64) {
	h := &handlers{svc: s}

	opts := httpkit.DefaultJSONOptions()
	if maxLogBytes > 0 {
		opts.MaxBytes = 2*maxLogBytes + 4<<10
	}

	httpkit.PostJSON(r, "/", h.replay, opts)
	httpkit.PostJSON(r, "/source", h.source)
	httpkit.Get(r, "/stations", h.stations)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /replay Replay replayLog
// @Summary Replay an inline receiver log
// @Tags Replay
// @Accept json
// @Produce json,plain
// @Param payload body domain.Request true "Log"
// @Param format query string false "text for text/plain output"
// @Success 200 {object} domain.Result "ok"
// @Router /replay [post]
func (h *handlers) replay(r *stdhttp.Request, in domain.Request) (any, error) {
	res, err := h.svc.Replay(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return render(r, res), nil
}

// swagger:route POST /replay/source Replay replaySource
// @Summary Replay a log fetched from an http(s) URL
// @Tags Replay
// @Accept json
// @Produce json,plain
// @Param payload body domain.SourceRequest true "Source"
// @Success 200 {object} domain.Result "ok"
// @Router /replay/source [post]
func (h *handlers) source(r *stdhttp.Request, in domain.SourceRequest) (any, error) {
	if logsource.KindOf(in.Ref) != logsource.KindHTTP {
		return nil, perr.WithField(perr.Forbiddenf("only http(s) sources can be replayed over the API"), "ref")
	}
	res, err := h.svc.ReplaySource(r.Context(), in.Station, in.Ref)
	if err != nil {
		return nil, err
	}
	return render(r, res), nil
}

// swagger:route GET /replay/stations Replay replayStations
// @Summary List station tables
// @Tags Replay
// @Produce json
// @Success 200 {array} domain.StationInfo "ok"
// @Router /replay/stations [get]
func (h *handlers) stations(_ *stdhttp.Request) (any, error) {
	return h.svc.Stations(), nil
}

// render honours ?format=text
func render(r *stdhttp.Request, res domain.Result) any {
	if r.URL.Query().Get("format") == "text" {
		return httpkit.Text(res.Lines)
	}
	return res
}
