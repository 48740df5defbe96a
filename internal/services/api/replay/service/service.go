// Package service contains replay workflows
package service

import (
	"context"
	"strings"
	"time"

	"rdtlog/internal/adapters/logsource"
	"rdtlog/internal/core/normalize"
	"rdtlog/internal/core/replay"
	"rdtlog/internal/core/station"
	"rdtlog/internal/platform/config"
	perr "rdtlog/internal/platform/errors"
	"rdtlog/internal/platform/logger"
	pnet "rdtlog/internal/platform/net"
	"rdtlog/internal/services/api/replay/domain"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// Stats is the engine's counter set
type Stats = replay.Stats

// Service defines the replay service contract
type Service interface {
	domain.ServicePort
}

// Options tune the service
type Options struct {
	// DefaultStation is used when a request names none
	DefaultStation string
	// MaxLogBytes caps inline and fetched logs
	MaxLogBytes int64
	// FetchTimeout bounds one remote fetch
	FetchTimeout time.Duration
	// AllowRemote enables http(s) refs for ReplaySource
	AllowRemote bool
}

// OptionsFromConfig reads CORE_REPLAY_* keys
func OptionsFromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_REPLAY_")
	return Options{
		DefaultStation: c.MayEnum("DEFAULT_STATION", station.DCF77.String(), station.Names()...),
		MaxLogBytes:    c.MayBytes("MAX_LOG_BYTES", logsource.DefaultMaxBytes),
		FetchTimeout:   c.MayDuration("FETCH_TIMEOUT", 15*time.Second),
		AllowRemote:    c.MayBool("ALLOW_REMOTE", false),
	}
}

// Svc implements the replay service
type Svc struct {
	opt     Options
	catalog *station.Catalog
	norm    *normalize.Normalizer
	src     *logsource.Source
	metrics *Metrics
	newID   func() string
}

// New constructs a replay service. src may be nil, one is built from opt
func New(opt Options, catalog *station.Catalog, src *logsource.Source, m *Metrics) *Svc {
	if catalog == nil {
		panic("replay.Service requires a station catalog")
	}
	if opt.MaxLogBytes <= 0 {
		opt.MaxLogBytes = logsource.DefaultMaxBytes
	}
	if src == nil {
		src = logsource.New(logsource.Options{
			MaxBytes:    opt.MaxLogBytes,
			AllowRemote: opt.AllowRemote,
			Timeout:     opt.FetchTimeout,
		})
	}
	return &Svc{
		opt:     opt,
		catalog: catalog,
		norm:    normalize.New(),
		src:     src,
		metrics: m,
		newID:   uuid.NewString,
	}
}

// MaxLogBytes is the effective log size limit
func (s *Svc) MaxLogBytes() int64 { return s.opt.MaxLogBytes }

// Replay runs an inline log through the station's decoder
func (s *Svc) Replay(ctx context.Context, in domain.Request) (domain.Result, error) {
	st, err := s.station(in.Station)
	if err != nil {
		return domain.Result{}, perr.WithField(err, "station")
	}
	if int64(len(in.Log)) > s.opt.MaxLogBytes {
		return domain.Result{}, perr.WithField(
			perr.TooLargef("log exceeds %s", humanize.IBytes(uint64(s.opt.MaxLogBytes))), "log")
	}
	return s.run(ctx, st, in.Log)
}

// ReplaySource reads ref through the log source and replays it
func (s *Svc) ReplaySource(ctx context.Context, stationName, ref string) (domain.Result, error) {
	st, err := s.station(stationName)
	if err != nil {
		return domain.Result{}, perr.WithField(err, "station")
	}
	data, info, err := s.src.Read(ctx, ref)
	if err != nil {
		return domain.Result{}, perr.WithField(err, "ref")
	}
	logger.C(ctx).Debug().Str("source", info.String()).Msg("replay: source read")
	return s.run(ctx, st, string(data))
}

// Stations lists the catalog in table order
func (s *Svc) Stations() []domain.StationInfo {
	all := s.catalog.All()
	out := make([]domain.StationInfo, 0, len(all))
	for _, st := range all {
		out = append(out, domain.StationInfo{
			ID:            st.ID.String(),
			Name:          st.Name,
			Encoding:      st.Encoding.String(),
			NominalLength: st.NominalLength,
			Alphabet:      string(st.Alphabet()),
		})
	}
	return out
}

func (s *Svc) station(name string) (*station.Station, error) {
	if strings.TrimSpace(name) == "" {
		name = s.opt.DefaultStation
	}
	return s.catalog.Lookup(name)
}

func (s *Svc) run(ctx context.Context, st *station.Station, raw string) (domain.Result, error) {
	start := time.Now()
	runID := s.newID()
	ctx = pnet.WithRun(ctx, runID)

	text := s.norm.Normalize(raw)
	lines, stats, err := replay.Run(st, text)
	s.metrics.observe(st.ID.String(), len(text), stats, err)

	l := logger.C(ctx)
	if err != nil {
		l.Error().Err(err).Str("station", st.ID.String()).Int("characters", stats.Characters).Msg("replay: aborted")
		return domain.Result{}, perr.WithOp(err, "replay.run")
	}
	l.Info().
		Str("station", st.ID.String()).
		Str("size", humanize.IBytes(uint64(len(text)))).
		Int("minutes", stats.Minutes).
		Int("decoded", stats.Decoded).
		Int("mismatched", stats.Mismatched).
		Int("overflows", stats.Overflows).
		Dur("took", time.Since(start)).
		Msg("replay: done")

	if lines == nil {
		lines = []string{}
	}
	return domain.Result{RunID: runID, Station: st.ID.String(), Lines: lines, Stats: stats}, nil
}
