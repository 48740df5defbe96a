// Package logsource opens receiver logs from local files, stdin or http(s)
// URLs. Gzip input is detected by its magic bytes and decompressed on the fly;
// every source is capped at a byte limit
package logsource

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	perr "rdtlog/internal/platform/errors"
	"rdtlog/internal/platform/logger"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/gzip"
)

// DefaultMaxBytes caps a decompressed log
const DefaultMaxBytes int64 = 8 << 20

// Stdin is the ref that reads standard input
const Stdin = "-"

// Kind tells where a log came from
type Kind string

const (
	// KindFile is a local path
	KindFile Kind = "file"
	// KindStdin is standard input
	KindStdin Kind = "stdin"
	// KindHTTP is an http or https URL
	KindHTTP Kind = "http"
)

// Info describes a log that was read
type Info struct {
	Ref        string `json:"ref"`
	Kind       Kind   `json:"kind"`
	Compressed bool   `json:"compressed"`
	Bytes      int64  `json:"bytes"`
}

// Options configures a Source
type Options struct {
	// MaxBytes caps the decompressed size; <= 0 means DefaultMaxBytes
	MaxBytes int64
	// AllowRemote enables http(s) refs
	AllowRemote bool
	// Timeout bounds one http fetch; 0 keeps the client's own
	Timeout time.Duration
	// Client is used for http refs; nil builds one from Timeout
	Client *http.Client
	// Stdin backs the "-" ref; nil means os.Stdin
	Stdin io.Reader
}

// Source reads logs by reference
type Source struct {
	opt Options
}

// New returns a Source with defaults filled in
func New(opt Options) *Source {
	if opt.MaxBytes <= 0 {
		opt.MaxBytes = DefaultMaxBytes
	}
	if opt.Client == nil {
		opt.Client = &http.Client{Timeout: opt.Timeout}
	}
	if opt.Stdin == nil {
		opt.Stdin = os.Stdin
	}
	return &Source{opt: opt}
}

// MaxBytes is the effective size limit
func (s *Source) MaxBytes() int64 { return s.opt.MaxBytes }

// KindOf classifies a ref without opening it
func KindOf(ref string) Kind {
	switch {
	case ref == Stdin:
		return KindStdin
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return KindHTTP
	default:
		return KindFile
	}
}

// Read loads the whole log behind ref, decompressing gzip input
func (s *Source) Read(ctx context.Context, ref string) ([]byte, Info, error) {
	info := Info{Ref: ref, Kind: KindOf(ref)}
	rc, err := s.open(ctx, ref, info.Kind)
	if err != nil {
		return nil, info, err
	}
	defer func() { _ = rc.Close() }()

	data, compressed, err := ReadLimited(rc, s.opt.MaxBytes)
	info.Compressed = compressed
	info.Bytes = int64(len(data))
	if err != nil {
		return nil, info, perr.WithOp(err, "logsource.read")
	}

	l := logger.C(ctx)
	l.Debug().
		Str("ref", ref).
		Str("kind", string(info.Kind)).
		Bool("gzip", compressed).
		Str("size", humanize.IBytes(uint64(info.Bytes))).
		Msg("logsource: read")
	return data, info, nil
}

func (s *Source) open(ctx context.Context, ref string, kind Kind) (io.ReadCloser, error) {
	switch kind {
	case KindStdin:
		return io.NopCloser(s.opt.Stdin), nil
	case KindHTTP:
		if !s.opt.AllowRemote {
			return nil, perr.Forbiddenf("remote log sources are disabled: %s", ref)
		}
		return s.fetch(ctx, ref)
	}
	if strings.TrimSpace(ref) == "" {
		return nil, perr.InvalidArgf("empty log reference")
	}
	f, err := os.Open(ref)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, perr.NotFoundf("log file %s does not exist", ref)
	case err != nil:
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "open %s", ref)
	}
	return f, nil
}

func (s *Source) fetch(ctx context.Context, ref string) (io.ReadCloser, error) {
	if _, err := url.ParseRequestURI(ref); err != nil {
		return nil, perr.InvalidArgf("bad log URL %q", ref)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "bad log URL %q", ref)
	}
	resp, err := s.opt.Client.Do(req)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "fetch %s", ref)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		if resp.StatusCode == http.StatusNotFound {
			return nil, perr.NotFoundf("log %s: unexpected status %d", ref, resp.StatusCode)
		}
		return nil, perr.Unavailablef("log %s: unexpected status %d", ref, resp.StatusCode)
	}
	return resp.Body, nil
}

// ReadLimited reads r, transparently decompressing gzip, and fails with
// ErrorCodeTooLarge once more than max bytes would be produced
func ReadLimited(r io.Reader, max int64) ([]byte, bool, error) {
	br := bufio.NewReader(r)
	var src io.Reader = br
	compressed := false
	if magic, _ := br.Peek(2); len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, true, perr.Wrap(err, perr.ErrorCodeValidation, "corrupt gzip stream")
		}
		defer func() { _ = gz.Close() }()
		src = gz
		compressed = true
	}

	data, err := io.ReadAll(io.LimitReader(src, max+1))
	if err != nil {
		if compressed {
			return nil, true, perr.Wrap(err, perr.ErrorCodeValidation, "corrupt gzip stream")
		}
		return nil, false, perr.Wrap(err, perr.ErrorCodeUnavailable, "read log")
	}
	if int64(len(data)) > max {
		return nil, compressed, perr.TooLargef("log exceeds %s", humanize.IBytes(uint64(max)))
	}
	return data, compressed, nil
}

// String renders an Info for CLI summaries
func (i Info) String() string {
	gz := ""
	if i.Compressed {
		gz = ", gzip"
	}
	return fmt.Sprintf("%s (%s%s, %s)", i.Ref, i.Kind, gz, humanize.IBytes(uint64(i.Bytes)))
}
