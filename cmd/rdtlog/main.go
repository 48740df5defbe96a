// Command rdtlog replays a receiver log and prints the report lines a live
// receiver would have shown:
//
//	rdtlog [flags] <station> <logfile|->
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"rdtlog/internal/adapters/logsource"
	"rdtlog/internal/core/station"
	"rdtlog/internal/core/version"
	"rdtlog/internal/platform/logger"
	replaysvc "rdtlog/internal/services/api/replay/service"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

func main() {
	opt := logger.FromEnv()
	if os.Getenv("LOG_LEVEL") == "" {
		opt.Level = "warn"
	}
	logger.Init(opt)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("rdtlog", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		stats    = fs.BoolP("stats", "s", false, "Print a summary line to stderr")
		remote   = fs.Bool("remote", false, "Allow http(s) URLs as the log argument")
		maxBytes = fs.String("max-bytes", "8MiB", "Largest log accepted, after decompression")
		timeout  = fs.Duration("timeout", 15*time.Second, "Timeout for remote fetches")
		showVer  = fs.BoolP("version", "v", false, "Print version and exit")
	)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: rdtlog [flags] <%s> <logfile|->\n", strings.Join(station.Names(), "|"))
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if *showVer {
		fmt.Fprintln(stdout, version.Info("rdtlog"))
		return exitOK
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return exitUsage
	}
	limit, err := humanize.ParseBytes(*maxBytes)
	if err != nil || limit == 0 {
		fmt.Fprintf(stderr, "rdtlog: bad --max-bytes %q\n", *maxBytes)
		return exitUsage
	}
	name, ref := fs.Arg(0), fs.Arg(1)
	if _, err := station.ParseID(name); err != nil {
		fmt.Fprintf(stderr, "rdtlog: %v\n", err)
		return exitUsage
	}

	src := logsource.New(logsource.Options{
		MaxBytes:    int64(limit),
		AllowRemote: *remote,
		Timeout:     *timeout,
		Stdin:       stdin,
	})
	svc := replaysvc.New(replaysvc.Options{MaxLogBytes: int64(limit)}, station.MustLoad(), src, nil)

	start := time.Now()
	res, err := svc.ReplaySource(ctx, name, ref)
	if err != nil {
		fmt.Fprintf(stderr, "rdtlog: %v\n", err)
		return exitFail
	}
	for _, line := range res.Lines {
		fmt.Fprintln(stdout, line)
	}
	if *stats {
		s := res.Stats
		fmt.Fprintf(stderr, "%s: %d minutes, %d decoded, %d mismatched, %d overflows, %d characters (%d ignored) in %s\n",
			res.Station, s.Minutes, s.Decoded, s.Mismatched, s.Overflows, s.Characters, s.Ignored,
			time.Since(start).Round(time.Millisecond))
	}
	return exitOK
}
