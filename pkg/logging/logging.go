package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// New returns a logger writing to w in logfmt or json, filtered to lvl
// (debug, info, warn or error).
func New(w io.Writer, format, lvl string) (log.Logger, error) {
	var logger log.Logger
	switch format {
	case "", "logfmt":
		logger = log.NewLogfmtLogger(log.NewSyncWriter(w))
	case "json":
		logger = log.NewJSONLogger(log.NewSyncWriter(w))
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	var opt level.Option
	switch lvl {
	case "debug":
		opt = level.AllowDebug()
	case "", "info":
		opt = level.AllowInfo()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		return nil, fmt.Errorf("unknown log level %q", lvl)
	}
	logger = level.NewFilter(logger, opt)
	return log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller), nil
}

// CheckFatal logs err and exits with code 1 if err is non-nil.
func CheckFatal(logger log.Logger, location string, err error) {
	if err == nil {
		return
	}
	l := level.Error(logger)
	if location != "" {
		l = log.With(l, "msg", "error "+location)
	}
	l.Log("err", err)
	os.Exit(1)
}
