package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/tilezen/hilbert/pkg/cmd"
	"github.com/tilezen/hilbert/pkg/config"
	"github.com/tilezen/hilbert/pkg/hilbert"
	"github.com/tilezen/hilbert/pkg/logging"
)

// maxAllBits caps the curves -all will walk.
const maxAllBits = 32

// allBatch is how many indices -all decodes per batch.
const allBatch = 1 << 16

const synopsis = "decode|encode [flags] [values...]"

type options struct {
	configPath  string
	dims, bits  int
	strict      bool
	concurrency int
	logLevel    string
	all         bool
}

func main() {
	if len(os.Args) < 2 {
		cmd.DieWithFlagSetUsage(flag.NewFlagSet("hilbert", flag.ExitOnError), synopsis)
	}
	verb := os.Args[1]
	if verb != "decode" && verb != "encode" {
		fmt.Fprintf(os.Stderr, "Unknown command %q\n", verb)
		cmd.DieWithFlagSetUsage(flag.NewFlagSet("hilbert", flag.ExitOnError), synopsis)
	}

	var opts options
	fs := flag.NewFlagSet(verb, flag.ExitOnError)
	fs.StringVar(&opts.configPath, "config", "", "yaml config file")
	fs.IntVar(&opts.dims, "dims", 0, "number of dimensions (overrides config)")
	fs.IntVar(&opts.bits, "bits", 0, "bits per dimension (overrides config)")
	fs.BoolVar(&opts.strict, "strict", false, "reject out of range indices and coordinates")
	fs.IntVar(&opts.concurrency, "concurrency", 0, "batch workers (overrides config)")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level (overrides config)")
	if verb == "decode" {
		fs.BoolVar(&opts.all, "all", false, "decode every index of the curve")
	}
	fs.Parse(os.Args[2:])

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		cmd.DieWithFlagSetUsage(fs, verb+" [flags] [values...]")
	}
	opts.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %s\n", err)
		cmd.DieWithFlagSetUsage(fs, verb+" [flags] [values...]")
	}

	logger, err := logging.New(os.Stderr, cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	curve, err := hilbert.New(cfg.Curve.Dims, cfg.Curve.Bits, cfg.CurveOptions()...)
	logging.CheckFatal(logger, "creating curve", err)
	level.Debug(logger).Log("msg", "curve ready", "dims", curve.Dims(), "bits", curve.Bits(), "strict", cfg.Curve.Strict)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	switch {
	case opts.all:
		err = decodeAll(ctx, logger, curve, out)
	case fs.NArg() > 0:
		err = run(ctx, verb, curve, fs.Args(), out)
	default:
		var lines []string
		lines, err = readLines(os.Stdin)
		if err == nil {
			err = run(ctx, verb, curve, lines, out)
		}
	}
	if err != nil {
		out.Flush()
		logging.CheckFatal(logger, verb, err)
	}
}

func (o *options) apply(cfg *config.Config) {
	if o.dims != 0 {
		cfg.Curve.Dims = o.dims
	}
	if o.bits != 0 {
		cfg.Curve.Bits = o.bits
	}
	if o.strict {
		cfg.Curve.Strict = true
	}
	if o.concurrency != 0 {
		cfg.Concurrency = o.concurrency
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
}

func run(ctx context.Context, verb string, curve *hilbert.Curve, values []string, w io.Writer) error {
	if verb == "decode" {
		indices, err := parseIndices(values)
		if err != nil {
			return err
		}
		return decode(ctx, curve, indices, w)
	}
	points, err := parsePoints(values, curve.Dims())
	if err != nil {
		return err
	}
	return encode(ctx, curve, points, w)
}

func decode(ctx context.Context, curve *hilbert.Curve, indices hilbert.Array, w io.Writer) error {
	points, err := curve.DecodeArray(ctx, indices)
	if err != nil {
		return err
	}
	return writeRows(w, points.Data, curve.Dims())
}

func encode(ctx context.Context, curve *hilbert.Curve, points hilbert.Array, w io.Writer) error {
	indices, err := curve.EncodeArray(ctx, points)
	if err != nil {
		return err
	}
	return writeRows(w, indices.Data, 1)
}

// decodeAll writes every point of the curve in order.
func decodeAll(ctx context.Context, logger log.Logger, curve *hilbert.Curve, w io.Writer) error {
	total := curve.Dims() * curve.Bits()
	if total > maxAllBits {
		return fmt.Errorf("curve has 2^%d points, -all supports at most 2^%d", total, maxAllBits)
	}
	last := curve.MaxIndex()
	level.Info(logger).Log("msg", "decoding whole curve", "points", last+1)

	batch := make([]uint64, 0, allBatch)
	for h := uint64(0); ; h++ {
		batch = append(batch, h)
		if len(batch) == allBatch || h == last {
			if err := decode(ctx, curve, hilbert.Vector(batch...), w); err != nil {
				return err
			}
			batch = batch[:0]
		}
		if h == last {
			return nil
		}
	}
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

// parseIndices reads one index per value. Values may be decimal, 0x hex
// or 0b binary.
func parseIndices(values []string) (hilbert.Array, error) {
	data := make([]uint64, len(values))
	for i, v := range values {
		h, err := strconv.ParseUint(strings.ReplaceAll(v, "_", ""), 0, 64)
		if err != nil {
			return hilbert.Array{}, fmt.Errorf("invalid index %#v: %w", v, err)
		}
		data[i] = h
	}
	return hilbert.Vector(data...), nil
}

var errEmptyPoint = errors.New("empty point")

// parsePoints reads one point per value, coordinates separated by commas
// or whitespace. A point with the wrong number of coordinates is reported
// by the curve as a shape mismatch.
func parsePoints(values []string, dims int) (hilbert.Array, error) {
	data := make([]uint64, 0, len(values)*dims)
	for _, v := range values {
		fields := strings.FieldsFunc(v, func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		})
		if len(fields) == 0 {
			return hilbert.Array{}, fmt.Errorf("%#v: %w", v, errEmptyPoint)
		}
		if len(fields) != dims {
			return hilbert.Array{}, &hilbert.ShapeMismatchError{Expected: dims, Actual: len(fields)}
		}
		for _, f := range fields {
			x, err := strconv.ParseUint(f, 10, 64)
			if err != nil {
				return hilbert.Array{}, fmt.Errorf("invalid coordinate %#v: %w", f, err)
			}
			data = append(data, x)
		}
	}
	return hilbert.Array{Shape: []int{len(values), dims}, Data: data}, nil
}

// writeRows prints data as rows of width values separated by spaces.
func writeRows(w io.Writer, data []uint64, width int) error {
	var sb strings.Builder
	for i, v := range data {
		sb.WriteString(strconv.FormatUint(v, 10))
		if (i+1)%width == 0 {
			sb.WriteByte('\n')
			if _, err := io.WriteString(w, sb.String()); err != nil {
				return err
			}
			sb.Reset()
		} else {
			sb.WriteByte(' ')
		}
	}
	return nil
}
