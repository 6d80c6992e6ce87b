package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/tilezen/hilbert/pkg/cmd"
	"github.com/tilezen/hilbert/pkg/config"
	tzc "github.com/tilezen/hilbert/pkg/coord"
	"github.com/tilezen/hilbert/pkg/coord/cmp"
	"github.com/tilezen/hilbert/pkg/coord/gen"
	"github.com/tilezen/hilbert/pkg/coord/pack"
	"github.com/tilezen/hilbert/pkg/logging"
	tzs3 "github.com/tilezen/hilbert/pkg/s3"
	"github.com/tilezen/hilbert/pkg/tilelist"
	"github.com/tilezen/hilbert/pkg/util"
)

func main() {
	var configPath string
	var output string
	var compress bool
	var missing bool
	var minZoom uint
	var maxZoom uint
	var datePrefix string
	var bucket string
	var region string
	var skipInvalid bool

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [inputs...]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Inputs are tile list files, s3://bucket/key lists, s3://bucket/prefix/ to list tile keys, or - for stdin.\n")
		flag.PrintDefaults()
	}
	flag.StringVar(&configPath, "config", "", "yaml config file")
	flag.StringVar(&output, "out", "-", "output file, s3://bucket/key or - for stdout")
	flag.BoolVar(&compress, "compress", false, "gzip the output")
	flag.BoolVar(&missing, "missing", false, "print tiles in the zoom range that are absent from the input")
	flag.UintVar(&minZoom, "min-zoom", 0, "first zoom checked by -missing")
	flag.UintVar(&maxZoom, "max-zoom", 10, "last zoom checked by -missing")
	flag.StringVar(&datePrefix, "date-prefix", "", "print hashed tile archive keys under this date prefix")
	flag.StringVar(&bucket, "bucket", "", "s3 bucket prepended to -date-prefix keys")
	flag.StringVar(&region, "region", "", "aws region (overrides config)")
	flag.BoolVar(&skipInvalid, "skip-invalid", false, "log and skip lines that are not tiles")

	flag.Parse()

	if missing && (minZoom > maxZoom || maxZoom > 20) {
		fmt.Fprintf(os.Stderr, "Invalid zoom range %d-%d\n", minZoom, maxZoom)
		cmd.DieWithUsage()
	}
	if bucket != "" && datePrefix == "" {
		cmd.DieWithUsage()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		cmd.DieWithUsage()
	}
	if region != "" {
		cfg.AWS.Region = region
	}
	if compress {
		cfg.Output.Compress = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %s\n", err)
		cmd.DieWithUsage()
	}

	logger, err := logging.New(os.Stderr, cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store := lazyStore(cfg.AWS)
	inputs := flag.Args()
	if len(inputs) == 0 {
		inputs = []string{"-"}
	}

	tiles, err := readAll(ctx, logger, inputs, store, cfg.Concurrency, skipInvalid)
	logging.CheckFatal(logger, "reading tiles", err)
	level.Info(logger).Log("msg", "read tiles", "inputs", len(inputs), "unique", tiles.Len())

	result := tiles.Coords()
	if missing {
		result = missingTiles(tiles, minZoom, maxZoom)
		level.Info(logger).Log("msg", "compared zoom range", "min", minZoom, "max", maxZoom, "missing", len(result))
	}

	w, err := cmd.CreateOutput(ctx, output, store)
	logging.CheckFatal(logger, "opening output", err)
	err = writeTiles(w, result, cfg.Output.Compress, keyFormat(bucket, datePrefix))
	if closeErr := w.Close(); err == nil {
		err = closeErr
	}
	logging.CheckFatal(logger, "writing tiles", err)
}

func lazyStore(aws config.AWSConfig) cmd.StoreFunc {
	var once sync.Once
	var store *tzs3.Store
	var err error
	return func() (*tzs3.Store, error) {
		once.Do(func() {
			store, err = tzs3.NewSessionStore(aws.Region, aws.MaxRetries)
		})
		return store, err
	}
}

// readAll reads every input into one set, several inputs at a time.
func readAll(ctx context.Context, logger log.Logger, inputs []string, store cmd.StoreFunc, concurrency int, skipInvalid bool) (*pack.Set, error) {
	if concurrency < 1 || concurrency > len(inputs) {
		concurrency = len(inputs)
	}
	locations := make(chan string, len(inputs))
	for _, in := range inputs {
		locations <- in
	}
	close(locations)

	var mu sync.Mutex
	result := pack.NewSet()
	err := util.Concurrently(ctx, uint(concurrency), func(ctx context.Context) error {
		for location := range locations {
			tiles, err := readInput(ctx, logger, location, store, skipInvalid)
			if err != nil {
				return fmt.Errorf("%s: %w", location, err)
			}
			mu.Lock()
			result.Union(tiles)
			mu.Unlock()
		}
		return nil
	})
	return result, err
}

// readInput reads a tile list, or lists the tile keys under an
// s3://bucket/prefix/ location.
func readInput(ctx context.Context, logger log.Logger, location string, store cmd.StoreFunc, skipInvalid bool) (*pack.Set, error) {
	if bucket, prefix, ok := tzs3.ParsePrefixURL(location); ok {
		return listTiles(ctx, logger, bucket, prefix, store)
	}
	in, err := cmd.OpenInput(ctx, location, store)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	r, err := tilelist.NewReader(in)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	tiles := pack.NewSet()
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		c, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		var lineErr *tilelist.LineError
		if errors.As(err, &lineErr) && skipInvalid {
			level.Warn(logger).Log("msg", "skipping line", "input", location, "err", err)
			continue
		}
		if err != nil {
			return nil, err
		}
		if err := tiles.Add(c); err != nil {
			return nil, fmt.Errorf("tile %s: %w", c, err)
		}
	}
	level.Debug(logger).Log("msg", "read input", "input", location, "tiles", tiles.Len())
	return tiles, nil
}

// listTiles collects the tiles whose keys sit under prefix. Keys that
// don't name a tile are skipped.
func listTiles(ctx context.Context, logger log.Logger, bucket, prefix string, store cmd.StoreFunc) (*pack.Set, error) {
	s, err := store()
	if err != nil {
		return nil, err
	}
	tiles := pack.NewSet()
	var skipped int
	var addErr error
	err = s.List(ctx, bucket, prefix, func(key string) {
		c, err := tzs3.ParseCoordFromKey(key)
		if err != nil {
			skipped++
			return
		}
		if err := tiles.Add(*c); err != nil && addErr == nil {
			addErr = fmt.Errorf("key %s: %w", key, err)
		}
	})
	if err != nil {
		return nil, err
	}
	if addErr != nil {
		return nil, addErr
	}
	level.Debug(logger).Log("msg", "listed prefix", "bucket", bucket, "prefix", prefix, "tiles", tiles.Len(), "skipped", skipped)
	return tiles, nil
}

// missingTiles returns the tiles of the zoom range that are not in tiles.
func missingTiles(tiles *pack.Set, minZoom, maxZoom uint) []tzc.Coord {
	return cmp.FindMissingTiles(gen.NewZoomRange(minZoom, maxZoom), gen.NewSlice(tiles.Coords()))
}

// keyFormat renders tiles as z/x/y, or as hashed archive keys when a date
// prefix is set.
func keyFormat(bucket, datePrefix string) func(tzc.Coord) string {
	if datePrefix == "" {
		return nil
	}
	return func(c tzc.Coord) string {
		path := tzs3.TileHashPathForCoord(datePrefix, c)
		if bucket != "" {
			return fmt.Sprintf("s3://%s/%s", bucket, path)
		}
		return path
	}
}

func writeTiles(w io.Writer, tiles []tzc.Coord, compress bool, format func(tzc.Coord) string) error {
	tw := tilelist.NewWriter(w, compress, format)
	for _, c := range tiles {
		if err := tw.Write(c); err != nil {
			return err
		}
	}
	return tw.Close()
}
