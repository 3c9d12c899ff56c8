package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/rjboer/GoBPSK/internal/app"
	"github.com/rjboer/GoBPSK/internal/logging"
	"github.com/rjboer/GoBPSK/internal/report"
	"github.com/rjboer/GoBPSK/internal/telemetry"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.LookupEnv); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("bpsksim: %v", err)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, lookup func(string) (string, bool)) error {
	defaults := defaultPersistentConfig()
	if path := configPath(args, lookup); path != "" {
		loaded, err := loadConfig(path, defaults)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		defaults = loaded
	}

	cfg, err := parseConfig(args, lookup, defaults, stderr)
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	level, err := logging.ParseLevel(cfg.logLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(cfg.logFormat)
	if err != nil {
		return err
	}
	logger := logging.New(level, format, stderr)
	logging.SetDefault(logger)

	recorder := telemetry.NewRecorder(0)
	reporters := telemetry.MultiReporter{
		telemetry.NewConsoleReporter(stdout),
		telemetry.NewLogReporter(logger),
		recorder,
	}

	src := rand.NewPCG(cfg.seed, cfg.seed)
	sweeper := app.NewSweeper(src, reporters, logger, app.Config{
		NumBits: cfg.numBits,
		SNRdB:   cfg.snrDB,
	})

	logger.Info("starting sweep",
		logging.Field{Key: "num_bits", Value: cfg.numBits},
		logging.Field{Key: "snr_db", Value: cfg.snrDB},
		logging.Field{Key: "seed", Value: cfg.seed},
		logging.Field{Key: "log_level", Value: level.String()},
		logging.Field{Key: "log_format", Value: format.String()},
	)
	res, err := sweeper.Run(ctx)
	if err != nil {
		return fmt.Errorf("run sweep: %w", err)
	}

	if cfg.berPlot != "" {
		if err := report.PlotBER(res, cfg.berPlot); err != nil {
			return err
		}
		logger.Info("wrote BER plot", logging.Field{Key: "path", Value: cfg.berPlot})
	}
	if cfg.constellationPlot != "" {
		rx, err := sweeper.Constellation(res.Symbols, cfg.constellationSNR)
		if err != nil {
			return err
		}
		if err := report.PlotConstellation(rx, cfg.constellationSNR, cfg.constellationPlot); err != nil {
			return err
		}
		logger.Info("wrote constellation plot", logging.Field{Key: "path", Value: cfg.constellationPlot})
	}
	if cfg.resultsJSON != "" {
		if err := report.WriteJSON(res.NumBits, recorder.History(), cfg.resultsJSON); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
		logger.Info("wrote results", logging.Field{Key: "path", Value: cfg.resultsJSON})
	}
	return nil
}

type cliConfig struct {
	numBits           int
	snrDB             []float64
	seed              uint64
	berPlot           string
	constellationPlot string
	constellationSNR  float64
	resultsJSON       string
	logLevel          string
	logFormat         string
	configFile        string
}

type persistentConfig struct {
	NumBits           int       `json:"num_bits"`
	SNRdB             []float64 `json:"snr_db"`
	Seed              uint64    `json:"seed"`
	BERPlot           string    `json:"ber_plot"`
	ConstellationPlot string    `json:"constellation_plot"`
	ConstellationSNR  float64   `json:"constellation_snr"`
	ResultsJSON       string    `json:"results_json"`
	LogLevel          string    `json:"log_level"`
	LogFormat         string    `json:"log_format"`
}

func newFlagSet(cfg *cliConfig, lookup func(string) (string, bool), defaults persistentConfig, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("bpsksim", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.IntVar(&cfg.numBits, "num-bits", envInt(lookup, "BPSK_NUM_BITS", defaults.NumBits), "Number of random bits per sweep")
	fs.Float64SliceVar(&cfg.snrDB, "snr-db", envFloats(lookup, "BPSK_SNR_DB", defaults.SNRdB), "Comma separated SNR values in dB")
	fs.Uint64Var(&cfg.seed, "seed", envUint(lookup, "BPSK_SEED", defaults.Seed), "Random seed")
	fs.StringVar(&cfg.berPlot, "ber-plot", envString(lookup, "BPSK_BER_PLOT", defaults.BERPlot), "BER vs SNR plot path (empty to skip)")
	fs.StringVar(&cfg.constellationPlot, "constellation-plot", envString(lookup, "BPSK_CONSTELLATION_PLOT", defaults.ConstellationPlot), "Constellation plot path (empty to skip)")
	fs.Float64Var(&cfg.constellationSNR, "constellation-snr", envFloat(lookup, "BPSK_CONSTELLATION_SNR", defaults.ConstellationSNR), "SNR in dB for the constellation plot")
	fs.StringVar(&cfg.resultsJSON, "results-json", envString(lookup, "BPSK_RESULTS_JSON", defaults.ResultsJSON), "Optional JSON results path")
	fs.StringVar(&cfg.logLevel, "log-level", envString(lookup, "BPSK_LOG_LEVEL", defaults.LogLevel), "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.logFormat, "log-format", envString(lookup, "BPSK_LOG_FORMAT", defaults.LogFormat), "Log format (text|json)")
	fs.StringVar(&cfg.configFile, "config", envString(lookup, "BPSK_CONFIG", ""), "Optional JSON file with default settings")
	return fs
}

func parseConfig(args []string, lookup func(string) (string, bool), defaults persistentConfig, out io.Writer) (cliConfig, error) {
	cfg := cliConfig{}
	fs := newFlagSet(&cfg, lookup, defaults, out)
	if err := fs.Parse(args); err != nil {
		return cliConfig{}, err
	}
	if cfg.numBits <= 0 {
		return cliConfig{}, fmt.Errorf("num-bits must be positive, got %d", cfg.numBits)
	}
	if len(cfg.snrDB) == 0 {
		return cliConfig{}, errors.New("snr-db must list at least one value")
	}
	return cfg, nil
}

// configPath finds --config before the full parse so the file can seed the
// flag defaults.
func configPath(args []string, lookup func(string) (string, bool)) string {
	var cfg cliConfig
	fs := newFlagSet(&cfg, func(string) (string, bool) { return "", false }, defaultPersistentConfig(), io.Discard)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	if err := fs.Parse(args); err == nil && cfg.configFile != "" {
		return cfg.configFile
	}
	return envString(lookup, "BPSK_CONFIG", "")
}

func loadConfig(path string, defaults persistentConfig) (persistentConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return persistentConfig{}, err
	}
	defer f.Close()

	cfg := defaults
	if err := json.NewDecoder(f).Decode(&cfg); err != nil {
		return persistentConfig{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg, nil
}

func defaultPersistentConfig() persistentConfig {
	return persistentConfig{
		NumBits:           100000,
		SNRdB:             app.DefaultSNRs(),
		Seed:              1,
		BERPlot:           "results/ber_vs_snr.png",
		ConstellationPlot: "results/constellation_example.png",
		ConstellationSNR:  5,
		ResultsJSON:       "",
		LogLevel:          "info",
		LogFormat:         "text",
	}
}

func envFloat(lookup func(string) (string, bool), key string, def float64) float64 {
	if val, ok := lookup(key); ok {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return def
}

func envFloats(lookup func(string) (string, bool), key string, def []float64) []float64 {
	val, ok := lookup(key)
	if !ok {
		return def
	}
	parts := strings.Split(val, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return def
		}
		out = append(out, parsed)
	}
	return out
}

func envInt(lookup func(string) (string, bool), key string, def int) int {
	if val, ok := lookup(key); ok {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}

func envUint(lookup func(string) (string, bool), key string, def uint64) uint64 {
	if val, ok := lookup(key); ok {
		if parsed, err := strconv.ParseUint(val, 10, 64); err == nil {
			return parsed
		}
	}
	return def
}

func envString(lookup func(string) (string, bool), key, def string) string {
	if val, ok := lookup(key); ok {
		return val
	}
	return def
}
