package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"payloadgen/internal/config"
	"payloadgen/internal/console"
	"payloadgen/internal/emit"
	"payloadgen/internal/parser"
	"payloadgen/internal/pipeline"
)

var (
	configFile string
	inputFile  string
	outFile    string
	pkgName    string
	format     string
	sinkName   string
	dbDSN      string
	workers    int
	protocols  []string
	logLevel   string
	logFile    string
	noColor    bool
)

// errInputMissing aborts a run without failing it.
var errInputMissing = errors.New("payload file not found")

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "payloadgen",
		Short: "Generate a port-to-payload table from an nmap-payloads style file",
		Long: `payloadgen reads probe payload definitions ("<protocol> <ports> <payload>")
	and emits an ordered table mapping port sets to payload bytes, as Go source,
	JSON, or rows in a MariaDB table.`,
		SilenceUsage: true,
		RunE:         runGenerate,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "YAML configuration file")
	flags.StringVar(&inputFile, "input", "nmap-payloads", "Payload definition file, relative to the working directory")
	flags.StringSliceVar(&protocols, "protocols", nil, "Only use definitions whose protocol matches one of these glob patterns")
	flags.IntVarP(&workers, "workers", "w", 1, "Number of goroutines decoding definitions")
	flags.StringVar(&logLevel, "log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
	flags.StringVar(&logFile, "log-file", "", "Log file path (default: stderr)")
	flags.BoolVar(&noColor, "no-color", false, "Disable colored progress output")

	rootCmd.Flags().StringVar(&outFile, "out", "generated.go", "Output file for the 'file' sink")
	rootCmd.Flags().StringVar(&pkgName, "package", "nmappayloads", "Package name of generated Go source")
	rootCmd.Flags().StringVar(&format, "format", config.FormatGo, "Output format: 'go' or 'json'")
	rootCmd.Flags().StringVar(&sinkName, "sink", config.SinkFile, "Output sink: 'file' or 'mariadb'")
	rootCmd.Flags().StringVar(&dbDSN, "db", "", "Database connection string (for 'mariadb' sink)")

	rootCmd.AddCommand(newDumpCmd())
	return rootCmd
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the parsed table as '<ports> <payload>' lines",
		Args:  cobra.NoArgs,
		RunE:  runDump,
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig merges the optional config file with explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = config.LoadConfig(configFile); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("input") || configFile == "" {
		cfg.Input = inputFile
	}
	if flags.Changed("protocols") {
		cfg.Protocols = protocols
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
	if noColor {
		cfg.Color = false
	}
	if flags.Lookup("out") != nil {
		if flags.Changed("out") {
			cfg.Output.Path = outFile
		}
		if flags.Changed("package") {
			cfg.Output.Package = pkgName
		}
		if flags.Changed("format") {
			cfg.Output.Format = format
		}
		if flags.Changed("sink") {
			cfg.Output.Sink = sinkName
		}
		if flags.Changed("db") {
			cfg.Output.DSN = dbDSN
		}
	}
	cfg.Output.Format = strings.ToLower(cfg.Output.Format)
	cfg.Output.Sink = strings.ToLower(cfg.Output.Sink)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// --- 1. Load Configuration ---
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// --- 2. Setup Logging ---
	logger := setupLogger(cfg.Log.Level, cfg.Log.File)
	slog.SetDefault(logger)
	console.SetColor(cfg.Color)
	out := console.New(cmd.OutOrStdout())

	out.Banner("Initializing payloadgen...")
	startTime := time.Now()

	// --- 3. Read Input ---
	data, err := readInput(out, cfg)
	if errors.Is(err, errInputMissing) {
		return nil
	}
	if err != nil {
		return err
	}

	// --- 4. Parse and Assemble ---
	out.Step("Parsing payload definitions...")
	res, err := pipeline.Run(cmd.Context(), data, pipeline.Options{
		Workers:   cfg.Workers,
		Protocols: cfg.Protocols,
		Reporter:  parser.LogReporter{Logger: logger},
		Logger:    logger,
	})
	if err != nil {
		out.Fail("Parsing failed: %v", err)
		return err
	}
	out.OK("Built port-payload table with %d entries from %d definitions.", res.Table.Len(), res.Lines)

	// --- 5. Emit ---
	sink, closeSink, err := newSink(cfg, logger)
	if err != nil {
		out.Fail("Failed to open output: %v", err)
		return err
	}
	defer closeSink()

	out.Step("Writing table to %s...", sink)
	if err := sink.Store(cmd.Context(), res.Table.Entries()); err != nil {
		slog.Error("Failed to write table", "sink", sink.String(), "error", err)
		out.Fail("Failed to write table to %s: %v", sink, err)
		return err
	}
	out.OK("Table written to %s.", sink)

	slog.Info("Generation complete", "entries", res.Table.Len(), "orphaned", res.Stats.Orphaned, "overwritten", res.Stats.Overwritten, "duration", time.Since(startTime))
	out.Banner("Generated %d entries.", res.Table.Len())
	return nil
}

func runDump(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg.Log.Level, cfg.Log.File)
	slog.SetDefault(logger)
	console.SetColor(cfg.Color)

	data, err := readInput(console.New(cmd.ErrOrStderr()), cfg)
	if errors.Is(err, errInputMissing) {
		return nil
	}
	if err != nil {
		return err
	}

	res, err := pipeline.Run(cmd.Context(), data, pipeline.Options{
		Workers:   cfg.Workers,
		Protocols: cfg.Protocols,
		Reporter:  parser.LogReporter{Logger: logger},
		Logger:    logger,
	})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, e := range res.Table.Entries() {
		selector := parser.FormatSelector(e.Ports)
		if len(e.Ports) == 0 {
			selector = "-"
		}
		fmt.Fprintf(w, "%s %s\n", selector, parser.EncodeBytes(e.Payload))
	}
	return nil
}

// readInput loads the whole definition file. A missing file is reported and
// returned as errInputMissing.
func readInput(out *console.Printer, cfg *config.Config) (string, error) {
	path := cfg.Input
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	out.Step("Looking for payload file at %s", path)

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		out.Warn("Payload file '%s' not found, nothing to generate.", cfg.Input)
		slog.Warn("Payload file not found", "path", path)
		return "", errInputMissing
	}
	if err != nil {
		slog.Error("Failed to open payload file", "path", path, "error", err)
		out.Fail("Error opening payload file: %v", err)
		return "", err
	}
	defer f.Close()

	limit := int64(cfg.MaxInputSize.Bytes())
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		slog.Error("Failed to read payload file", "path", path, "error", err)
		out.Fail("Error reading payload file: %v", err)
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if int64(len(data)) > limit {
		err := fmt.Errorf("payload file %s exceeds max input size %s", path, cfg.MaxInputSize.HR())
		out.Fail("%v", err)
		return "", err
	}
	out.OK("Read %d bytes.", len(data))
	return string(data), nil
}

func newSink(cfg *config.Config, logger *slog.Logger) (emit.Sink, func(), error) {
	switch cfg.Output.Sink {
	case config.SinkFile:
		var enc emit.Encoder = emit.JSON{}
		if cfg.Output.Format == config.FormatGo {
			enc = emit.GoSource{
				Package: cfg.Output.Package,
				Source:  filepath.Base(cfg.Input),
				Logger:  logger,
			}
		}
		return &emit.FileSink{Path: cfg.Output.Path, Encoder: enc}, func() {}, nil
	case config.SinkMariaDB:
		s, err := emit.NewMariaDBSink(cfg.Output.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown output sink: %s", cfg.Output.Sink)
	}
}

func setupLogger(level, logFilePath string) *slog.Logger {
	var logWriter io.Writer = os.Stderr
	if logFilePath != "" {
		f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err == nil {
			logWriter = f
		}
		// The logger isn't set up yet, so a failure silently falls back to stderr.
	}

	var lvl slog.Level
	switch strings.ToUpper(level) {
	case "DEBUG":
		lvl = slog.LevelDebug
	case "INFO":
		lvl = slog.LevelInfo
	case "WARN":
		lvl = slog.LevelWarn
	case "ERROR":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(logWriter, &slog.HandlerOptions{Level: lvl}))
}
