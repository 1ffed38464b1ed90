// Command nirc reads a JSON-described Defn forest, serializes it to the
// NIR wire format, and optionally watches a directory for changes or
// pushes/pulls the result to a remote build-cache peer — the CLI entry
// point tying internal/nir, internal/nirsnapshot, internal/nirwatch,
// internal/nirtransport and internal/nirrevision together, grounded on
// cmd/orizon-config/main.go and internal/cli/common.go.
package main

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/orizon-lang/nir/internal/cli"
	"github.com/orizon-lang/nir/internal/nir"
	"github.com/orizon-lang/nir/internal/nirrevision"
	"github.com/orizon-lang/nir/internal/nirsnapshot"
	"github.com/orizon-lang/nir/internal/nirtransport"
	"github.com/orizon-lang/nir/internal/nirwatch"
)

// Config is nirc's JSON-loadable configuration, overridden by flags of
// the same name, following internal/cli/common.go's Config/LoadConfig
// shape.
type Config struct {
	InPath             string `json:"in_path"`
	OutPath            string `json:"out_path"`
	WatchDir           string `json:"watch_dir"`
	RemoteAddr         string `json:"remote_addr"`
	RevisionConstraint string `json:"revision_constraint"`
	MmapSize           int    `json:"mmap_size"`
	Insecure           bool   `json:"insecure"`
	Verbose            bool   `json:"verbose"`
	Debug              bool   `json:"debug"`
}

// loadConfigFile loads path into a Config. It goes through
// cli.LoadConfig first to get that loader's file-not-found and
// WorkDir-default handling for the fields nirc shares with every other
// CLI tool (Verbose/Debug), then unmarshals the same file a second
// time into the full nirc-specific Config for the rest of the fields.
func loadConfigFile(path string) (Config, error) {
	var cfg Config

	base, err := cli.LoadConfig(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}

	cfg.Verbose = base.Verbose
	cfg.Debug = base.Debug

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}

		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// nircCommands describes nirc's run modes for cli.PrintUsage's COMMANDS
// section. nirc has no subcommand verbs on the command line (modes are
// selected by which flags are set), but the three modes map directly
// onto CommandInfo's name/description shape.
var nircCommands = []cli.CommandInfo{
	{Name: "serialize", Description: "serialize -in to -out (default mode)"},
	{Name: "watch", Description: "watch -watch-dir and re-serialize changed snapshots"},
	{Name: "pull", Description: "pull a named stream from -remote"},
}

var nircFlags = []cli.FlagInfo{
	{Name: "in", Usage: "JSON-described Defn forest to serialize"},
	{Name: "out", Usage: "path to write the serialized NIR stream"},
	{Name: "watch-dir", Usage: "directory of snapshot files to watch"},
	{Name: "watch", Usage: "watch -watch-dir and re-serialize on change"},
	{Name: "remote", Usage: "base URL of a nirtransport cache peer"},
	{Name: "push", Usage: "push the serialized stream to -remote"},
	{Name: "pull", Usage: "pull a named stream from -remote instead of serializing"},
	{Name: "revision-constraint", Usage: "semver constraint the pulled stream's header must satisfy"},
	{Name: "mmap-size", Usage: "use a fixed-size mmap sink instead of a growable buffer"},
	{Name: "insecure", Usage: "skip TLS certificate verification against -remote"},
	{Name: "config", Usage: "nirc configuration file path"},
	{Name: "verbose", Usage: "enable info logging"},
	{Name: "debug", Usage: "enable debug logging"},
}

// wrapErr prefixes err with op, or returns nil if err is nil — a small
// helper so the call sites in main can route through cli.HandleError,
// which logs and exits but takes no format string of its own.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s: %w", op, err)
}

func main() {
	var (
		showVersion bool
		showHelp    bool
		jsonOutput  bool
		configFile  string
		cfg         Config
		watch       bool
		push        bool
		pull        string
	)

	flag.BoolVar(&showVersion, "version", false, "show version information")
	flag.BoolVar(&showHelp, "help", false, "show help information")
	flag.BoolVar(&jsonOutput, "json", false, "output version in JSON format")
	flag.StringVar(&configFile, "config", "", "nirc configuration file path")
	flag.StringVar(&cfg.InPath, "in", "", "JSON-described Defn forest to serialize")
	flag.StringVar(&cfg.OutPath, "out", "", "path to write the serialized NIR stream")
	flag.StringVar(&cfg.WatchDir, "watch-dir", "", "directory of snapshot files to watch")
	flag.BoolVar(&watch, "watch", false, "watch -watch-dir and re-serialize on change")
	flag.StringVar(&cfg.RemoteAddr, "remote", "", "base URL of a nirtransport cache peer")
	flag.BoolVar(&push, "push", false, "push the serialized stream to -remote")
	flag.StringVar(&pull, "pull", "", "pull a named stream from -remote instead of serializing")
	flag.StringVar(&cfg.RevisionConstraint, "revision-constraint", "", "semver constraint the pulled stream's header must satisfy")
	flag.IntVar(&cfg.MmapSize, "mmap-size", 0, "use a fixed-size mmap sink of this many bytes instead of a growable buffer")
	flag.BoolVar(&cfg.Insecure, "insecure", false, "skip TLS certificate verification against -remote")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "enable info logging")
	flag.BoolVar(&cfg.Debug, "debug", false, "enable debug logging")

	flag.Usage = func() {
		cli.PrintUsage("nirc", nircCommands)
		cli.PrintCommandUsage("nirc", cli.CommandInfo{
			Usage:       "nirc [OPTIONS]",
			Description: "serialize a JSON-described Defn forest to the NIR wire format",
			Flags:       nircFlags,
			Examples: []string{
				"nirc -in defns.json -out defns.nir",
				"nirc -watch-dir ./snapshots -watch",
				"nirc -in defns.json -remote https://cache:4433 -push",
				"nirc -pull defns.nir -remote https://cache:4433 -out defns.nir",
			},
		})
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		cli.ExitWithCode(0, "")
	}

	if showVersion {
		cli.PrintVersion("nirc", jsonOutput)
		cli.ExitWithCode(0, "")
	}

	fileCfg, err := loadConfigFile(configFile)
	if err != nil {
		cli.ExitWithError("%v", err)
	}

	cfg = mergeConfig(fileCfg, cfg)
	logger := cli.NewLogger(cfg.Verbose, cfg.Debug)

	switch {
	case watch:
		cli.HandleError(wrapErr("watch", runWatch(cfg, logger)), logger)
	case pull != "":
		cli.HandleError(wrapErr("pull", runPull(cfg, pull, logger)), logger)
	case cfg.InPath != "":
		cli.HandleError(wrapErr("serialize", runSerialize(cfg, push, logger)), logger)
	default:
		flag.Usage()
		cli.ExitWithCode(1, "")
	}
}

// mergeConfig lets a loaded config file supply defaults that explicit
// flags (non-zero in flagCfg) override, matching LoadConfig's role in
// internal/cli/common.go.
func mergeConfig(fileCfg, flagCfg Config) Config {
	out := fileCfg

	if flagCfg.InPath != "" {
		out.InPath = flagCfg.InPath
	}

	if flagCfg.OutPath != "" {
		out.OutPath = flagCfg.OutPath
	}

	if flagCfg.WatchDir != "" {
		out.WatchDir = flagCfg.WatchDir
	}

	if flagCfg.RemoteAddr != "" {
		out.RemoteAddr = flagCfg.RemoteAddr
	}

	if flagCfg.RevisionConstraint != "" {
		out.RevisionConstraint = flagCfg.RevisionConstraint
	}

	if flagCfg.MmapSize != 0 {
		out.MmapSize = flagCfg.MmapSize
	}

	out.Insecure = out.Insecure || flagCfg.Insecure
	out.Verbose = out.Verbose || flagCfg.Verbose
	out.Debug = out.Debug || flagCfg.Debug

	return out
}

// loadAndSerialize reads cfg.InPath's JSON snapshot and serializes it,
// choosing a mmap-backed sink when cfg.MmapSize > 0.
func loadAndSerialize(cfg Config) ([]byte, error) {
	data, err := os.ReadFile(cfg.InPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", cfg.InPath, err)
	}

	defns, err := nirsnapshot.Load(data)
	if err != nil {
		return nil, err
	}

	if cfg.MmapSize > 0 {
		if cfg.OutPath == "" {
			return nil, fmt.Errorf("-mmap-size requires -out")
		}

		sink, err := nir.OpenMmapSink(cfg.OutPath, cfg.MmapSize)
		if err != nil {
			return nil, fmt.Errorf("open mmap sink: %w", err)
		}
		defer sink.Close()

		nir.Serialize(sink, defns)

		if err := sink.Sync(); err != nil {
			return nil, fmt.Errorf("sync mmap sink: %w", err)
		}

		return nil, nil
	}

	sink := nir.NewBuffer()
	nir.Serialize(sink, defns)

	return sink.Bytes(), nil
}

func runSerialize(cfg Config, push bool, logger *cli.Logger) error {
	data, err := loadAndSerialize(cfg)
	if err != nil {
		return err
	}

	if data != nil && cfg.OutPath != "" {
		if err := os.WriteFile(cfg.OutPath, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", cfg.OutPath, err)
		}

		logger.Info("wrote %d bytes to %s", len(data), cfg.OutPath)
	}

	if push {
		if cfg.RemoteAddr == "" {
			return fmt.Errorf("-push requires -remote")
		}

		if data == nil {
			data, err = os.ReadFile(cfg.OutPath)
			if err != nil {
				return fmt.Errorf("read %s for push: %w", cfg.OutPath, err)
			}
		}

		cl := newTransportClient(cfg)
		defer cl.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		name := filepath.Base(cfg.OutPath)
		if name == "" || name == "." {
			name = filepath.Base(cfg.InPath)
		}

		if err := cl.Push(ctx, name, data); err != nil {
			return err
		}

		logger.Info("pushed %s (%d bytes) to %s", name, len(data), cfg.RemoteAddr)
	}

	return nil
}

func runPull(cfg Config, name string, logger *cli.Logger) error {
	if cfg.RemoteAddr == "" {
		return fmt.Errorf("-pull requires -remote")
	}

	cl := newTransportClient(cfg)
	defer cl.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	data, err := cl.Pull(ctx, name)
	if err != nil {
		return err
	}

	if cfg.RevisionConstraint != "" {
		header, err := readHeader(data)
		if err != nil {
			return err
		}

		policy, err := nirrevision.NewPolicy(cfg.RevisionConstraint)
		if err != nil {
			return err
		}

		if err := policy.Check(header); err != nil {
			return err
		}
	}

	if cfg.OutPath != "" {
		if err := os.WriteFile(cfg.OutPath, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", cfg.OutPath, err)
		}
	}

	logger.Info("pulled %s (%d bytes) from %s", name, len(data), cfg.RemoteAddr)

	return nil
}

func runWatch(cfg Config, logger *cli.Logger) error {
	if cfg.WatchDir == "" {
		return fmt.Errorf("-watch requires -watch-dir")
	}

	w, err := nirwatch.New()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(cfg.WatchDir); err != nil {
		return err
	}

	logger.Info("watching %s", cfg.WatchDir)

	for {
		select {
		case ev := <-w.Events():
			if !strings.HasSuffix(ev.Path, ".json") {
				continue
			}

			if ev.Op&(nirwatch.OpCreate|nirwatch.OpWrite) == 0 {
				continue
			}

			perFile := cfg
			perFile.InPath = ev.Path
			perFile.OutPath = strings.TrimSuffix(ev.Path, ".json") + ".nir"

			if err := runSerialize(perFile, false, logger); err != nil {
				logger.Error("serialize %s: %v", ev.Path, err)
			}
		case err := <-w.Errors():
			logger.Error("watch: %v", err)
		}
	}
}

func newTransportClient(cfg Config) *nirtransport.Client {
	var tlsCfg *tls.Config
	if cfg.Insecure {
		tlsCfg = &tls.Config{InsecureSkipVerify: true}
	}

	return nirtransport.NewClient(cfg.RemoteAddr, tlsCfg, 30*time.Second, nirtransport.Options{})
}

// readHeader reads the 12-byte magic|compat|revision header nirc needs
// to check a pulled stream's compatibility. This is not "the decoder"
// internal/nir places out of scope: it reads three fixed int32 fields
// and nothing else, never a Defn payload.
func readHeader(data []byte) (nirrevision.Header, error) {
	if len(data) < 12 {
		return nirrevision.Header{}, fmt.Errorf("nirc: stream too short for a header (%d bytes)", len(data))
	}

	be := func(b []byte) int32 {
		return int32(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]))
	}

	return nirrevision.Header{
		Magic:    be(data[0:4]),
		Compat:   be(data[4:8]),
		Revision: be(data[8:12]),
	}, nil
}
