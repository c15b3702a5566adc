package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kvit-s/unpatch/internal/config"
	"github.com/kvit-s/unpatch/internal/logging"
	"github.com/kvit-s/unpatch/internal/runner"
	"github.com/kvit-s/unpatch/internal/ui"
)

// Version info set by ldflags at build time
var (
	version    = "dev"
	commitHash = "dev"
	commitDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	logFile := flag.String("log", "", "log file path (empty to disable)")
	verbose := flag.Bool("v", false, "report per-file change statistics")
	quiet := flag.Bool("q", false, "suppress progress output, print only errors and the summary")
	showVersion := flag.Bool("version", false, "show version information and exit")

	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: unpatch [options] <patch-file> [base-directory]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Applies a unified-diff patch in reverse against the base directory")
		fmt.Fprintln(os.Stderr, "(default: current directory), relocating hunks by fuzzy matching.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Options:")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s-%s-%s\n", version, commitDate, commitHash)
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}
	patchFile := args[0]
	baseDir := "."
	if len(args) > 1 {
		baseDir = args[1]
	}

	// Load config
	var cfg *config.Config
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	} else {
		cfg = config.Default()
	}

	// Apply flag overrides
	if *logFile != "" {
		cfg.Log.File = *logFile
	}
	if *verbose {
		cfg.Verbose = true
	}

	// Preflight: these are the only fatal conditions; everything past this
	// point is best-effort.
	if _, err := os.Stat(patchFile); err != nil {
		log.Fatalf("Patch file %q not found", patchFile)
	}
	if info, err := os.Stat(baseDir); err != nil || !info.IsDir() {
		log.Fatalf("Base directory %q not found", baseDir)
	}

	logger, err := logging.NewLogger(cfg.Log.File)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	writer := ui.NewWriter()
	writer.SetQuiet(*quiet)
	writer.SetVerbose(cfg.Verbose)

	writer.StartupInfo(fmt.Sprintf("Reading patch file: %s", patchFile))
	writer.StartupInfo(fmt.Sprintf("Base directory: %s", baseDir))

	data, err := os.ReadFile(patchFile)
	if err != nil {
		log.Fatalf("Failed to read patch file: %v", err)
	}

	// Partial application is a reported outcome, not a failure: the exit
	// code stays zero regardless of skip counts.
	runner.New(cfg, baseDir, writer, logger).Run(string(data))
}
