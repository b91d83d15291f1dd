package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/jeduden/tidylabel/internal/config"
	"github.com/jeduden/tidylabel/internal/log"

	// Import all rule packages so their init() functions register rules.
	_ "github.com/jeduden/tidylabel/internal/rules/duplicatebbox"
	_ "github.com/jeduden/tidylabel/internal/rules/emptydetection"
	_ "github.com/jeduden/tidylabel/internal/rules/invalidclass"
	_ "github.com/jeduden/tidylabel/internal/rules/malformedrecord"
	_ "github.com/jeduden/tidylabel/internal/rules/orphanimage"
	_ "github.com/jeduden/tidylabel/internal/rules/orphanlabel"
)

// Exit codes.
const (
	exitOK         = 0
	exitViolations = 1
	exitError      = 2
)

func main() {
	c := &cli{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	os.Exit(c.run(os.Args[1:]))
}

const usageText = `Usage: tidylabel <command> [flags]

Commands:
  check       Validate a YOLO dataset and optionally remediate findings
  split       Partition a dataset into train/valid/test by video group
  filter      Keep only selected classes and drop junk label files
  remap       Rewrite class ids by mapping or onto 0..n-1
  classes     List the classes used in label directories
  match       Pair images with labels, copy or prune unmatched files
  exclusive   Analyze or thin files that hold a single class
  stats       Report per-class counts of a train/validation split
  eda         Plot the class distribution of a label directory
  help        Show help for rules
  init        Generate a default .tidylabel.yml config file
  version     Print version and exit

Global flags:
  -h, --help      Show this help

Run 'tidylabel <command> --help' for more information on a command.
`

// cli carries the process streams so commands can be driven from tests.
type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (c *cli) run(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(c.stderr, usageText)
		return exitOK
	}

	switch args[0] {
	case "--help", "-h":
		fmt.Fprint(c.stderr, usageText)
		return exitOK
	case "check":
		return c.runCheck(args[1:])
	case "split":
		return c.runSplit(args[1:])
	case "filter":
		return c.runFilter(args[1:])
	case "remap":
		return c.runRemap(args[1:])
	case "classes":
		return c.runClasses(args[1:])
	case "match":
		return c.runMatch(args[1:])
	case "exclusive":
		return c.runExclusive(args[1:])
	case "stats":
		return c.runStats(args[1:])
	case "eda":
		return c.runEDA(args[1:])
	case "help":
		return c.runHelp(args[1:])
	case "init":
		return c.runInit(args[1:])
	case "version":
		c.printVersion()
		return exitOK
	default:
		fmt.Fprintf(c.stderr, "tidylabel: unknown command %q\n\n%s", args[0], usageText)
		return exitError
	}
}

func (c *cli) printVersion() {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	fmt.Fprintf(c.stdout, "tidylabel %s\n", version)
}

// fail prints a prefixed error and returns exitError.
func (c *cli) fail(format string, args ...any) int {
	fmt.Fprintf(c.stderr, "tidylabel: "+format+"\n", args...)
	return exitError
}

func (c *cli) logger(verbose bool) *log.Logger {
	return &log.Logger{Enabled: verbose, W: c.stderr}
}

// loadConfig loads configuration by either using the specified path or
// discovering a config file from the current directory. Relative
// dataset paths in the file are resolved against the file's directory.
func loadConfig(configPath string) (*config.Config, error) {
	defaults := config.Defaults()

	if configPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return config.Merge(defaults, nil), nil
		}
		discovered, err := config.Discover(cwd)
		if err != nil || discovered == "" {
			return config.Merge(defaults, nil), nil
		}
		configPath = discovered
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	base := filepath.Dir(configPath)
	loaded.Images = resolvePath(base, loaded.Images)
	loaded.Labels = resolvePath(base, loaded.Labels)
	loaded.Split.Out = resolvePath(base, loaded.Split.Out)
	return config.Merge(defaults, loaded), nil
}

func resolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// pick returns flag when set and fallback otherwise.
func pick(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}

// imageExts returns the extension flag values when given, else the
// configured extensions.
func imageExts(flag []string, cfg *config.Config) []string {
	if len(flag) == 0 {
		return cfg.ImageExts()
	}
	exts := make([]string, 0, len(flag))
	for _, e := range flag {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts = append(exts, e)
	}
	return exts
}
