package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/jeduden/tidylabel/internal/config"
	"github.com/jeduden/tidylabel/internal/curate"
	"github.com/jeduden/tidylabel/internal/engine"
	"github.com/jeduden/tidylabel/internal/lint"
	"github.com/jeduden/tidylabel/internal/output"
	"github.com/jeduden/tidylabel/internal/rule"
	"github.com/jeduden/tidylabel/internal/split"
)

type checkOptions struct {
	configPath string
	images     string
	labels     string
	splitDir   string
	classes    string
	exts       []string
	format     string
	noColor    bool
	yes        bool
	dryRun     bool
	quiet      bool
	verbose    bool
}

// runCheck implements the "check" subcommand: validate a dataset.
func (c *cli) runCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	var o checkOptions

	fs.StringVarP(&o.configPath, "config", "c", "", "Override config file path")
	fs.StringVar(&o.images, "images", "", "Images directory")
	fs.StringVar(&o.labels, "labels", "", "Labels directory")
	fs.StringVar(&o.splitDir, "split", "", "Check every partition of a split directory instead")
	fs.StringVar(&o.classes, "classes", "", "Valid classes, comma separated (e.g. 0,1,2)")
	fs.StringSliceVar(&o.exts, "ext", nil, "Image extensions in probe order")
	fs.StringVarP(&o.format, "format", "f", "text", "Output format: text, json")
	fs.BoolVar(&o.noColor, "no-color", false, "Disable ANSI colors")
	fs.BoolVarP(&o.yes, "yes", "y", false, "Apply every remediation without asking")
	fs.BoolVar(&o.dryRun, "dry-run", false, "Report findings without changing files")
	fs.BoolVarP(&o.quiet, "quiet", "q", false, "Suppress diagnostics output")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "Log progress to stderr")

	fs.Usage = func() {
		fmt.Fprintf(c.stderr, "Usage: tidylabel check [flags]\n\n"+
			"Run the label checks in order. After each check with findings,\n"+
			"ask whether to delete the offending boxes or files.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if fs.NArg() > 0 {
		return c.fail("check takes no arguments")
	}
	if o.yes && o.dryRun {
		return c.fail("--yes and --dry-run are mutually exclusive")
	}

	cfg, err := loadConfig(o.configPath)
	if err != nil {
		return c.fail("%v", err)
	}

	classes := cfg.ClassSet()
	if o.classes != "" {
		classes, err = curate.ParseClasses(o.classes)
		if err != nil {
			return c.fail("--classes: %v", err)
		}
	}

	formatter, err := output.New(o.format, !o.noColor)
	if err != nil {
		return c.fail("%v", err)
	}

	var sources []lint.Source
	base := lint.Source{
		ImageExts:    imageExts(o.exts, cfg),
		ValidClasses: classes,
		Ignore:       cfg.Ignore,
	}
	if o.splitDir != "" {
		for _, p := range split.Partitions {
			src := base
			src.LabelsDir = split.PartitionDir(o.splitDir, p, split.LabelsDir)
			src.ImagesDir = split.PartitionDir(o.splitDir, p, split.ImagesDir)
			sources = append(sources, src)
		}
	} else {
		base.LabelsDir = pick(o.labels, cfg.Labels)
		base.ImagesDir = pick(o.images, cfg.Images)
		if base.LabelsDir == "" || base.ImagesDir == "" {
			return c.fail("check needs --labels and --images (or labels/images in %s)", config.FileName)
		}
		sources = append(sources, base)
	}

	return c.check(cfg, sources, o, formatter)
}

func (c *cli) check(cfg *config.Config, sources []lint.Source, o checkOptions, formatter output.Formatter) int {
	interactive := !o.yes && !o.dryRun
	var decide engine.Decide
	switch {
	case o.yes:
		decide = engine.Always(true)
	case o.dryRun:
		decide = engine.Always(false)
	default:
		decide = (&prompter{in: bufio.NewReader(c.stdin), out: c.stdout}).decide
	}

	runner := &engine.Runner{
		Config:  cfg,
		Rules:   rule.All(),
		Confirm: decide,
		OnCheck: func(cr engine.CheckResult) { c.reportCheck(cr, interactive) },
		Logger:  c.logger(o.verbose).With("check"),
	}

	var remaining []lint.Diagnostic
	var errs []error
	changed := 0
	for _, src := range sources {
		if len(sources) > 1 {
			fmt.Fprintf(c.stdout, "== %s ==\n", src.LabelsDir)
		}
		result, err := runner.Run(src)
		if err != nil {
			return c.fail("%v", err)
		}
		remaining = append(remaining, result.Remaining()...)
		errs = append(errs, result.Errors...)
		for _, cr := range result.Checks {
			changed += len(cr.Changed)
		}
	}

	for _, e := range errs {
		fmt.Fprintf(c.stderr, "tidylabel: %v\n", e)
	}

	if !o.quiet && len(remaining) > 0 {
		if err := formatter.Format(c.stderr, remaining); err != nil {
			return c.fail("error writing output: %v", err)
		}
	}

	fmt.Fprintf(c.stdout, "Validation done: %d finding(s) remain, %d file(s) changed.\n", len(remaining), changed)

	if len(errs) > 0 && len(remaining) == 0 {
		return exitError
	}
	if len(remaining) > 0 {
		return exitViolations
	}
	return exitOK
}

// reportCheck prints the per-check summary lines. In interactive mode
// the prompt has already printed the finding count.
func (c *cli) reportCheck(cr engine.CheckResult, interactive bool) {
	n := len(cr.Diagnostics)
	if n == 0 {
		fmt.Fprintf(c.stdout, "No %s found.\n", cr.Subject)
		return
	}
	if !interactive {
		fmt.Fprintf(c.stdout, "%d %s found.\n", n, cr.Subject)
	}
	if !cr.Fixable {
		return
	}
	if cr.Remediated() {
		fmt.Fprintf(c.stdout, "%s deleted.\n", capitalize(cr.Subject))
	} else {
		fmt.Fprintf(c.stdout, "%s not deleted.\n", capitalize(cr.Subject))
	}
}

// prompter asks on out and reads the answer from in. Only "yes"
// proceeds.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func (p *prompter) decide(r rule.Rule, diags []lint.Diagnostic) bool {
	subject := rule.Subject(r)
	fmt.Fprintf(p.out, "%d %s found.\n", len(diags), subject)
	fmt.Fprintf(p.out, "Do you want to delete these %s? (yes/no): ", subject)
	answer, err := p.in.ReadString('\n')
	if err != nil && answer == "" {
		fmt.Fprintln(p.out)
		return false
	}
	return strings.ToLower(strings.TrimSpace(answer)) == "yes"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
