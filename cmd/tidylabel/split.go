package main

import (
	"fmt"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/jeduden/tidylabel/internal/config"
	"github.com/jeduden/tidylabel/internal/split"
)

// runSplit implements the "split" subcommand.
func (c *cli) runSplit(args []string) int {
	fs := flag.NewFlagSet("split", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	var (
		configPath   string
		images       string
		labels       string
		out          string
		groupPattern string
		exts         []string
		valPercent   float64
		testPercent  float64
		dryRun       bool
		verbose      bool
	)

	fs.StringVarP(&configPath, "config", "c", "", "Override config file path")
	fs.StringVar(&images, "images", "", "Images directory")
	fs.StringVar(&labels, "labels", "", "Labels directory")
	fs.StringVarP(&out, "out", "o", "", "Base directory for train/valid/test")
	fs.StringVar(&groupPattern, "group-pattern", "", "Regexp whose first group is the video key")
	fs.StringSliceVar(&exts, "ext", nil, "Image extensions in probe order")
	fs.Float64Var(&valPercent, "val", config.DefaultValPercent, "Validation percentage per class")
	fs.Float64Var(&testPercent, "test", config.DefaultTestPercent, "Test percentage per class")
	fs.BoolVar(&dryRun, "dry-run", false, "Print the assignment without copying files")
	fs.BoolVarP(&verbose, "verbose", "v", false, "Log progress to stderr")

	fs.Usage = func() {
		fmt.Fprintf(c.stderr, "Usage: tidylabel split [flags]\n\n"+
			"Assign whole videos to test, then validation, under per-class\n"+
			"targets; the rest go to train. Pairs are copied into\n"+
			"<out>/{train,valid,test}/{images,labels}.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if fs.NArg() > 0 {
		return c.fail("split takes no arguments")
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return c.fail("%v", err)
	}
	if !fs.Changed("val") {
		valPercent = cfg.Split.ValPercentOrDefault()
	}
	if !fs.Changed("test") {
		testPercent = cfg.Split.TestPercentOrDefault()
	}
	if err := split.ValidatePercents(valPercent, testPercent); err != nil {
		return c.fail("%v", err)
	}

	labels = pick(labels, cfg.Labels)
	images = pick(images, cfg.Images)
	out = pick(out, cfg.Split.Out)
	if labels == "" || images == "" {
		return c.fail("split needs --labels and --images (or labels/images in %s)", config.FileName)
	}
	if out == "" && !dryRun {
		return c.fail("split needs --out (or split.out in %s)", config.FileName)
	}

	extractor, err := split.NewGroupExtractor(pick(groupPattern, cfg.Split.GroupPatternOrDefault()))
	if err != nil {
		return c.fail("%v", err)
	}

	logger := c.logger(verbose).With("split")
	counts, err := split.Aggregate(labels, extractor, logger)
	if err != nil {
		return c.fail("%v", err)
	}
	if len(counts.Ungrouped) > 0 {
		fmt.Fprintf(c.stderr, "tidylabel: %d label file(s) without a group were skipped\n", len(counts.Ungrouped))
	}

	a := split.Plan(counts, valPercent, testPercent)

	var stats split.MaterializeStats
	if !dryRun {
		m := &split.Materializer{BaseDir: out, ImageExts: imageExts(exts, cfg), Logger: logger}
		stats, err = m.Materialize(counts, a, labels, images)
		if err != nil {
			return c.fail("%v", err)
		}
	}

	report := split.NewReport(split.Run{
		LabelsDir:   labels,
		ImagesDir:   images,
		Extractor:   extractor,
		ValPercent:  valPercent,
		TestPercent: testPercent,
	}, counts, a, stats, time.Now())

	for _, p := range split.Partitions {
		s := report.Partitions[p]
		fmt.Fprintf(c.stdout, "%-10s %4d group(s) %6d file(s) %6d box(es)\n",
			p.String()+":", s.Groups, s.Files, s.Counts.Total())
	}

	if dryRun {
		return exitOK
	}
	if stats.MissingImages > 0 {
		fmt.Fprintf(c.stderr, "tidylabel: %d label file(s) had no image and were not copied\n", stats.MissingImages)
	}
	if err := split.WriteOutputs(out, report, split.AssignmentRows(counts, a)); err != nil {
		return c.fail("%v", err)
	}
	fmt.Fprintf(c.stdout, "Dataset split into %s\n", out)
	return exitOK
}
