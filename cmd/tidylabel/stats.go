package main

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	flag "github.com/spf13/pflag"

	"github.com/jeduden/tidylabel/internal/config"
	"github.com/jeduden/tidylabel/internal/split"
	"github.com/jeduden/tidylabel/internal/stats"
)

// runStats implements the "stats" subcommand.
func (c *cli) runStats(args []string) int {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	var (
		configPath   string
		splitDir     string
		trainDir     string
		validDir     string
		out          string
		groupPattern string
	)
	fs.StringVarP(&configPath, "config", "c", "", "Override config file path")
	fs.StringVar(&splitDir, "split", "", "Split directory holding train/ and valid/")
	fs.StringVar(&trainDir, "train", "", "Train labels directory")
	fs.StringVar(&validDir, "valid", "", "Validation labels directory")
	fs.StringVarP(&out, "out", "o", "", "Write summary.csv and detail.csv into this directory")
	fs.StringVar(&groupPattern, "group-pattern", "", "Regexp whose first group is the video key")
	fs.Usage = func() {
		fmt.Fprintf(c.stderr, "Usage: tidylabel stats [flags]\n\n"+
			"Compare per-class box counts of the train and validation sets\n"+
			"and list what each video contributes.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return c.fail("%v", err)
	}
	if base := pick(splitDir, cfg.Split.Out); base != "" {
		trainDir = pick(trainDir, split.PartitionDir(base, split.Train, split.LabelsDir))
		validDir = pick(validDir, split.PartitionDir(base, split.Validation, split.LabelsDir))
	}
	if trainDir == "" || validDir == "" {
		return c.fail("stats needs --split or --train and --valid (or split.out in %s)", config.FileName)
	}

	extractor, err := split.NewGroupExtractor(pick(groupPattern, cfg.Split.GroupPatternOrDefault()))
	if err != nil {
		return c.fail("%v", err)
	}
	report, err := stats.BuildReport(trainDir, validDir, extractor)
	if err != nil {
		return c.fail("%v", err)
	}

	tw := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "CLASS\tTRAIN\tVALID\tTOTAL\tTRAIN %\tVALID %\t")
	for _, row := range report.Summary {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%.2f\t%.2f\t\n",
			row.Class, row.TrainCount, row.ValidationCount, row.TotalCount, row.TrainPct, row.ValidationPct)
	}
	_ = tw.Flush()

	if out != "" {
		if err := report.Write(out); err != nil {
			return c.fail("%v", err)
		}
		fmt.Fprintf(c.stdout, "Statistics report written to %s\n", out)
	}
	return exitOK
}

// runEDA implements the "eda" subcommand.
func (c *cli) runEDA(args []string) int {
	fs := flag.NewFlagSet("eda", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	var (
		configPath string
		labels     string
		out        string
	)
	fs.StringVarP(&configPath, "config", "c", "", "Override config file path")
	fs.StringVar(&labels, "labels", "", "Labels directory")
	fs.StringVarP(&out, "out", "o", "", "Chart path (.png, .svg or .pdf)")
	fs.Usage = func() {
		fmt.Fprintf(c.stderr, "Usage: tidylabel eda [flags]\n\n"+
			"Print files and boxes per class, ordered by file count, and\n"+
			"optionally plot them as a bar chart.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitError
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return c.fail("%v", err)
	}
	labels = pick(labels, cfg.Labels)
	if labels == "" {
		return c.fail("eda needs --labels (or labels in %s)", config.FileName)
	}

	dist, err := stats.Distribution(labels)
	if err != nil {
		return c.fail("%v", err)
	}

	tw := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "CLASS\tFILES\tBOXES\t")
	for _, s := range dist {
		fmt.Fprintf(tw, "%d\t%d\t%d\t\n", s.Class, s.Files, s.Boxes)
	}
	_ = tw.Flush()

	if out != "" {
		if err := stats.PlotDistribution(dist, out); err != nil {
			return c.fail("%v", err)
		}
		fmt.Fprintf(c.stdout, "Plot saved as %s\n", filepath.Clean(out))
	}
	return exitOK
}
