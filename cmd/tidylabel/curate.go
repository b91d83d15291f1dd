package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	flag "github.com/spf13/pflag"

	"github.com/jeduden/tidylabel/internal/config"
	"github.com/jeduden/tidylabel/internal/curate"
)

// runFilter implements the "filter" subcommand.
func (c *cli) runFilter(args []string) int {
	fs := flag.NewFlagSet("filter", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	var (
		configPath string
		labels     string
		classes    string
		remove     []string
	)
	fs.StringVarP(&configPath, "config", "c", "", "Override config file path")
	fs.StringVar(&labels, "labels", "", "Labels directory")
	fs.StringVar(&classes, "classes", "", "Classes to keep, comma separated")
	fs.StringSliceVar(&remove, "delete", []string{"classes.txt", "class.txt"}, "File names to delete first")
	fs.Usage = func() {
		fmt.Fprintf(c.stderr, "Usage: tidylabel filter [flags]\n\n"+
			"Delete the named files, keep only boxes of the given classes,\n"+
			"delete label files left without boxes, then remove empty files.\n\n"+
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
		return c.fail("filter needs --labels (or labels in %s)", config.FileName)
	}
	keep := cfg.ClassSet()
	if classes != "" {
		keep, err = curate.ParseClasses(classes)
		if err != nil {
			return c.fail("--classes: %v", err)
		}
	}
	if len(keep) == 0 {
		return c.fail("filter needs --classes (or classes in %s)", config.FileName)
	}

	removed, err := curate.DeleteNamed(labels, remove)
	if err != nil {
		return c.fail("%v", err)
	}
	for _, p := range removed {
		fmt.Fprintf(c.stdout, "Deleted %s\n", p)
	}

	res, err := curate.FilterClasses(labels, keep)
	if err != nil {
		return c.fail("%v", err)
	}
	empty, err := curate.RemoveEmpty(labels)
	if err != nil {
		return c.fail("%v", err)
	}

	fmt.Fprintf(c.stdout, "%d file(s) rewritten, %d deleted, %d unchanged, %d empty removed\n",
		len(res.Rewritten), len(res.Deleted), res.Unchanged, len(empty))
	if res.UnparseableLines > 0 {
		fmt.Fprintf(c.stderr, "tidylabel: dropped %d unparseable line(s)\n", res.UnparseableLines)
	}
	return exitOK
}

// runRemap implements the "remap" subcommand.
func (c *cli) runRemap(args []string) int {
	fs := flag.NewFlagSet("remap", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	var (
		configPath string
		mapping    string
		contiguous bool
	)
	fs.StringVarP(&configPath, "config", "c", "", "Override config file path")
	fs.StringVarP(&mapping, "map", "m", "", "Explicit mapping old:new,... (e.g. 21:0,24:1)")
	fs.BoolVar(&contiguous, "contiguous", false, "Map the sorted unique classes onto 0..n-1")
	fs.Usage = func() {
		fmt.Fprintf(c.stderr, "Usage: tidylabel remap (--map M | --contiguous) [labels-dir...]\n\n"+
			"Rewrite the class id of every box. With --contiguous the mapping\n"+
			"is computed over all given directories together.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if (mapping == "") == !contiguous {
		return c.fail("remap needs exactly one of --map or --contiguous")
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return c.fail("%v", err)
	}
	dirs := fs.Args()
	if len(dirs) == 0 && cfg.Labels != "" {
		dirs = []string{cfg.Labels}
	}
	if len(dirs) == 0 {
		return c.fail("remap needs a labels directory")
	}

	var m map[int]int
	if contiguous {
		m, err = curate.ContiguousMapping(dirs...)
	} else {
		m, err = curate.ParseMapping(mapping)
	}
	if err != nil {
		return c.fail("%v", err)
	}
	fmt.Fprintf(c.stdout, "Mapping: %s\n", formatMapping(m))

	for _, dir := range dirs {
		res, err := curate.Remap(dir, m)
		if err != nil {
			return c.fail("%v", err)
		}
		fmt.Fprintf(c.stdout, "%s: %d file(s) rewritten, %d line(s) remapped\n",
			dir, len(res.Rewritten), res.RemappedLines)
	}
	return exitOK
}

func formatMapping(m map[int]int) string {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%d:%d", k, m[k])
	}
	return strings.Join(parts, ",")
}

// runClasses implements the "classes" subcommand.
func (c *cli) runClasses(args []string) int {
	fs := flag.NewFlagSet("classes", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	var configPath string
	fs.StringVarP(&configPath, "config", "c", "", "Override config file path")
	fs.Usage = func() {
		fmt.Fprintf(c.stderr, "Usage: tidylabel classes [labels-dir...]\n\n"+
			"Print the sorted set of classes used by the label files.\n\n"+
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
	dirs := fs.Args()
	if len(dirs) == 0 && cfg.Labels != "" {
		dirs = []string{cfg.Labels}
	}
	if len(dirs) == 0 {
		return c.fail("classes needs a labels directory")
	}

	classes, err := curate.UniqueClasses(dirs...)
	if err != nil {
		return c.fail("%v", err)
	}
	parts := make([]string, len(classes))
	for i, class := range classes {
		parts[i] = fmt.Sprint(class)
	}
	fmt.Fprintf(c.stdout, "Unique classes: [%s]\n", strings.Join(parts, ", "))
	return exitOK
}

// runMatch implements the "match" subcommand.
func (c *cli) runMatch(args []string) int {
	fs := flag.NewFlagSet("match", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	var (
		configPath string
		images     string
		labels     string
		copyImages string
		copyLabels string
		exts       []string
		prune      bool
	)
	fs.StringVarP(&configPath, "config", "c", "", "Override config file path")
	fs.StringVar(&images, "images", "", "Images directory")
	fs.StringVar(&labels, "labels", "", "Labels directory")
	fs.StringVar(&copyImages, "copy-images", "", "Copy images that have a label into this directory")
	fs.StringVar(&copyLabels, "copy-labels", "", "Copy labels that have an image into this directory")
	fs.StringSliceVar(&exts, "ext", nil, "Image extensions")
	fs.BoolVar(&prune, "prune", false, "Delete images without labels and labels without images")
	fs.Usage = func() {
		fmt.Fprintf(c.stderr, "Usage: tidylabel match [flags]\n\n"+
			"Pair images with labels by file stem. Without action flags,\n"+
			"only report the counts.\n\n"+
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
	images = pick(images, cfg.Images)
	labels = pick(labels, cfg.Labels)
	if images == "" || labels == "" {
		return c.fail("match needs --images and --labels (or images/labels in %s)", config.FileName)
	}
	e := imageExts(exts, cfg)

	if copyImages != "" {
		copied, err := curate.CopyMatchingImages(images, labels, copyImages, e)
		if err != nil {
			return c.fail("%v", err)
		}
		fmt.Fprintf(c.stdout, "Copied %d image(s) to %s\n", len(copied), copyImages)
	}
	if copyLabels != "" {
		copied, err := curate.CopyMatchingLabels(images, labels, copyLabels, e)
		if err != nil {
			return c.fail("%v", err)
		}
		fmt.Fprintf(c.stdout, "Copied %d label(s) to %s\n", len(copied), copyLabels)
	}
	if prune {
		removedImages, err := curate.RemoveExtraImages(images, labels, e)
		if err != nil {
			return c.fail("%v", err)
		}
		removedLabels, err := curate.RemoveExtraLabels(images, labels, e)
		if err != nil {
			return c.fail("%v", err)
		}
		fmt.Fprintf(c.stdout, "Removed %d image(s) and %d label(s)\n", len(removedImages), len(removedLabels))
	}

	p, err := curate.Match(images, labels, e)
	if err != nil {
		return c.fail("%v", err)
	}
	fmt.Fprintf(c.stdout, "%d pair(s), %d image(s) without labels, %d label(s) without images\n",
		len(p.Images), len(p.ExtraImages), len(p.ExtraLabels))
	return exitOK
}

// runExclusive implements the "exclusive" subcommand.
func (c *cli) runExclusive(args []string) int {
	fs := flag.NewFlagSet("exclusive", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	var (
		configPath string
		images     string
		labels     string
		format     string
		exts       []string
		files      bool
		thin       int
		count      int
		seed       uint64
	)
	fs.StringVarP(&configPath, "config", "c", "", "Override config file path")
	fs.StringVar(&images, "images", "", "Images directory (for --thin)")
	fs.StringVar(&labels, "labels", "", "Labels directory")
	fs.StringVarP(&format, "format", "f", "text", "Output format: text, json")
	fs.StringSliceVar(&exts, "ext", nil, "Image extensions (for --thin)")
	fs.BoolVar(&files, "files", false, "List the single-class files instead of counts")
	fs.IntVar(&thin, "thin", -1, "Delete single-class files of this class")
	fs.IntVarP(&count, "count", "n", 0, "Number of files to delete with --thin")
	fs.Uint64Var(&seed, "seed", 1, "Random seed for --thin")
	fs.Usage = func() {
		fmt.Fprintf(c.stderr, "Usage: tidylabel exclusive [flags]\n\n"+
			"Per class, count the label files where it is the only class and\n"+
			"the files it shares. --thin deletes a seeded random sample of one\n"+
			"class's single-class files together with their images.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if format != "text" && format != "json" {
		return c.fail("unknown format %q (valid: text, json)", format)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return c.fail("%v", err)
	}
	labels = pick(labels, cfg.Labels)
	if labels == "" {
		return c.fail("exclusive needs --labels (or labels in %s)", config.FileName)
	}

	if fs.Changed("thin") {
		images = pick(images, cfg.Images)
		if images == "" {
			return c.fail("--thin needs --images")
		}
		if count <= 0 {
			return c.fail("--thin needs a positive --count")
		}
		res, err := curate.Thin(images, labels, thin, count, imageExts(exts, cfg), seed)
		if err != nil {
			return c.fail("%v", err)
		}
		fmt.Fprintf(c.stdout, "Deleted %d label(s) and %d image(s) of class %d\n",
			len(res.Labels), len(res.Images), thin)
		return exitOK
	}

	if files {
		list, err := curate.ExclusiveFiles(labels)
		if err != nil {
			return c.fail("%v", err)
		}
		if format == "json" {
			return c.writeJSON(list)
		}
		tw := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "CLASS\tFILE")
		for _, ef := range list {
			fmt.Fprintf(tw, "%d\t%s\n", ef.Class, ef.File)
		}
		_ = tw.Flush()
		return exitOK
	}

	stats, err := curate.AnalyzeExclusive(labels)
	if err != nil {
		return c.fail("%v", err)
	}
	if format == "json" {
		return c.writeJSON(stats)
	}
	tw := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CLASS\tEXCLUSIVE\tSHARED")
	for _, e := range stats {
		fmt.Fprintf(tw, "%d\t%d\t%d\n", e.Class, e.Exclusive, e.Shared)
	}
	_ = tw.Flush()
	return exitOK
}

func (c *cli) writeJSON(v any) int {
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return c.fail("error writing output: %v", err)
	}
	return exitOK
}
