package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/jeduden/tidylabel/internal/config"
	"github.com/jeduden/tidylabel/internal/rules"
)

// runInit implements the "init" subcommand: generate .tidylabel.yml.
func (c *cli) runInit(args []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	fs.Usage = func() {
		fmt.Fprintf(c.stderr, "Usage: tidylabel init\n\n"+
			"Generate a default %s config file in the current directory.\n", config.FileName)
	}
	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if fs.NArg() > 0 {
		return c.fail("init takes no arguments")
	}

	if _, err := os.Stat(config.FileName); err == nil {
		return c.fail("%s already exists", config.FileName)
	}

	data, err := yaml.Marshal(config.DumpDefaults())
	if err != nil {
		return c.fail("marshalling config: %v", err)
	}
	if err := os.WriteFile(config.FileName, data, 0o644); err != nil {
		return c.fail("writing %s: %v", config.FileName, err)
	}

	fmt.Fprintf(c.stderr, "tidylabel: created %s\n", config.FileName)
	return exitOK
}

const helpUsageText = `Usage: tidylabel help <topic>

Topics:
  rule [id|name]   Show rule documentation
`

// runHelp implements the "help" subcommand.
func (c *cli) runHelp(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(c.stderr, helpUsageText)
		return exitOK
	}

	switch args[0] {
	case "rule":
		if len(args) == 1 {
			return c.listAllRules()
		}
		return c.showRule(args[1])
	default:
		return c.fail("help: unknown topic %q", args[0])
	}
}

func (c *cli) listAllRules() int {
	list, err := rules.ListRules()
	if err != nil {
		return c.fail("%v", err)
	}
	for _, r := range list {
		fmt.Fprintf(c.stdout, "%-6s %-20s %s\n", r.ID, r.Name, r.Description)
	}
	return exitOK
}

func (c *cli) showRule(query string) int {
	content, err := rules.LookupRule(query)
	if err != nil {
		return c.fail("%v", err)
	}
	fmt.Fprint(c.stdout, content)
	return exitOK
}
