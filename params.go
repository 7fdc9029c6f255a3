package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/codemind-ai/review-contract-tests/framework"

	"github.com/alessio/shellescape"
)

type commandParams struct {
	serviceURL string
	configFile string
	filters    framework.RegexFilters
	debug      bool
	debugAll   bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.serviceURL, "url", "", "base URL of the code-review service")
	fs.StringVar(&c.configFile, "config", "", "optional YAML configuration file")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select scenarios to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select scenarios not to run")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed scenarios")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all scenarios")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	return true
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// rerunFilterPatterns returns one -run pattern per failed scenario, each
// anchored so that on replay it selects exactly that scenario and the
// group levels leading to it.
func rerunFilterPatterns(failures []framework.TestResult) []string {
	patterns := make([]string, 0, len(failures))
	for _, f := range failures {
		patterns = append(patterns, "^"+regexp.QuoteMeta(f.TestID.String())+"$")
	}
	return patterns
}

// rerunCommand builds a copy-pasteable command line that re-runs only the
// failed scenarios, with debug output enabled. The -url flag is omitted if
// the URL came from the config file rather than the command line.
func rerunCommand(params commandParams, failures []framework.TestResult) string {
	var b commandBuilder
	b.add(os.Args[0])
	if params.serviceURL != "" {
		b.add("-url", params.serviceURL)
	}
	if params.configFile != "" {
		b.add("-config", params.configFile)
	}
	for _, p := range rerunFilterPatterns(failures) {
		b.add("-run", p)
	}
	b.add("-debug")
	return b.String()
}
