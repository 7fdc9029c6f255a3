package main

import (
	"fmt"
	"os"

	"github.com/codemind-ai/review-contract-tests/apitests"
	"github.com/codemind-ai/review-contract-tests/client"
	"github.com/codemind-ai/review-contract-tests/framework"

	"golang.org/x/time/rate"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	var params commandParams
	if !params.Read(args) {
		return 1
	}

	cfg, err := loadConfig(params.configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %s\n", err)
		return 1
	}
	serviceURL := params.serviceURL
	if serviceURL == "" {
		serviceURL = cfg.Service.URL
	}
	if serviceURL == "" {
		fmt.Fprintln(os.Stderr, "-url is required (or service.url in the config file)")
		return 1
	}

	service := client.NewReviewServiceClient(serviceURL, client.Options{
		ReadTimeout:     cfg.Timeouts.Read.orElse(client.DefaultReadTimeout),
		AnalysisTimeout: cfg.Timeouts.Analysis.orElse(client.DefaultAnalysisTimeout),
	})

	if err := service.WaitForService(cfg.Timeouts.StatusQuery.orElse(defaultStatusQueryTimeout), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Review service error: %s\n", err)
		return 1
	}

	fmt.Println()
	framework.PrintFilterDescription(params.filters)
	fmt.Println("Running scenario suite")

	testLogger := &ConsoleTestLogger{
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	session := apitests.NewSession()
	limiter := rate.NewLimiter(rate.Every(cfg.Pacing.Interval.orElse(defaultPacingInterval)), 1)

	results := apitests.RunTestSuite(service, session, limiter, params.filters.AsFilter, testLogger)

	fmt.Println()
	framework.PrintResults(results)
	probesRun, probesPassed := session.Totals()
	fmt.Printf("Probes passed: %d/%d\n", probesPassed, probesRun)

	if !results.OK() {
		fmt.Printf("\nTo re-run only the failed scenarios:\n  %s\n", rerunCommand(params, results.Failures))
		return 1
	}
	return 0
}
