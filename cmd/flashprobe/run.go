package main

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"time"

	"github.com/spf13/cobra"
	"pkt.systems/flashprobe"
	"pkt.systems/pslog"
)

func newRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Walk the flashcard API surface and report each check",
		Args:  cobra.NoArgs,
		RunE:  runE,
	}

	addLoggingFlags(runCmd.Flags())
	runCmd.Flags().String("base-url", "http://localhost:5002/api/v1", "API base URL")
	runCmd.Flags().String("token-file", "token.txt", "File holding the bearer token")
	runCmd.Flags().String("set-id-file", "flashcardset_id.txt", "File holding the target flashcard set id")
	runCmd.Flags().String("token", "", "Bearer token (overrides --token-file)")
	runCmd.Flags().String("set-id", "", "Flashcard set id (overrides --set-id-file)")
	runCmd.Flags().Int("timeout", 15, "Per-request timeout seconds")
	runCmd.Flags().Int("poll-attempts", 1, "Delayed task-status re-checks after the immediate one")
	runCmd.Flags().Int("poll-interval", 2000, "Delay before each task re-check (ms)")
	runCmd.Flags().Float64("poll-backoff", 1, "Multiplier applied to the poll interval after each re-check")
	runCmd.Flags().StringP("output", "o", "", "Write summary to file (see --format)")
	runCmd.Flags().StringP("format", "f", "json", "Output format: json|junit|html")
	runCmd.Flags().String("reporter-json", "", "Write JSON report to path")
	runCmd.Flags().String("reporter-junit", "", "Write JUnit XML report to path")
	runCmd.Flags().String("reporter-html", "", "Write HTML report to path")
	runCmd.Flags().Bool("reporter-skip-all-headers", false, "Omit headers from reporter outputs")
	runCmd.Flags().StringSlice("reporter-skip-headers", nil, "Skip specific headers (case-insensitive) from reporter outputs")
	runCmd.Flags().Bool("insecure", false, "Skip TLS verification")
	runCmd.Flags().String("cacert", "", "Path to custom CA certificate (PEM)")
	runCmd.Flags().Bool("ignore-truststore", false, "Use only the provided CA certificate")
	runCmd.Flags().Bool("noproxy", false, "Disable proxy (ignore environment)")
	runCmd.Flags().Bool("disable-cookies", false, "Do not store/send cookies between requests")
	runCmd.Flags().Bool("strict", false, "Exit non-zero when any check's status mismatches")

	return runCmd
}

func newLogger(structured bool, level string, flagSet bool, caller bool, w io.Writer) (pslog.Logger, error) {
	if w == nil {
		w = os.Stdout
	}

	var logger pslog.Logger
	opts := pslog.Options{CallerKeyval: caller}
	if structured {
		opts.Mode = pslog.ModeStructured
	}
	logger = pslog.NewWithOptions(w, opts)

	logger = logger.LogLevel(pslog.InfoLevel)

	if flagSet {
		if lvl, ok := pslog.ParseLevel(level); ok {
			return logger.LogLevel(lvl), nil
		}
		return nil, fmt.Errorf("unknown level %q", level)
	}

	if lvl, ok := pslog.LevelFromEnv("LOG_LEVEL"); ok {
		return logger.LogLevel(lvl), nil
	}
	if lvl, ok := pslog.ParseLevel(level); ok {
		return logger.LogLevel(lvl), nil
	}
	return logger, nil
}

func runE(cmd *cobra.Command, args []string) error {
	baseURL, _ := cmd.Flags().GetString("base-url")
	tokenFile, _ := cmd.Flags().GetString("token-file")
	setIDFile, _ := cmd.Flags().GetString("set-id-file")
	token, _ := cmd.Flags().GetString("token")
	setID, _ := cmd.Flags().GetString("set-id")
	timeoutSec, _ := cmd.Flags().GetInt("timeout")
	pollAttempts, _ := cmd.Flags().GetInt("poll-attempts")
	pollIntervalMS, _ := cmd.Flags().GetInt("poll-interval")
	pollBackoff, _ := cmd.Flags().GetFloat64("poll-backoff")
	output, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")
	reportJSON, _ := cmd.Flags().GetString("reporter-json")
	reportJUnit, _ := cmd.Flags().GetString("reporter-junit")
	reportHTML, _ := cmd.Flags().GetString("reporter-html")
	reportSkipAll, _ := cmd.Flags().GetBool("reporter-skip-all-headers")
	reportSkip, _ := cmd.Flags().GetStringSlice("reporter-skip-headers")
	insecure, _ := cmd.Flags().GetBool("insecure")
	cacert, _ := cmd.Flags().GetString("cacert")
	ignoreTS, _ := cmd.Flags().GetBool("ignore-truststore")
	noProxy, _ := cmd.Flags().GetBool("noproxy")
	disableCookies, _ := cmd.Flags().GetBool("disable-cookies")
	strict, _ := cmd.Flags().GetBool("strict")

	logger := loggerFromCmd(cmd)

	// Inline credentials win; otherwise both come from the plain-text files.
	cfg := flashprobe.SuiteConfig{
		BaseURL: baseURL,
		Token:   token,
		SetID:   setID,
		Logger:  logger,
	}
	if cfg.Token == "" || cfg.SetID == "" {
		loaded, err := flashprobe.LoadSuiteConfig(tokenFile, setIDFile)
		if err != nil {
			logger.Fatal("load config", "err", err)
			return nil
		}
		if cfg.Token == "" {
			cfg.Token = loaded.Token
		}
		if cfg.SetID == "" {
			cfg.SetID = loaded.SetID
		}
	}
	cfg.PollAttempts = pollAttempts
	cfg.PollInterval = time.Duration(pollIntervalMS) * time.Millisecond
	cfg.PollBackoff = pollBackoff

	httpClient, err := buildHTTPClient(insecure, cacert, ignoreTS, noProxy, disableCookies)
	if err != nil {
		logger.Fatal("http client", "err", err)
		return nil
	}

	proberOpts := []flashprobe.Option{
		flashprobe.WithLogger(logger),
		flashprobe.WithHTTPClient(httpClient),
	}
	if timeoutSec > 0 {
		proberOpts = append(proberOpts, flashprobe.WithTimeout(time.Duration(timeoutSec)*time.Second))
	}
	p, err := flashprobe.New(cmd.Context(), proberOpts...)
	if err != nil {
		logger.Fatal("init", "err", err)
		return nil
	}

	sum, err := flashprobe.RunSuite(cmd.Context(), p, cfg)
	if err != nil {
		logger.Fatal("run", "err", err)
		return nil
	}

	reportOpts := flashprobe.ReportOptions{
		SkipAllHeaders: reportSkipAll,
		SkipHeaders:    reportSkip,
	}
	if err := writeOutputs(output, format, reportJSON, reportJUnit, reportHTML, reportOpts, sum); err != nil {
		logger.Fatal("report", "err", err)
		return nil
	}

	printSummary(sum, logger)
	if strict && sum.Failed > 0 {
		logger.Fatal("checks failed", "count", sum.Failed)
	}
	return nil
}

func buildHTTPClient(insecure bool, cacert string, ignoreTS bool, noProxy bool, disableCookies bool) (*http.Client, error) {
	tlsConfig := &tls.Config{InsecureSkipVerify: insecure} //nolint:gosec // user opted in

	if cacert != "" {
		pemData, err := os.ReadFile(cacert)
		if err != nil {
			return nil, fmt.Errorf("read cacert: %w", err)
		}
		var pool *x509.CertPool
		if ignoreTS {
			pool = x509.NewCertPool()
		} else {
			pool, err = x509.SystemCertPool()
			if err != nil {
				pool = x509.NewCertPool()
			}
		}
		if ok := pool.AppendCertsFromPEM(pemData); !ok {
			return nil, fmt.Errorf("failed to append CA cert")
		}
		tlsConfig.RootCAs = pool
	}

	tr := &http.Transport{
		TLSClientConfig: tlsConfig,
	}
	if !noProxy {
		tr.Proxy = http.ProxyFromEnvironment
	}

	client := &http.Client{
		Transport: tr,
		Timeout:   15 * time.Second,
	}
	if !disableCookies {
		if jar, err := cookiejar.New(nil); err == nil {
			client.Jar = jar
		}
	}
	return client, nil
}

func printSummary(sum flashprobe.RunSummary, logger pslog.Base) {
	for _, c := range sum.Checks {
		printSingle(c, logger)
	}
	logger.Info("summary", "total", sum.Total, "passed", sum.Passed, "failed", sum.Failed, "elapsed", sum.TotalElapsed.String())
}

func printSingle(res flashprobe.CheckResult, logger pslog.Base) {
	if res.Passed {
		logger.Info("pass", "name", res.Name, "method", res.Method, "url", res.URL, "status", res.Status, "dur", res.Duration.String())
		return
	}
	logger.Error("fail", "name", res.Name, "method", res.Method, "url", res.URL, "status", res.Status, "expected", res.ExpectStatus, "dur", res.Duration.String())
}

func writeOutputs(output, format, reportJSON, reportJUnit, reportHTML string, opts flashprobe.ReportOptions, sum flashprobe.RunSummary) error {
	sum = flashprobe.FilterReportHeaders(sum, opts)
	if output != "" {
		if err := flashprobe.WriteReport(format, output, sum); err != nil {
			return err
		}
	}
	if reportJSON != "" {
		if err := flashprobe.WriteReportJSON(reportJSON, sum); err != nil {
			return err
		}
	}
	if reportJUnit != "" {
		if err := flashprobe.WriteReportJUnit(reportJUnit, sum); err != nil {
			return err
		}
	}
	if reportHTML != "" {
		if err := flashprobe.WriteReportHTML(reportHTML, sum); err != nil {
			return err
		}
	}
	return nil
}
