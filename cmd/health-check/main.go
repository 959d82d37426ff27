// Package main provides a standalone health check command for the recipe assistant.
// This command can be used for Docker health checks and monitoring scripts.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/fx"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/container"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/pkg/healthcheck"
)

const (
	exitCodeSuccess = 0
	exitCodeFailure = 1
	exitCodeError   = 2
)

// Config holds command-line configuration
type Config struct {
	URL            string
	Timeout        time.Duration
	Verbose        bool
	OutputFormat   string
	ExpectedStatus string
	RetryCount     int
	RetryDelay     time.Duration
	ConfigPath     string
	LocalCheck     bool
}

func main() {
	config := parseFlags()

	if config.LocalCheck {
		os.Exit(runLocalHealthCheck(config))
	}
	os.Exit(runRemoteHealthCheck(config))
}

// parseFlags parses command-line flags
func parseFlags() Config {
	config := Config{}

	flag.StringVar(&config.URL, "url", "", "Health check endpoint URL (e.g., http://localhost:8080/health)")
	flag.DurationVar(&config.Timeout, "timeout", 10*time.Second, "Request timeout")
	flag.BoolVar(&config.Verbose, "verbose", false, "Verbose output")
	flag.StringVar(&config.OutputFormat, "format", "text", "Output format: text, json, compact")
	flag.StringVar(&config.ExpectedStatus, "expect", "healthy", "Expected status: healthy, degraded")
	flag.IntVar(&config.RetryCount, "retry", 0, "Number of retries on failure")
	flag.DurationVar(&config.RetryDelay, "retry-delay", 1*time.Second, "Delay between retries")
	flag.StringVar(&config.ConfigPath, "config", os.Getenv("KUCHARKA_CONFIG"), "Configuration file path")
	flag.BoolVar(&config.LocalCheck, "local", false, "Check storage and AI provider directly instead of over HTTP")

	flag.Parse()

	if config.URL == "" {
		config.URL = os.Getenv("HEALTH_CHECK_URL")
	}
	if config.URL == "" {
		config.URL = "http://localhost:8080/health"
	}

	return config
}

// runRemoteHealthCheck performs a remote health check via HTTP
func runRemoteHealthCheck(config Config) int {
	client := &http.Client{Timeout: config.Timeout}

	var lastError error
	for attempt := 0; attempt <= config.RetryCount; attempt++ {
		if attempt > 0 {
			if config.Verbose {
				fmt.Printf("Retrying in %v... (attempt %d/%d)\n", config.RetryDelay, attempt, config.RetryCount)
			}
			time.Sleep(config.RetryDelay)
		}

		resp, err := client.Get(config.URL)
		if err != nil {
			lastError = err
			if config.Verbose {
				fmt.Printf("Request failed: %v\n", err)
			}
			continue
		}

		return handleResponse(resp, config)
	}

	fmt.Printf("Health check failed after %d attempts: %v\n", config.RetryCount+1, lastError)
	return exitCodeError
}

// runLocalHealthCheck builds the storage backend and AI provider from the
// configuration and runs the same checks the server registers
func runLocalHealthCheck(config Config) int {
	var hc *healthcheck.HealthCheck
	app := fx.New(
		fx.NopLogger,
		container.CoreModule(config.ConfigPath),
		fx.Provide(container.NewHealthCheck),
		fx.Populate(&hc),
	)
	if err := app.Err(); err != nil {
		fmt.Printf("Failed to build application: %v\n", err)
		return exitCodeError
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		return exitCodeError
	}
	defer func() { _ = app.Stop(context.Background()) }()

	return outputResult(hc.Check(ctx), config)
}

// handleResponse handles the HTTP response
func handleResponse(resp *http.Response, config Config) int {
	defer resp.Body.Close()

	var response map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		fmt.Printf("Failed to decode response: %v\n", err)
		return exitCodeError
	}

	return outputResult(response, config)
}

// outputResult outputs the result based on the configured format
func outputResult(result interface{}, config Config) int {
	status := extractStatus(result)

	switch config.OutputFormat {
	case "json":
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
	case "compact":
		data, _ := json.Marshal(result)
		fmt.Println(string(data))
	default: // text
		outputText(result, config.Verbose)
	}

	return exitCode(status, healthcheck.Status(config.ExpectedStatus))
}

// exitCode maps the reported status to the process exit code. Degraded
// passes only when it is the expected status.
func exitCode(status, expected healthcheck.Status) int {
	switch {
	case status == expected, status == healthcheck.StatusHealthy:
		return exitCodeSuccess
	default:
		return exitCodeFailure
	}
}

// extractStatus extracts the status from the result
func extractStatus(result interface{}) healthcheck.Status {
	switch r := result.(type) {
	case healthcheck.Response:
		return r.Status
	case map[string]interface{}:
		if status, ok := r["status"].(string); ok {
			return healthcheck.Status(status)
		}
	}
	return healthcheck.StatusUnhealthy
}

// outputText outputs the result in text format
func outputText(result interface{}, verbose bool) {
	switch r := result.(type) {
	case healthcheck.Response:
		fmt.Printf("Status: %s\n", r.Status)
		fmt.Printf("Version: %s\n", r.Version)
		fmt.Printf("Timestamp: %s\n", r.Timestamp.Format(time.RFC3339))
		fmt.Printf("Duration: %dms\n", r.TotalDuration.Milliseconds())

		if verbose && len(r.Checks) > 0 {
			fmt.Println("\nChecks:")
			for _, check := range r.Checks {
				fmt.Printf("  %s: %s", check.Name, check.Status)
				if check.Message != "" {
					fmt.Printf(" (%s)", check.Message)
				}
				fmt.Printf(" [%dms]\n", check.Duration.Milliseconds())
			}
		}

	case map[string]interface{}:
		if status, ok := r["status"].(string); ok {
			fmt.Printf("Status: %s\n", status)
		}
		if verbose {
			data, _ := json.MarshalIndent(r, "", "  ")
			fmt.Println(string(data))
		}

	default:
		fmt.Printf("Unknown result type: %T\n", result)
	}
}
