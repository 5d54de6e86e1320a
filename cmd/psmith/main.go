// Package main implements the psmith CLI for manual operations against the
// pagesmithd HTTP server.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	// serverURL is the base URL for the pagesmithd HTTP server
	serverURL string
	// version information
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "psmith",
	Short: "CLI for pagesmithd HTTP server operations",
	Long: `psmith is a command-line interface for interacting with the pagesmithd HTTP server.
It provides commands for generating documents, browsing templates, managing
snapshot history, and injecting API credentials.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8090", "pagesmithd server URL")
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(credentialsCmd)
}

// healthCmd checks server health
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check pagesmithd server health",
	Long: `Check the health status of the pagesmithd HTTP server.

Examples:
  # Check health
  psmith health

  # Check health on a different server
  psmith health --server http://localhost:8080`,
	RunE: runHealth,
}

// HealthResponse matches internal/http HealthResponse
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse matches the server's error body.
type ErrorResponse struct {
	Status     int    `json:"status"`
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter string `json:"retryAfter"`
}

// runHealth handles the health command
func runHealth(cmd *cobra.Command, args []string) error {
	var resp HealthResponse
	if err := getJSON("/health", &resp); err != nil {
		return err
	}

	fmt.Printf("Server Status: %s\n", resp.Status)
	if resp.Version != "" {
		fmt.Printf("Server Version: %s\n", resp.Version)
	}
	fmt.Printf("Server URL: %s\n", serverURL)
	return nil
}

// getJSON performs a GET and decodes the JSON response into out.
func getJSON(path string, out any) error {
	client := &http.Client{Timeout: 10 * time.Second}

	resp, err := client.Get(serverURL + path)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", serverURL+path, err)
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

// postJSON performs a POST with a JSON body and decodes the response into
// out. Generation can be slow, so the timeout is generous.
func postJSON(path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, serverURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 5 * time.Minute}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to %s: %w", serverURL+path, err)
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

// decodeResponse maps non-200 statuses onto errors using the server's error
// body when present.
func decodeResponse(resp *http.Response, out any) error {
	if resp.StatusCode != http.StatusOK {
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("server returned status %d (failed to read response body: %w)", resp.StatusCode, readErr)
		}

		var errResp ErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Message != "" {
			if errResp.RetryAfter != "" {
				return fmt.Errorf("server returned status %d: %s (retry after %s)", resp.StatusCode, errResp.Message, errResp.RetryAfter)
			}
			return fmt.Errorf("server returned status %d: %s", resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// readInput reads content from a file argument or stdin when the argument is
// "-" or empty.
func readInput(arg string) ([]byte, error) {
	if arg == "" || arg == "-" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read from stdin: %w", err)
		}
		return content, nil
	}

	content, err := os.ReadFile(arg)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", arg, err)
	}
	return content, nil
}

// writeOutput writes content to a file, or stdout when path is empty.
func writeOutput(path string, content string) error {
	if path == "" {
		fmt.Print(content)
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(os.Stderr, "[psmith] Wrote %d bytes to %s\n", len(content), path)
	return nil
}
