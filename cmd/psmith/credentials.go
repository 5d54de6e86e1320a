package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	injectKeys   []string
	injectOutput string
)

// credentialsCmd groups credential subcommands
var credentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "List supported services and inject API keys",
}

var credentialsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List services whose API keys can be injected",
	Args:  cobra.NoArgs,
	RunE:  runCredentialsList,
}

var credentialsInjectCmd = &cobra.Command{
	Use:   "inject [file]",
	Short: "Inject API keys into a document",
	Long: `Inject API keys into a document, replacing placeholders left by
generation. Reads the document from a file or stdin and writes the patched
document to stdout (or --output).

Examples:
  # Inject a Mapbox token
  psmith credentials inject --key mapbox=pk.real page.html > patched.html

  # Multiple services, reading from stdin
  cat page.html | psmith credentials inject --key stripe=pk_live --key gemini=AIza...`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCredentialsInject,
}

func init() {
	credentialsInjectCmd.Flags().StringArrayVar(&injectKeys, "key", nil, "service=key pair (repeatable)")
	credentialsInjectCmd.Flags().StringVarP(&injectOutput, "output", "o", "", "write the document to a file instead of stdout")
	credentialsCmd.AddCommand(credentialsListCmd)
	credentialsCmd.AddCommand(credentialsInjectCmd)
}

// CredentialListResponse matches the server's credential list body.
type CredentialListResponse struct {
	Credentials []Credential `json:"credentials"`
	Count       int          `json:"count"`
}

// InjectRequest matches the server's inject request body.
type InjectRequest struct {
	Content string            `json:"content"`
	Keys    map[string]string `json:"keys"`
}

// InjectResponse matches the server's inject response body.
type InjectResponse struct {
	Content   string       `json:"content"`
	Remaining []Credential `json:"remaining"`
}

func runCredentialsList(cmd *cobra.Command, args []string) error {
	var resp CredentialListResponse
	if err := getJSON("/api/v1/credentials", &resp); err != nil {
		return err
	}

	for _, cred := range resp.Credentials {
		fmt.Printf("%-12s %-16s placeholder: %s\n", cred.ID, cred.Name, cred.Placeholder)
		fmt.Printf("%-12s docs: %s\n", "", cred.DocsURL)
	}
	fmt.Printf("\n%d service(s)\n", resp.Count)
	return nil
}

func runCredentialsInject(cmd *cobra.Command, args []string) error {
	keys, err := parseKeyPairs(injectKeys)
	if err != nil {
		return err
	}

	input := ""
	if len(args) == 1 {
		input = args[0]
	}
	content, err := readInput(input)
	if err != nil {
		return err
	}
	if len(content) == 0 {
		return fmt.Errorf("no document content to inject into")
	}

	req := InjectRequest{Content: string(content), Keys: keys}

	var resp InjectResponse
	if err := postJSON("/api/v1/credentials/inject", req, &resp); err != nil {
		return err
	}

	if err := writeOutput(injectOutput, resp.Content); err != nil {
		return err
	}

	for _, cred := range resp.Remaining {
		fmt.Fprintf(os.Stderr, "[psmith] Still needs %s API key (see %s)\n", cred.Name, cred.DocsURL)
	}
	return nil
}

// parseKeyPairs turns repeated service=key flags into a map.
func parseKeyPairs(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, fmt.Errorf("at least one --key service=key pair is required")
	}

	keys := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		service, key, ok := strings.Cut(pair, "=")
		if !ok || service == "" || key == "" {
			return nil, fmt.Errorf("invalid --key %q, expected service=key", pair)
		}
		keys[service] = key
	}
	return keys, nil
}
