package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	generateArtifactID string
	generateTemplateID string
	generateInput      string
	generateOutput     string
)

// generateCmd generates a document from a natural-language prompt
var generateCmd = &cobra.Command{
	Use:   "generate <prompt>",
	Short: "Generate an HTML document from a prompt",
	Long: `Generate a complete HTML document from a natural-language prompt.

The generated document is written to stdout (or --output). When --input is
given, the current document is sent as the editing base and the server
performs an incremental edit instead of generating from scratch.

Examples:
  # Generate a new document
  psmith generate "crea un dashboard de ventas" > page.html

  # Edit an existing document
  psmith generate --input page.html --artifact 4f2c... "agrega un pie de página"

  # Apply a template directly
  psmith generate --template dashboard "dashboard" -o page.html`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateArtifactID, "artifact", "", "artifact ID to continue editing")
	generateCmd.Flags().StringVar(&generateTemplateID, "template", "", "template ID to apply directly")
	generateCmd.Flags().StringVar(&generateInput, "input", "", "file with the current document ('-' for stdin)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "write the document to a file instead of stdout")
}

// GenerateRequest matches the server's generate request body.
type GenerateRequest struct {
	Prompt         string `json:"prompt"`
	CurrentContent string `json:"currentContent,omitempty"`
	ArtifactID     string `json:"artifactId,omitempty"`
	TemplateID     string `json:"templateId,omitempty"`
}

// GenerateResponse matches the server's generate response body.
type GenerateResponse struct {
	Content             string       `json:"content"`
	Success             bool         `json:"success"`
	ArtifactID          string       `json:"artifactId"`
	SnapshotID          string       `json:"snapshotId"`
	IsTemplate          bool         `json:"isTemplate"`
	TemplateName        string       `json:"templateName"`
	DetectedCredentials []Credential `json:"detectedCredentials"`
	Metadata            struct {
		DurationMS     int64 `json:"duration"`
		OriginalLength int   `json:"originalLength"`
		CleanedLength  int   `json:"cleanedLength"`
		Retries        int   `json:"retries"`
	} `json:"metadata"`
}

// Credential matches the server's credential requirement body.
type Credential struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Placeholder string `json:"placeholder"`
	DocsURL     string `json:"docsUrl"`
}

// runGenerate handles the generate command
func runGenerate(cmd *cobra.Command, args []string) error {
	req := GenerateRequest{
		Prompt:     strings.Join(args, " "),
		ArtifactID: generateArtifactID,
		TemplateID: generateTemplateID,
	}

	if generateInput != "" {
		content, err := readInput(generateInput)
		if err != nil {
			return err
		}
		req.CurrentContent = string(content)
	}

	var resp GenerateResponse
	if err := postJSON("/api/v1/generate", req, &resp); err != nil {
		return err
	}

	if err := writeOutput(generateOutput, resp.Content); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "[psmith] artifact=%s snapshot=%s duration=%dms\n",
		resp.ArtifactID, resp.SnapshotID, resp.Metadata.DurationMS)
	if resp.IsTemplate {
		fmt.Fprintf(os.Stderr, "[psmith] Served template: %s\n", resp.TemplateName)
	}
	for _, cred := range resp.DetectedCredentials {
		fmt.Fprintf(os.Stderr, "[psmith] Needs %s API key (placeholder %s, see %s)\n",
			cred.Name, cred.Placeholder, cred.DocsURL)
	}

	return nil
}
