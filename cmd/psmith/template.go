package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var templateApplyOutput string

// templateCmd groups template subcommands
var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Browse and apply stock templates",
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available templates",
	Args:  cobra.NoArgs,
	RunE:  runTemplateList,
}

var templateShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a template's HTML content",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateShow,
}

var templateApplyCmd = &cobra.Command{
	Use:   "apply <id>",
	Short: "Apply a template and record it as a snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateApply,
}

func init() {
	templateApplyCmd.Flags().StringVarP(&templateApplyOutput, "output", "o", "", "write the document to a file instead of stdout")
	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateShowCmd)
	templateCmd.AddCommand(templateApplyCmd)
}

// Template matches the server's template body.
type Template struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	Content     string   `json:"content"`
}

// TemplateListResponse matches the server's template list body.
type TemplateListResponse struct {
	Templates []Template `json:"templates"`
	Count     int        `json:"count"`
}

func runTemplateList(cmd *cobra.Command, args []string) error {
	var resp TemplateListResponse
	if err := getJSON("/api/v1/templates", &resp); err != nil {
		return err
	}

	for _, tpl := range resp.Templates {
		fmt.Printf("%-12s %-24s %s\n", tpl.ID, tpl.Name, tpl.Description)
		fmt.Printf("%-12s keywords: %s\n", "", strings.Join(tpl.Keywords, ", "))
	}
	fmt.Printf("\n%d template(s)\n", resp.Count)
	return nil
}

func runTemplateShow(cmd *cobra.Command, args []string) error {
	var tpl Template
	if err := getJSON("/api/v1/templates/"+args[0], &tpl); err != nil {
		return err
	}

	fmt.Print(tpl.Content)
	return nil
}

func runTemplateApply(cmd *cobra.Command, args []string) error {
	var resp GenerateResponse
	if err := postJSON("/api/v1/templates/"+args[0]+"/apply", struct{}{}, &resp); err != nil {
		return err
	}

	if err := writeOutput(templateApplyOutput, resp.Content); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "[psmith] Applied template %s (artifact=%s snapshot=%s)\n",
		resp.TemplateName, resp.ArtifactID, resp.SnapshotID)
	return nil
}
