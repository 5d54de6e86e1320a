package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var snapshotRestoreOutput string

// snapshotCmd groups snapshot subcommands
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Inspect and restore document history",
}

var snapshotListCmd = &cobra.Command{
	Use:   "list <artifact-id>",
	Short: "List an artifact's snapshot history",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotList,
}

var snapshotRestoreCmd = &cobra.Command{
	Use:   "restore <artifact-id> <snapshot-id>",
	Short: "Restore a snapshot and print its content",
	Long: `Restore a snapshot, making it the artifact's active version, and print
its HTML content.

Examples:
  # Roll a page back to an earlier version
  psmith snapshot restore 4f2c... 9a1b... -o page.html`,
	Args: cobra.ExactArgs(2),
	RunE: runSnapshotRestore,
}

func init() {
	snapshotRestoreCmd.Flags().StringVarP(&snapshotRestoreOutput, "output", "o", "", "write the document to a file instead of stdout")
	snapshotCmd.AddCommand(snapshotListCmd)
	snapshotCmd.AddCommand(snapshotRestoreCmd)
}

// Snapshot matches the server's snapshot body.
type Snapshot struct {
	ID         string    `json:"id"`
	ArtifactID string    `json:"artifactId"`
	Timestamp  time.Time `json:"timestamp"`
	Prompt     string    `json:"prompt"`
	Content    string    `json:"content"`
	Active     bool      `json:"isActive"`
}

// SnapshotListResponse matches the server's snapshot list body.
type SnapshotListResponse struct {
	ArtifactID string     `json:"artifactId"`
	Snapshots  []Snapshot `json:"snapshots"`
	Count      int        `json:"count"`
}

func runSnapshotList(cmd *cobra.Command, args []string) error {
	var resp SnapshotListResponse
	if err := getJSON("/api/v1/artifacts/"+args[0]+"/snapshots", &resp); err != nil {
		return err
	}

	for _, snap := range resp.Snapshots {
		marker := " "
		if snap.Active {
			marker = "*"
		}
		fmt.Printf("%s %s  %s  %s\n", marker, snap.ID,
			snap.Timestamp.Local().Format("2006-01-02 15:04:05"), snap.Prompt)
	}
	fmt.Printf("\n%d snapshot(s), * marks the active one\n", resp.Count)
	return nil
}

func runSnapshotRestore(cmd *cobra.Command, args []string) error {
	var snap Snapshot
	if err := getJSON("/api/v1/artifacts/"+args[0]+"/snapshots/"+args[1], &snap); err != nil {
		return err
	}

	if err := writeOutput(snapshotRestoreOutput, snap.Content); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "[psmith] Restored snapshot %s of artifact %s\n", snap.ID, snap.ArtifactID)
	return nil
}
