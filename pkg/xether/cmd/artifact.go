package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/xether-ai/xether-cli/pkg/xether/client"
	"github.com/xether-ai/xether-cli/pkg/xether/output"
	"github.com/xether-ai/xether-cli/pkg/xether/validation"
)

func NewArtifactCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "artifact",
		Short: "Artifact operations",
	}
	cmd.AddCommand(
		newArtifactListCommand(),
		newArtifactDownloadCommand(),
	)
	return cmd
}

var artifactListView = listView{columns: output.ArtifactColumns, wide: output.ArtifactColumnsWide, empty: "No artifacts found."}

func newArtifactListCommand() *cobra.Command {
	var (
		executionID string
		skip        int
		limit       int
	)
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List available artifacts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if executionID != "" {
				if executionID, err = validation.ResourceID(executionID, "Execution"); err != nil {
					return err
				}
			}
			if limit <= 0 {
				limit = rt.PageSize()
			}
			apiClient, err := buildClient(rt)
			if err != nil {
				return err
			}
			artifacts, err := apiClient.Artifacts().List(cmd.Context(), client.ArtifactListOptions{
				ExecutionID: executionID,
				Page:        client.Page{Skip: skip, Limit: limit},
			})
			if err != nil {
				return fmt.Errorf("failed to fetch artifacts: %w", err)
			}
			return rt.renderList(artifactListView, artifacts, "")
		},
	}
	cmd.Flags().StringVarP(&executionID, "execution", "e", "", "Filter by pipeline execution ID")
	cmd.Flags().IntVar(&skip, "skip", 0, "Skip N artifacts")
	cmd.Flags().IntVar(&limit, "limit", 0, "Limit number of returned artifacts (defaults to settings.page_size)")
	return cmd
}

// downloadDestination joins the artifact name onto dest when dest is an
// existing directory; otherwise dest is the file path and its parent must
// exist.
func downloadDestination(dest, name string) (string, error) {
	resolved, err := validation.FilePath(dest, false, false)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(resolved); err == nil && info.IsDir() {
		return filepath.Join(resolved, filepath.Base(name)), nil
	}
	if _, err := validation.DirectoryPath(filepath.Dir(resolved), true, false); err != nil {
		return "", err
	}
	return resolved, nil
}

func newArtifactDownloadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "download ARTIFACT_ID DESTINATION",
		Short: "Download an artifact",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			id, err := validation.ResourceID(args[0], "Artifact")
			if err != nil {
				return err
			}
			apiClient, err := buildClient(rt)
			if err != nil {
				return err
			}
			storage, err := rt.transferClient()
			if err != nil {
				return err
			}
			dl, err := apiClient.Artifacts().DownloadURL(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get download URL: %w", err)
			}
			dest, err := downloadDestination(args[1], dl.Name)
			if err != nil {
				return err
			}
			progress := output.NewProgress(rt.errWriter, fmt.Sprintf("Downloading %s...", dl.Name), progressInterval)
			_, err = storage.DownloadFile(cmd.Context(), dl.URL, dest, progress.Update)
			progress.Done()
			if err != nil {
				return fmt.Errorf("failed to download artifact: %w", err)
			}
			output.Success(rt.Writer(), "Successfully downloaded artifact to %s", output.Highlight(dest))
			return nil
		},
	}
}
