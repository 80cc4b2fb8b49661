package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/xether-ai/xether-cli/pkg/xether/client"
	"github.com/xether-ai/xether-cli/pkg/xether/output"
	"github.com/xether-ai/xether-cli/pkg/xether/validation"
)

const progressInterval = 100 * time.Millisecond

func NewDatasetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Dataset management operations",
	}
	cmd.AddCommand(
		newDatasetListCommand(),
		newDatasetInfoCommand(),
		newDatasetRemoveCommand(),
		newDatasetPushCommand(),
	)
	return cmd
}

var datasetListView = listView{columns: output.DatasetColumns, wide: output.DatasetColumnsWide, empty: "No datasets found."}

func newDatasetListCommand() *cobra.Command {
	var (
		projectID string
		skip      int
		limit     int
	)
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List available datasets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			id, err := validation.ProjectID(projectID)
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = rt.PageSize()
			}
			apiClient, err := buildClient(rt)
			if err != nil {
				return err
			}
			datasets, err := apiClient.Datasets().List(cmd.Context(), client.DatasetListOptions{
				ProjectID: id,
				Page:      client.Page{Skip: skip, Limit: limit},
			})
			if err != nil {
				return fmt.Errorf("failed to fetch datasets: %w", err)
			}
			return rt.renderList(datasetListView, datasets, "")
		},
	}
	cmd.Flags().StringVarP(&projectID, "project-id", "p", "", "ID of the project")
	cmd.Flags().IntVar(&skip, "skip", 0, "Skip N datasets")
	cmd.Flags().IntVar(&limit, "limit", 0, "Limit number of returned datasets (defaults to settings.page_size)")
	_ = cmd.MarkFlagRequired("project-id")
	return cmd
}

func newDatasetInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info DATASET_ID",
		Short: "Get detailed information about a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			id, err := validation.ResourceID(args[0], "Dataset")
			if err != nil {
				return err
			}
			apiClient, err := buildClient(rt)
			if err != nil {
				return err
			}
			ds, err := apiClient.Datasets().Get(cmd.Context(), id)
			if err != nil {
				return fetchError(err, "Dataset", id)
			}
			return rt.renderObject(ds, func() {
				output.WriteAllFields(rt.Writer(), "Dataset Info: "+gjson.GetBytes(ds, "name").String(), ds)
			})
		},
	}
}

func newDatasetRemoveCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "rm DATASET_ID",
		Short: "Delete a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			id, err := validation.ResourceID(args[0], "Dataset")
			if err != nil {
				return err
			}
			ok, err := rt.confirmDestructive(force, fmt.Sprintf("This will delete dataset %s.", id))
			if err != nil || !ok {
				return err
			}
			apiClient, err := buildClient(rt)
			if err != nil {
				return err
			}
			if err := apiClient.Datasets().Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to delete dataset: %w", err)
			}
			output.Success(rt.Writer(), "Dataset %s deleted successfully.", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Force removal without confirmation")
	return cmd
}

func detectContentType(path string) string {
	mt, err := mimetype.DetectFile(path)
	if err != nil || mt == nil {
		return "application/octet-stream"
	}
	return mt.String()
}

func newDatasetPushCommand() *cobra.Command {
	var (
		projectID   string
		name        string
		description string
	)
	cmd := &cobra.Command{
		Use:   "push FILE",
		Short: "Upload a new dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			path, err := validation.FilePath(args[0], true, true)
			if err != nil {
				return err
			}
			pid, err := validation.ProjectID(projectID)
			if err != nil {
				return err
			}
			var namePtr *string
			if cmd.Flags().Changed("name") {
				namePtr = &name
			}
			if namePtr, err = validation.DatasetName(namePtr); err != nil {
				return err
			}
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			fileName := filepath.Base(path)
			datasetName := fileName
			if namePtr != nil {
				datasetName = *namePtr
			}
			contentType := detectContentType(path)

			apiClient, err := buildClient(rt)
			if err != nil {
				return err
			}
			storage, err := rt.transferClient()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(rt.errWriter, "Registering dataset...")
			upload, err := apiClient.Datasets().Create(cmd.Context(), client.DatasetCreateRequest{
				Name:        datasetName,
				ProjectID:   pid,
				Description: description,
				SizeBytes:   info.Size(),
				MimeType:    contentType,
			})
			if err != nil {
				return fmt.Errorf("failed to register dataset: %w", err)
			}

			progress := output.NewProgress(rt.errWriter, fmt.Sprintf("Uploading %s (%s)...", fileName, humanize.Bytes(uint64(info.Size()))), progressInterval)
			err = storage.UploadFile(cmd.Context(), upload.UploadURL, path, contentType, progress.Update)
			progress.Done()
			if err != nil {
				return fmt.Errorf("failed to upload file to storage: %w", err)
			}
			output.Success(rt.Writer(), "Successfully uploaded %s! Dataset ID: %s", fileName, upload.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&projectID, "project-id", "p", "", "ID of the project")
	cmd.Flags().StringVar(&name, "name", "", "Name for the dataset (defaults to file name)")
	cmd.Flags().StringVar(&description, "description", "", "Optional description")
	_ = cmd.MarkFlagRequired("project-id")
	return cmd
}
