package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/xether-ai/xether-cli/pkg/xether/client"
	"github.com/xether-ai/xether-cli/pkg/xether/output"
	"github.com/xether-ai/xether-cli/pkg/xether/validation"
)

func NewPipelineCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Pipeline orchestration commands",
	}
	cmd.AddCommand(
		newPipelineListCommand(),
		newPipelineRunCommand(),
		newPipelineStatusCommand(),
		newPipelineHistoryCommand(),
	)
	return cmd
}

var pipelineListView = listView{columns: output.PipelineColumns, empty: "No pipelines found."}

func newPipelineListCommand() *cobra.Command {
	var skip, limit int
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List available pipelines",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
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
			pipelines, err := apiClient.Pipelines().List(cmd.Context(), client.Page{Skip: skip, Limit: limit})
			if err != nil {
				return fmt.Errorf("failed to fetch pipelines: %w", err)
			}
			return rt.renderList(pipelineListView, pipelines, "")
		},
	}
	cmd.Flags().IntVar(&skip, "skip", 0, "Skip N pipelines")
	cmd.Flags().IntVar(&limit, "limit", 0, "Limit number of returned pipelines (defaults to settings.page_size)")
	return cmd
}

func newPipelineRunCommand() *cobra.Command {
	var datasetID string
	cmd := &cobra.Command{
		Use:   "run PIPELINE_ID",
		Short: "Trigger a new pipeline execution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			pipelineID, err := validation.ResourceID(args[0], "Pipeline")
			if err != nil {
				return err
			}
			if datasetID, err = validation.ResourceID(datasetID, "Dataset"); err != nil {
				return err
			}
			apiClient, err := buildClient(rt)
			if err != nil {
				return err
			}
			exec, err := apiClient.Pipelines().Run(cmd.Context(), pipelineID, datasetID)
			if err != nil {
				return fmt.Errorf("failed to trigger pipeline: %w", err)
			}
			return rt.renderObject(exec, func() {
				execID := gjson.GetBytes(exec, "id").String()
				output.Success(rt.Writer(), "Successfully triggered pipeline!")
				rt.printf("Execution ID: %s\n", output.Highlight(execID))
				rt.printf("Check status with: %s\n", output.Bold("xether pipeline status "+execID))
			})
		},
	}
	cmd.Flags().StringVarP(&datasetID, "dataset", "d", "", "ID of the dataset to process")
	_ = cmd.MarkFlagRequired("dataset")
	return cmd
}

func newPipelineStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status EXECUTION_ID",
		Short: "Check the status of a pipeline run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			execID, err := validation.ResourceID(args[0], "Execution")
			if err != nil {
				return err
			}
			apiClient, err := buildClient(rt)
			if err != nil {
				return err
			}
			exec, err := apiClient.Executions().Get(cmd.Context(), execID)
			if err != nil {
				return fetchError(err, "Execution", execID)
			}
			return rt.renderObject(exec, func() {
				status := gjson.GetBytes(exec, "status").String()
				if status == "" {
					status = "UNKNOWN"
				}
				rt.printf("Execution %s status: %s\n", output.Bold(execID), output.ColorStatus(status))
				if msg := gjson.GetBytes(exec, "error_message").String(); msg != "" {
					rt.printf("Error Details: %s\n", msg)
				}
				artifacts := gjson.GetBytes(exec, "artifacts").Array()
				if len(artifacts) > 0 {
					rt.println()
					rt.println(output.Bold("Generated Artifacts:"))
					for _, a := range artifacts {
						rt.printf("  - %s (%s)\n", a.Get("id").String(), a.Get("name").String())
					}
				}
			})
		},
	}
}

func newPipelineHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history PIPELINE_ID",
		Short: "List previous executions of a pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			pipelineID, err := validation.ResourceID(args[0], "Pipeline")
			if err != nil {
				return err
			}
			apiClient, err := buildClient(rt)
			if err != nil {
				return err
			}
			executions, err := apiClient.Pipelines().History(cmd.Context(), pipelineID)
			if err != nil {
				return fmt.Errorf("failed to fetch history: %w", err)
			}
			view := listView{columns: output.ExecutionColumns, empty: fmt.Sprintf("No executions found for pipeline %s.", pipelineID)}
			return rt.renderList(view, executions, "")
		},
	}
}
