package client

import (
	"context"
	"net/http"
	"net/url"
)

type PipelineService struct {
	client *Client
}

func (c *Client) Pipelines() *PipelineService {
	return &PipelineService{client: c}
}

type RunRequest struct {
	DatasetID string `json:"dataset_id"`
}

func (s *PipelineService) List(ctx context.Context, page Page) ([]Object, error) {
	params := url.Values{}
	page.apply(params)
	resp, err := s.client.Get(ctx, endpoint("pipelines"), params)
	if err != nil {
		return nil, err
	}
	return decodeList(resp)
}

// Run triggers a new execution of the pipeline over a dataset and returns the
// execution record.
func (s *PipelineService) Run(ctx context.Context, pipelineID, datasetID string) (Object, error) {
	resp, err := s.client.Post(ctx, endpoint("pipelines", url.PathEscape(pipelineID), "executions"), RunRequest{DatasetID: datasetID})
	if err != nil {
		return nil, err
	}
	if err := expectStatus(resp, http.StatusOK, http.StatusCreated, http.StatusAccepted); err != nil {
		return nil, err
	}
	return decodeObject(resp)
}

func (s *PipelineService) History(ctx context.Context, pipelineID string) ([]Object, error) {
	resp, err := s.client.Get(ctx, endpoint("pipelines", url.PathEscape(pipelineID), "executions"), nil)
	if err != nil {
		return nil, err
	}
	return decodeList(resp)
}

type ExecutionService struct {
	client *Client
}

func (c *Client) Executions() *ExecutionService {
	return &ExecutionService{client: c}
}

func (s *ExecutionService) Get(ctx context.Context, executionID string) (Object, error) {
	resp, err := s.client.Get(ctx, endpoint("executions", url.PathEscape(executionID)), nil)
	if err != nil {
		return nil, err
	}
	return decodeObject(resp)
}
