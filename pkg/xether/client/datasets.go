package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

type DatasetService struct {
	client *Client
}

func (c *Client) Datasets() *DatasetService {
	return &DatasetService{client: c}
}

type DatasetListOptions struct {
	ProjectID int
	Page
}

type DatasetCreateRequest struct {
	Name        string `json:"name"`
	ProjectID   int    `json:"project_id"`
	Description string `json:"description"`
	SizeBytes   int64  `json:"size_bytes"`
	MimeType    string `json:"mime_type"`
}

// DatasetUpload is the registration result for a new dataset: the record id
// and the pre-signed URL its content must be PUT to.
type DatasetUpload struct {
	ID        string
	UploadURL string
	Raw       Object
}

func (s *DatasetService) List(ctx context.Context, opts DatasetListOptions) ([]Object, error) {
	params := url.Values{}
	params.Set("project_id", strconv.Itoa(opts.ProjectID))
	opts.apply(params)
	resp, err := s.client.Get(ctx, endpoint("datasets"), params)
	if err != nil {
		return nil, err
	}
	return decodeList(resp)
}

func (s *DatasetService) Get(ctx context.Context, datasetID string) (Object, error) {
	resp, err := s.client.Get(ctx, endpoint("datasets", url.PathEscape(datasetID)), nil)
	if err != nil {
		return nil, err
	}
	return decodeObject(resp)
}

func (s *DatasetService) Delete(ctx context.Context, datasetID string) error {
	resp, err := s.client.Delete(ctx, endpoint("datasets", url.PathEscape(datasetID)))
	if err != nil {
		return err
	}
	return expectStatus(resp, okOrNoContent...)
}

// Create registers a dataset record. The backend answers with the upload URL;
// a response without one is an error.
func (s *DatasetService) Create(ctx context.Context, req DatasetCreateRequest) (*DatasetUpload, error) {
	resp, err := s.client.Post(ctx, endpoint("datasets"), req)
	if err != nil {
		return nil, err
	}
	if err := expectStatus(resp, 200, 201); err != nil {
		return nil, err
	}
	raw, err := decodeObject(resp)
	if err != nil {
		return nil, err
	}
	upload := &DatasetUpload{
		ID:        resp.Field("id").String(),
		UploadURL: resp.Field("upload_url").String(),
		Raw:       raw,
	}
	if upload.UploadURL == "" {
		return upload, fmt.Errorf("server did not return an upload URL for dataset %s", upload.ID)
	}
	return upload, nil
}
