package client

import (
	"context"
	"errors"
	"net/url"
)

type ArtifactService struct {
	client *Client
}

func (c *Client) Artifacts() *ArtifactService {
	return &ArtifactService{client: c}
}

type ArtifactListOptions struct {
	ExecutionID string
	Page
}

type ArtifactDownload struct {
	URL  string
	Name string
}

func (s *ArtifactService) List(ctx context.Context, opts ArtifactListOptions) ([]Object, error) {
	params := url.Values{}
	opts.apply(params)
	if opts.ExecutionID != "" {
		params.Set("execution_id", opts.ExecutionID)
	}
	resp, err := s.client.Get(ctx, endpoint("artifacts"), params)
	if err != nil {
		return nil, err
	}
	return decodeList(resp)
}

// DownloadURL asks the backend for a pre-signed URL for the artifact.
func (s *ArtifactService) DownloadURL(ctx context.Context, artifactID string) (*ArtifactDownload, error) {
	resp, err := s.client.Get(ctx, endpoint("artifacts", url.PathEscape(artifactID), "download-url"), nil)
	if err != nil {
		return nil, err
	}
	if err := expectStatus(resp, 200); err != nil {
		return nil, err
	}
	dl := &ArtifactDownload{
		URL:  resp.Field("download_url").String(),
		Name: resp.Field("name").String(),
	}
	if dl.Name == "" {
		dl.Name = "artifact_" + artifactID
	}
	if dl.URL == "" {
		return nil, errors.New("server did not return a download URL for artifact " + artifactID)
	}
	return dl, nil
}
