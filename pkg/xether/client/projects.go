package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

type ProjectService struct {
	client *Client
}

func (c *Client) Projects() *ProjectService {
	return &ProjectService{client: c}
}

type ProjectRequest struct {
	Name        string `json:"name"`
	TeamID      int    `json:"team_id"`
	Description string `json:"description,omitempty"`
}

type ProjectUpdate struct {
	Name        *string
	Description *string
}

// List returns the visible projects, optionally restricted to one team
// (teamID 0 means all).
func (s *ProjectService) List(ctx context.Context, teamID int) ([]Object, error) {
	params := url.Values{}
	if teamID > 0 {
		params.Set("team_id", strconv.Itoa(teamID))
	}
	resp, err := s.client.Get(ctx, endpoint("projects", ""), params)
	if err != nil {
		return nil, err
	}
	return decodeList(resp)
}

func (s *ProjectService) Get(ctx context.Context, projectID int) (Object, error) {
	resp, err := s.client.Get(ctx, endpoint("projects", strconv.Itoa(projectID)), nil)
	if err != nil {
		return nil, err
	}
	return decodeObject(resp)
}

func (s *ProjectService) Create(ctx context.Context, req ProjectRequest) (Object, error) {
	resp, err := s.client.Post(ctx, endpoint("projects", ""), req)
	if err != nil {
		return nil, err
	}
	return decodeObject(resp)
}

func (s *ProjectService) Update(ctx context.Context, projectID int, update ProjectUpdate) (Object, error) {
	payload, err := patchPayload(map[string]*string{"name": update.Name, "description": update.Description})
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Patch(ctx, endpoint("projects", strconv.Itoa(projectID)), payload)
	if err != nil {
		return nil, err
	}
	return decodeObject(resp)
}

func (s *ProjectService) Delete(ctx context.Context, projectID int) error {
	resp, err := s.client.Delete(ctx, endpoint("projects", strconv.Itoa(projectID)))
	if err != nil {
		return err
	}
	return expectStatus(resp, append(okOrNoContent, http.StatusAccepted)...)
}
