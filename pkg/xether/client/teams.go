package client

import (
	"context"
	"net/http"
	"strconv"
)

type TeamService struct {
	client *Client
}

func (c *Client) Teams() *TeamService {
	return &TeamService{client: c}
}

type TeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// TeamUpdate holds the fields to change; nil means unchanged.
type TeamUpdate struct {
	Name        *string
	Description *string
}

type MemberRequest struct {
	UserID int    `json:"user_id"`
	Role   string `json:"role"`
}

func (s *TeamService) List(ctx context.Context) ([]Object, error) {
	resp, err := s.client.Get(ctx, endpoint("teams", ""), nil)
	if err != nil {
		return nil, err
	}
	return decodeList(resp)
}

func (s *TeamService) Get(ctx context.Context, teamID int) (Object, error) {
	resp, err := s.client.Get(ctx, endpoint("teams", strconv.Itoa(teamID)), nil)
	if err != nil {
		return nil, err
	}
	return decodeObject(resp)
}

func (s *TeamService) Create(ctx context.Context, req TeamRequest) (Object, error) {
	resp, err := s.client.Post(ctx, endpoint("teams", ""), req)
	if err != nil {
		return nil, err
	}
	return decodeObject(resp)
}

func (s *TeamService) Update(ctx context.Context, teamID int, update TeamUpdate) (Object, error) {
	payload, err := patchPayload(map[string]*string{"name": update.Name, "description": update.Description})
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Patch(ctx, endpoint("teams", strconv.Itoa(teamID)), payload)
	if err != nil {
		return nil, err
	}
	return decodeObject(resp)
}

func (s *TeamService) Members(ctx context.Context, teamID int) ([]Object, error) {
	resp, err := s.client.Get(ctx, endpoint("teams", strconv.Itoa(teamID), "members"), nil)
	if err != nil {
		return nil, err
	}
	return decodeList(resp)
}

func (s *TeamService) AddMember(ctx context.Context, teamID int, req MemberRequest) error {
	_, err := s.client.Post(ctx, endpoint("teams", strconv.Itoa(teamID), "members"), req)
	return err
}

func (s *TeamService) RemoveMember(ctx context.Context, teamID, userID int) error {
	_, err := s.client.Delete(ctx, endpoint("teams", strconv.Itoa(teamID), "members", strconv.Itoa(userID)))
	return err
}

func (s *TeamService) Delete(ctx context.Context, teamID int) error {
	resp, err := s.client.Delete(ctx, endpoint("teams", strconv.Itoa(teamID)))
	if err != nil {
		return err
	}
	return expectStatus(resp, append(okOrNoContent, http.StatusAccepted)...)
}
