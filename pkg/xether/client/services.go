package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/tidwall/sjson"
)

const apiPrefix = "api/v1"

// Page selects a window of a list endpoint.
type Page struct {
	Skip  int
	Limit int
}

func (p Page) apply(params url.Values) {
	params.Set("skip", strconv.Itoa(p.Skip))
	if p.Limit > 0 {
		params.Set("limit", strconv.Itoa(p.Limit))
	}
}

func endpoint(parts ...string) string {
	out := apiPrefix
	for _, part := range parts {
		out += "/" + part
	}
	return out
}

// Object is a backend resource. Its shape is owned by the backend; callers
// read fields by path.
type Object = json.RawMessage

func decodeList(resp *Response) ([]Object, error) {
	var items []Object
	if len(resp.Body) == 0 {
		return items, nil
	}
	if err := resp.JSON(&items); err != nil {
		return nil, err
	}
	return items, nil
}

func decodeObject(resp *Response) (Object, error) {
	var obj Object
	if err := resp.JSON(&obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// expectStatus rejects 2xx responses an operation does not treat as success.
func expectStatus(resp *Response, codes ...int) error {
	if slices.Contains(codes, resp.StatusCode) {
		return nil
	}
	return &HTTPError{StatusCode: resp.StatusCode, Message: "unexpected status " + strconv.Itoa(resp.StatusCode), Body: resp.Body}
}

// patchPayload builds a partial update body. Nil fields are omitted and an
// empty string is sent as-is so the backend clears the field.
func patchPayload(fields map[string]*string) ([]byte, error) {
	payload := []byte("{}")
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		v := fields[k]
		if v == nil {
			continue
		}
		var err error
		if payload, err = sjson.SetBytes(payload, k, *v); err != nil {
			return nil, fmt.Errorf("failed to build update payload: %w", err)
		}
	}
	if string(payload) == "{}" {
		return nil, errors.New("at least one field to update must be provided")
	}
	return payload, nil
}

var okOrNoContent = []int{http.StatusOK, http.StatusNoContent}
