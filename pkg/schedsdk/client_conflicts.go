package schedsdk

import (
	"context"
	"net/http"
)

// CheckConflicts reports whether a proposed time slot collides with the
// existing scheduled meetings of the given participants. Nothing is created
// or modified; this is a read-only dry run.
func (c *SDKClient) CheckConflicts(ctx context.Context, req ConflictCheckRequest) (*ConflictCheckResponse, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/v1/meetings/check-conflicts", req)
	if err != nil {
		return nil, err
	}

	var result ConflictCheckResponse
	if err := decodeJSON(resp, &result, http.StatusOK); err != nil {
		return nil, err
	}

	return &result, nil
}
