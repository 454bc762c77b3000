package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/medwatch/triage/internal/domain/model"
	"github.com/medwatch/triage/pkg/metrics"
)

// SubmitAssessment posts the alert payload and returns the API's raw
// response unmodified. The payload is submitted exactly once; retries
// inside the transport do not re-submit a request that already got a
// 2xx response.
func (c *Client) SubmitAssessment(ctx context.Context, payload model.AlertPayload) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: marshaling payload: %v", ErrRequestFailed, err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/submit-assessment", nil, body)
	if err != nil {
		return nil, err
	}

	metrics.RecordSubmission()
	return json.RawMessage(resp), nil
}
