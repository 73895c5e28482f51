package wizard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AESiR-0/mad-labs-2/models"
	"github.com/go-resty/resty/v2"
)

const SubmitPath = "/api/submit-application"

type submitResponse struct {
	Success bool `json:"success"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HTTPSubmitter posts applications to the submission endpoint. Network and
// server failures are indistinguishable to the caller.
type HTTPSubmitter struct {
	client *resty.Client
}

func NewHTTPSubmitter(baseURL string, timeout time.Duration) *HTTPSubmitter {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &HTTPSubmitter{client: client}
}

func (s *HTTPSubmitter) Submit(ctx context.Context, req *models.ApplicationRequest) error {
	var ok submitResponse
	var failed errorResponse

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&ok).
		SetError(&failed).
		Post(SubmitPath)
	if err != nil {
		return fmt.Errorf("submit application: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("submit application: %s: %s", resp.Status(), failed.Error)
	}
	if !ok.Success {
		return errors.New("submit application: server did not confirm success")
	}
	return nil
}
