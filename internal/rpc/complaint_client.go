package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/spec-kit/smartcity/internal/api/dto"
	"github.com/spec-kit/smartcity/internal/config"
)

// ComplaintClient is the worker-service view of the complaint domain: the
// status push the state machine issues, and the category read path.
type ComplaintClient interface {
	PushStatus(ctx context.Context, complaintID, status string) error
	FetchByCategory(ctx context.Context, category string) ([]dto.ComplaintResponse, error)
}

type complaintClient struct {
	client
}

// NewComplaintClient builds a client against the complaint service base URL.
func NewComplaintClient(svc config.ServicesConfig) ComplaintClient {
	return &complaintClient{client: newClient(svc.ComplaintServiceURL, svc)}
}

func (cc *complaintClient) PushStatus(ctx context.Context, complaintID, status string) error {
	body := dto.UpdateComplaintStatusRequest{Status: status}
	envelope, err := cc.call(ctx, http.MethodPut, "/api/complaint/update-status/"+complaintID, body)
	if err != nil {
		return dependencyError("complaint service", err)
	}
	if !envelope.success() {
		return remoteFailure("complaint service", envelope)
	}
	return nil
}

func (cc *complaintClient) FetchByCategory(ctx context.Context, category string) ([]dto.ComplaintResponse, error) {
	path := "/api/complaint/get-all?category=" + url.QueryEscape(category)
	envelope, err := cc.call(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, dependencyError("complaint service", err)
	}
	if !envelope.success() {
		return nil, remoteFailure("complaint service", envelope)
	}

	var complaints []dto.ComplaintResponse
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &complaints); err != nil {
			return nil, fmt.Errorf("decode complaint list: %w", err)
		}
	}
	return complaints, nil
}
