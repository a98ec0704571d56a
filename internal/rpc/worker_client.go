package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spec-kit/smartcity/internal/api/dto"
	"github.com/spec-kit/smartcity/internal/config"
)

// WorkerClient is the user-service view of the worker domain: the profile
// CRUD the registration saga and user lifecycle depend on.
type WorkerClient interface {
	CreateProfile(ctx context.Context, req dto.CreateWorkerRequest) (*dto.WorkerResponse, error)
	GetProfile(ctx context.Context, workerID string) (*dto.WorkerResponse, error)
	UpdateProfile(ctx context.Context, workerID string, req dto.UpdateWorkerRequest) (*dto.WorkerResponse, error)
	DeleteProfile(ctx context.Context, workerID string) error
}

type workerClient struct {
	client
}

// NewWorkerClient builds a client against the worker service base URL.
func NewWorkerClient(svc config.ServicesConfig) WorkerClient {
	return &workerClient{client: newClient(svc.WorkerServiceURL, svc)}
}

func (wc *workerClient) CreateProfile(ctx context.Context, req dto.CreateWorkerRequest) (*dto.WorkerResponse, error) {
	envelope, err := wc.call(ctx, http.MethodPost, "/api/worker/create", req)
	if err != nil {
		return nil, dependencyError("worker service", err)
	}
	if !envelope.success() {
		return nil, remoteFailure("worker service", envelope)
	}
	return decodeWorker(envelope.Data)
}

func (wc *workerClient) GetProfile(ctx context.Context, workerID string) (*dto.WorkerResponse, error) {
	envelope, err := wc.call(ctx, http.MethodGet, "/api/worker/get/"+workerID, nil)
	if err != nil {
		return nil, dependencyError("worker service", err)
	}
	if !envelope.success() {
		return nil, remoteFailure("worker service", envelope)
	}
	return decodeWorker(envelope.Data)
}

func (wc *workerClient) UpdateProfile(ctx context.Context, workerID string, req dto.UpdateWorkerRequest) (*dto.WorkerResponse, error) {
	envelope, err := wc.call(ctx, http.MethodPut, "/api/worker/update/"+workerID, req)
	if err != nil {
		return nil, dependencyError("worker service", err)
	}
	if !envelope.success() {
		return nil, remoteFailure("worker service", envelope)
	}
	return decodeWorker(envelope.Data)
}

func (wc *workerClient) DeleteProfile(ctx context.Context, workerID string) error {
	envelope, err := wc.call(ctx, http.MethodDelete, "/api/worker/delete/"+workerID, nil)
	if err != nil {
		return dependencyError("worker service", err)
	}
	if !envelope.success() {
		return remoteFailure("worker service", envelope)
	}
	return nil
}

func decodeWorker(data json.RawMessage) (*dto.WorkerResponse, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var worker dto.WorkerResponse
	if err := json.Unmarshal(data, &worker); err != nil {
		return nil, fmt.Errorf("decode worker payload: %w", err)
	}
	return &worker, nil
}
