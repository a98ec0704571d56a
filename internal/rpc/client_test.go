package rpc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/smartcity/internal/api/dto"
	"github.com/spec-kit/smartcity/internal/config"
	apperrors "github.com/spec-kit/smartcity/pkg/util/errorutil"
)

func testServicesConfig(workerURL, complaintURL string) config.ServicesConfig {
	return config.ServicesConfig{
		WorkerServiceURL:    workerURL,
		ComplaintServiceURL: complaintURL,
		RPCTimeoutSeconds:   2,
		RPCMaxAttempts:      2,
		InternalToken:       "internal-test-token",
	}
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, statusWord, message string, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(dto.Envelope{
		StatusCode: status,
		Status:     statusWord,
		Message:    message,
		Data:       data,
	})
	require.NoError(t, err)
}

func TestWorkerClientCreateProfileDecodesEnvelope(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/worker/create", r.URL.Path)

		var req dto.CreateWorkerRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		writeEnvelope(t, w, http.StatusCreated, dto.StatusSuccess, "worker created", dto.WorkerResponse{
			WorkerID:       req.UserID,
			Name:           req.Name,
			Specialization: req.Specialization,
			IsAvailable:    true,
		})
	}))
	defer server.Close()

	client := NewWorkerClient(testServicesConfig(server.URL, ""))
	worker, err := client.CreateProfile(context.Background(), dto.CreateWorkerRequest{
		UserID:         "u1",
		Name:           "Dana",
		Email:          "dana@city.test",
		PhoneNumber:    "5550002",
		Specialization: "plumbing",
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", worker.WorkerID)
	assert.True(t, worker.IsAvailable)
	assert.Equal(t, "Bearer internal-test-token", gotAuth)
}

func TestWorkerClientFailedEnvelopeIsDependencyFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusConflict, dto.StatusFailed, "worker profile already exists", nil)
	}))
	defer server.Close()

	client := NewWorkerClient(testServicesConfig(server.URL, ""))
	_, err := client.CreateProfile(context.Background(), dto.CreateWorkerRequest{
		UserID:         "u1",
		Name:           "Dana",
		Email:          "dana@city.test",
		PhoneNumber:    "5550002",
		Specialization: "plumbing",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "DEPENDENCY_FAILURE"))
	assert.Contains(t, err.Error(), "worker profile already exists")
}

func TestCallRetriesTransportErrorsOnce(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			// first attempt dies mid-flight
			conn, _, err := w.(http.Hijacker).Hijack()
			require.NoError(t, err)
			conn.Close()
			return
		}
		writeEnvelope(t, w, http.StatusOK, dto.StatusSuccess, "ok", nil)
	}))
	defer server.Close()

	client := NewComplaintClient(testServicesConfig("", server.URL))
	err := client.PushStatus(context.Background(), "c1", "ASSIGNED")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestCallDoesNotRetryFailedEnvelope(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeEnvelope(t, w, http.StatusNotFound, dto.StatusFailed, "complaint not found", nil)
	}))
	defer server.Close()

	client := NewComplaintClient(testServicesConfig("", server.URL))
	err := client.PushStatus(context.Background(), "missing", "ASSIGNED")
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "a decoded answer is authoritative")
}

func TestComplaintClientFetchByCategory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "plumbing", r.URL.Query().Get("category"))
		writeEnvelope(t, w, http.StatusOK, dto.StatusSuccess, "complaints fetched", []dto.ComplaintResponse{
			{ID: "c1", Category: "plumbing", Status: "NOT ASSIGNED"},
		})
	}))
	defer server.Close()

	client := NewComplaintClient(testServicesConfig("", server.URL))
	complaints, err := client.FetchByCategory(context.Background(), "plumbing")
	require.NoError(t, err)
	require.Len(t, complaints, 1)
	assert.Equal(t, "c1", complaints[0].ID)
}

func TestClientUnreachableServer(t *testing.T) {
	client := NewComplaintClient(testServicesConfig("", "http://127.0.0.1:1"))
	err := client.PushStatus(context.Background(), "c1", "ASSIGNED")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "DEPENDENCY_FAILURE"))
}
