package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/smartcity/internal/api/dto"
	apperrors "github.com/spec-kit/smartcity/pkg/util/errorutil"
)

func newWorkerFixture(t *testing.T) (*WorkerService, *stubWorkerRepo, *stubComplaintClient) {
	t.Helper()
	repo := newStubWorkerRepo()
	client := &stubComplaintClient{}
	return NewWorkerService(repo, client, nil), repo, client
}

func createRequest(id string) dto.CreateWorkerRequest {
	return dto.CreateWorkerRequest{
		UserID:         id,
		Name:           "Dana",
		Email:          id + "@city.test",
		PhoneNumber:    "5550002",
		Specialization: "plumbing",
	}
}

func TestCreateProfileDefaults(t *testing.T) {
	svc, _, _ := newWorkerFixture(t)

	worker, err := svc.CreateProfile(context.Background(), createRequest("w1"))
	require.NoError(t, err)
	assert.Equal(t, "w1", worker.ID)
	assert.True(t, worker.IsAvailable)
	assert.Zero(t, worker.TotalCredits)
	assert.Nil(t, worker.AssignedComplaint)
}

func TestCreateProfileTwiceConflicts(t *testing.T) {
	svc, _, _ := newWorkerFixture(t)

	_, err := svc.CreateProfile(context.Background(), createRequest("w1"))
	require.NoError(t, err)

	_, err = svc.CreateProfile(context.Background(), createRequest("w1"))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))
}

func TestDeleteProfileBlockedWhileAssigned(t *testing.T) {
	svc, repo, _ := newWorkerFixture(t)

	worker, err := svc.CreateProfile(context.Background(), createRequest("w1"))
	require.NoError(t, err)

	complaintID := "c1"
	worker.AssignedComplaint = &complaintID
	worker.IsAvailable = false
	require.NoError(t, repo.Update(context.Background(), worker))

	err = svc.DeleteProfile(context.Background(), "w1")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))

	worker.AssignedComplaint = nil
	worker.IsAvailable = true
	require.NoError(t, repo.Update(context.Background(), worker))
	require.NoError(t, svc.DeleteProfile(context.Background(), "w1"))
}

func TestUpdateProfileMergesNonEmpty(t *testing.T) {
	svc, _, _ := newWorkerFixture(t)

	_, err := svc.CreateProfile(context.Background(), createRequest("w1"))
	require.NoError(t, err)

	worker, err := svc.UpdateProfile(context.Background(), "w1", dto.UpdateWorkerRequest{Specialization: "electrical"})
	require.NoError(t, err)
	assert.Equal(t, "electrical", worker.Specialization)
	assert.Equal(t, "Dana", worker.Name)
}

func TestListAvailableFiltersBusyWorkers(t *testing.T) {
	svc, repo, _ := newWorkerFixture(t)

	_, err := svc.CreateProfile(context.Background(), createRequest("w1"))
	require.NoError(t, err)
	busy, err := svc.CreateProfile(context.Background(), createRequest("w2"))
	require.NoError(t, err)

	complaintID := "c1"
	busy.AssignedComplaint = &complaintID
	busy.IsAvailable = false
	require.NoError(t, repo.Update(context.Background(), busy))

	available, err := svc.ListAvailable(context.Background())
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "w1", available[0].ID)
}

func TestMatchingComplaintsUsesSpecialization(t *testing.T) {
	svc, _, client := newWorkerFixture(t)
	client.fetched = []dto.ComplaintResponse{{ID: "c1", Category: "plumbing"}}

	_, err := svc.CreateProfile(context.Background(), createRequest("w1"))
	require.NoError(t, err)

	complaints, err := svc.MatchingComplaints(context.Background(), "w1")
	require.NoError(t, err)
	require.Len(t, complaints, 1)
	assert.Equal(t, "c1", complaints[0].ID)
}

func TestMatchingComplaintsUnknownWorker(t *testing.T) {
	svc, _, _ := newWorkerFixture(t)

	_, err := svc.MatchingComplaints(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))
}
