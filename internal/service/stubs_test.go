package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/smartcity/internal/api/dto"
	"github.com/spec-kit/smartcity/internal/domain"
)

// In-memory repository doubles. They hand out copies so tests can tell the
// difference between a mutated struct and a persisted row.

type stubUserRepo struct {
	mu        sync.Mutex
	users     map[string]*domain.User
	createErr error
	deleteErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*domain.User{}}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *user
	return &cp, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, *user)
	}
	return out, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

type stubCitizenRepo struct {
	mu        sync.Mutex
	citizens  map[string]*domain.Citizen // keyed by user id
	createErr error
}

func newStubCitizenRepo() *stubCitizenRepo {
	return &stubCitizenRepo{citizens: map[string]*domain.Citizen{}}
}

func (r *stubCitizenRepo) Create(_ context.Context, citizen *domain.Citizen) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if citizen.ID == "" {
		citizen.ID = uuid.NewString()
	}
	cp := *citizen
	r.citizens[citizen.UserID] = &cp
	return nil
}

func (r *stubCitizenRepo) Update(_ context.Context, citizen *domain.Citizen) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.citizens[citizen.UserID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *citizen
	r.citizens[citizen.UserID] = &cp
	return nil
}

func (r *stubCitizenRepo) GetByUserID(_ context.Context, userID string) (*domain.Citizen, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	citizen, ok := r.citizens[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *citizen
	return &cp, nil
}

func (r *stubCitizenRepo) List(_ context.Context) ([]domain.Citizen, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Citizen, 0, len(r.citizens))
	for _, citizen := range r.citizens {
		out = append(out, *citizen)
	}
	return out, nil
}

func (r *stubCitizenRepo) DeleteByUserID(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.citizens[userID]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.citizens, userID)
	return nil
}

type stubWorkerRepo struct {
	mu        sync.Mutex
	workers   map[string]*domain.Worker
	updateErr error
}

func newStubWorkerRepo() *stubWorkerRepo {
	return &stubWorkerRepo{workers: map[string]*domain.Worker{}}
}

func (r *stubWorkerRepo) Create(_ context.Context, worker *domain.Worker) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *worker
	r.workers[worker.ID] = &cp
	return nil
}

func (r *stubWorkerRepo) Update(_ context.Context, worker *domain.Worker) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.workers[worker.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *worker
	r.workers[worker.ID] = &cp
	return nil
}

func (r *stubWorkerRepo) GetByID(_ context.Context, id string) (*domain.Worker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	worker, ok := r.workers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *worker
	return &cp, nil
}

func (r *stubWorkerRepo) List(_ context.Context) ([]domain.Worker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Worker, 0, len(r.workers))
	for _, worker := range r.workers {
		out = append(out, *worker)
	}
	return out, nil
}

func (r *stubWorkerRepo) ListAvailable(_ context.Context) ([]domain.Worker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Worker, 0, len(r.workers))
	for _, worker := range r.workers {
		if worker.IsAvailable {
			out = append(out, *worker)
		}
	}
	return out, nil
}

func (r *stubWorkerRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.workers[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.workers, id)
	return nil
}

func (r *stubWorkerRepo) get(id string) *domain.Worker {
	r.mu.Lock()
	defer r.mu.Unlock()
	worker, ok := r.workers[id]
	if !ok {
		return nil
	}
	cp := *worker
	return &cp
}

type stubAssignmentRepo struct {
	mu          sync.Mutex
	assignments map[string]*domain.WorkAssignment
	createErr   error
}

func newStubAssignmentRepo() *stubAssignmentRepo {
	return &stubAssignmentRepo{assignments: map[string]*domain.WorkAssignment{}}
}

func (r *stubAssignmentRepo) Create(_ context.Context, assignment *domain.WorkAssignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	cp := *assignment
	r.assignments[assignment.ID] = &cp
	return nil
}

func (r *stubAssignmentRepo) Update(_ context.Context, assignment *domain.WorkAssignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.assignments[assignment.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *assignment
	r.assignments[assignment.ID] = &cp
	return nil
}

func (r *stubAssignmentRepo) GetByID(_ context.Context, id string) (*domain.WorkAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	assignment, ok := r.assignments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *assignment
	return &cp, nil
}

func (r *stubAssignmentRepo) GetByComplaintID(_ context.Context, complaintID string) (*domain.WorkAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, assignment := range r.assignments {
		if assignment.ComplaintID == complaintID {
			cp := *assignment
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubAssignmentRepo) ListByWorker(_ context.Context, workerID string) ([]domain.WorkAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.WorkAssignment, 0)
	for _, assignment := range r.assignments {
		if assignment.WorkerID == workerID {
			out = append(out, *assignment)
		}
	}
	return out, nil
}

func (r *stubAssignmentRepo) List(_ context.Context) ([]domain.WorkAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.WorkAssignment, 0, len(r.assignments))
	for _, assignment := range r.assignments {
		out = append(out, *assignment)
	}
	return out, nil
}

func (r *stubAssignmentRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.assignments[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.assignments, id)
	return nil
}

type stubComplaintRepo struct {
	mu         sync.Mutex
	complaints map[string]*domain.Complaint
}

func newStubComplaintRepo() *stubComplaintRepo {
	return &stubComplaintRepo{complaints: map[string]*domain.Complaint{}}
}

func (r *stubComplaintRepo) Create(_ context.Context, complaint *domain.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if complaint.ID == "" {
		complaint.ID = uuid.NewString()
	}
	cp := *complaint
	r.complaints[complaint.ID] = &cp
	return nil
}

func (r *stubComplaintRepo) Update(_ context.Context, complaint *domain.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.complaints[complaint.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *complaint
	r.complaints[complaint.ID] = &cp
	return nil
}

func (r *stubComplaintRepo) GetByID(_ context.Context, id string) (*domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	complaint, ok := r.complaints[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *complaint
	return &cp, nil
}

func (r *stubComplaintRepo) List(_ context.Context) ([]domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Complaint, 0, len(r.complaints))
	for _, complaint := range r.complaints {
		out = append(out, *complaint)
	}
	return out, nil
}

func (r *stubComplaintRepo) ListByUser(_ context.Context, userID string) ([]domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Complaint, 0)
	for _, complaint := range r.complaints {
		if complaint.UserID == userID {
			out = append(out, *complaint)
		}
	}
	return out, nil
}

func (r *stubComplaintRepo) ListByCategory(_ context.Context, category string) ([]domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Complaint, 0)
	for _, complaint := range r.complaints {
		if complaint.Category == category {
			out = append(out, *complaint)
		}
	}
	return out, nil
}

func (r *stubComplaintRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.complaints[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.complaints, id)
	return nil
}

// RPC client doubles.

type statusPush struct {
	ComplaintID string
	Status      string
}

type stubComplaintClient struct {
	mu       sync.Mutex
	pushes   []statusPush
	pushErr  error
	fetched  []dto.ComplaintResponse
	fetchErr error
}

func (c *stubComplaintClient) PushStatus(_ context.Context, complaintID, status string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pushErr != nil {
		return c.pushErr
	}
	c.pushes = append(c.pushes, statusPush{ComplaintID: complaintID, Status: status})
	return nil
}

func (c *stubComplaintClient) FetchByCategory(_ context.Context, _ string) ([]dto.ComplaintResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fetchErr != nil {
		return nil, c.fetchErr
	}
	return c.fetched, nil
}

type stubWorkerClient struct {
	mu        sync.Mutex
	created   []dto.CreateWorkerRequest
	updated   []dto.UpdateWorkerRequest
	deleted   []string
	profile   *dto.WorkerResponse
	createErr error
	deleteErr error
	getErr    error
}

func (c *stubWorkerClient) CreateProfile(_ context.Context, req dto.CreateWorkerRequest) (*dto.WorkerResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.createErr != nil {
		return nil, c.createErr
	}
	c.created = append(c.created, req)
	return &dto.WorkerResponse{WorkerID: req.UserID, Name: req.Name}, nil
}

func (c *stubWorkerClient) GetProfile(_ context.Context, workerID string) (*dto.WorkerResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	if c.profile != nil {
		return c.profile, nil
	}
	return &dto.WorkerResponse{WorkerID: workerID}, nil
}

func (c *stubWorkerClient) UpdateProfile(_ context.Context, workerID string, req dto.UpdateWorkerRequest) (*dto.WorkerResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updated = append(c.updated, req)
	return &dto.WorkerResponse{WorkerID: workerID, Name: req.Name}, nil
}

func (c *stubWorkerClient) DeleteProfile(_ context.Context, workerID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.deleteErr != nil {
		return c.deleteErr
	}
	c.deleted = append(c.deleted, workerID)
	return nil
}
