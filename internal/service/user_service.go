package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/smartcity/internal/api/dto"
	"github.com/spec-kit/smartcity/internal/auth"
	"github.com/spec-kit/smartcity/internal/domain"
	"github.com/spec-kit/smartcity/internal/events"
	"github.com/spec-kit/smartcity/internal/repository"
	"github.com/spec-kit/smartcity/internal/rpc"
	apperrors "github.com/spec-kit/smartcity/pkg/util/errorutil"
)

// UserService owns the account lifecycle: the registration saga, login and
// logout, profile reads and updates, and deletion with its role-specific
// cleanup.
type UserService struct {
	users      repository.UserRepository
	citizens   repository.CitizenRepository
	workers    rpc.WorkerClient
	tokens     *auth.TokenManager
	blacklist  *auth.Blacklist
	bcryptCost int
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// UserDependencies bundles collaborators.
type UserDependencies struct {
	UserRepo     repository.UserRepository
	CitizenRepo  repository.CitizenRepository
	WorkerClient rpc.WorkerClient
	Tokens       *auth.TokenManager
	Blacklist    *auth.Blacklist
	BcryptCost   int
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewUserService creates the service.
func NewUserService(deps UserDependencies) *UserService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		users:      deps.UserRepo,
		citizens:   deps.CitizenRepo,
		workers:    deps.WorkerClient,
		tokens:     deps.Tokens,
		blacklist:  deps.Blacklist,
		bcryptCost: deps.BcryptCost,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Register runs the registration saga: validate, create the base user, then
// create the role profile. The profile step for workers crosses a service
// boundary; if it fails the base user is deleted again so an account never
// exists without its profile.
func (s *UserService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthData, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	if err := validateRoleFields(req.Role, req.PhoneNumber, req.Address, req.City, req.PinCode, req.Specialization); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": req.Email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	switch req.Role {
	case domain.RoleCitizen:
		citizen := &domain.Citizen{
			UserID:      user.ID,
			PhoneNumber: req.PhoneNumber,
			Address:     req.Address,
			City:        req.City,
			PinCode:     req.PinCode,
		}
		if err := s.citizens.Create(ctx, citizen); err != nil {
			s.compensateUser(ctx, user.ID)
			return nil, apperrors.MapError(err)
		}
	case domain.RoleWorker:
		_, err := s.workers.CreateProfile(ctx, dto.CreateWorkerRequest{
			UserID:         user.ID,
			Name:           req.Name,
			Email:          req.Email,
			PhoneNumber:    req.PhoneNumber,
			Specialization: req.Specialization,
		})
		if err != nil {
			s.compensateUser(ctx, user.ID)
			return nil, err
		}
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.EventUserRegistered, events.UserRegisteredPayload{
		UserID: user.ID,
		Role:   string(user.Role),
	})

	return &dto.AuthData{Token: token, ExpiresAt: expiresAt, User: dto.NewUserResponse(user)}, nil
}

// Login checks the credentials and issues a fresh token.
func (s *UserService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthData, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &dto.AuthData{Token: token, ExpiresAt: expiresAt, User: dto.NewUserResponse(user)}, nil
}

// Logout blacklists the presented token until its natural expiry.
func (s *UserService) Logout(ctx context.Context, token string) error {
	expiresAt, err := s.tokens.ExtractExpiration(token)
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}
	if err := s.blacklist.Revoke(ctx, token, expiresAt); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// GetUser returns the role-shaped projection of a user: citizens come back
// joined with their profile, workers with their live worker record, admins
// as the bare user.
func (s *UserService) GetUser(ctx context.Context, userID string) (any, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, apperrors.MapError(err)
	}

	switch user.Role {
	case domain.RoleCitizen:
		citizen, err := s.citizens.GetByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("citizen profile", map[string]any{"user_id": userID})
			}
			return nil, apperrors.MapError(err)
		}
		return dto.NewCitizenResponse(user, citizen), nil
	case domain.RoleWorker:
		worker, err := s.workers.GetProfile(ctx, userID)
		if err != nil {
			return nil, err
		}
		return *worker, nil
	default:
		return dto.NewUserResponse(user), nil
	}
}

// ListUsers returns every base user record.
func (s *UserService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserResponse(&users[i]))
	}
	return out, nil
}

// ListCitizens returns every citizen profile joined with its user record.
// Profiles whose user row is missing are skipped with a log line rather than
// failing the whole listing.
func (s *UserService) ListCitizens(ctx context.Context) ([]dto.CitizenResponse, error) {
	citizens, err := s.citizens.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	out := make([]dto.CitizenResponse, 0, len(citizens))
	for i := range citizens {
		user, err := s.users.GetByID(ctx, citizens[i].UserID)
		if err != nil {
			s.logger.Warn("citizen profile without user record",
				zap.String("user_id", citizens[i].UserID), zap.Error(err))
			continue
		}
		out = append(out, dto.NewCitizenResponse(user, &citizens[i]))
	}
	return out, nil
}

// UpdateUser applies the mutable fields. The role is immutable: a request
// naming a different role is rejected before anything is written. The local
// user and citizen rows commit first; the worker-service push is a follow-up
// whose failure does not roll them back.
func (s *UserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, apperrors.MapError(err)
	}
	if req.Role != user.Role {
		return nil, apperrors.NewValidationError("role cannot be changed once assigned", map[string]any{
			"current": string(user.Role), "requested": string(req.Role),
		})
	}
	if err := validateRoleFields(user.Role, req.PhoneNumber, req.Address, req.City, req.PinCode, req.Specialization); err != nil {
		return nil, err
	}

	user.Name = req.Name
	if req.Email != "" {
		user.Email = req.Email
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	switch user.Role {
	case domain.RoleCitizen:
		citizen, err := s.citizens.GetByUserID(ctx, userID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		citizen.PhoneNumber = req.PhoneNumber
		citizen.Address = req.Address
		citizen.City = req.City
		citizen.PinCode = req.PinCode
		if err := s.citizens.Update(ctx, citizen); err != nil {
			return nil, apperrors.MapError(err)
		}
	case domain.RoleWorker:
		_, err := s.workers.UpdateProfile(ctx, userID, dto.UpdateWorkerRequest{
			Name:           req.Name,
			Email:          req.Email,
			PhoneNumber:    req.PhoneNumber,
			Specialization: req.Specialization,
		})
		if err != nil {
			return nil, err
		}
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// DeleteUser removes the account and its role profile. Admin accounts cannot
// be deleted. For workers the remote profile goes first; while it fails the
// user row stays, so a retry can finish the job.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return apperrors.MapError(err)
	}

	switch user.Role {
	case domain.RoleAdmin:
		return apperrors.NewForbidden("admin accounts cannot be deleted")
	case domain.RoleWorker:
		if err := s.workers.DeleteProfile(ctx, userID); err != nil {
			return err
		}
	case domain.RoleCitizen:
		if err := s.citizens.DeleteByUserID(ctx, userID); err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return apperrors.MapError(err)
		}
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// validateRoleFields enforces the profile fields each role must carry.
func validateRoleFields(role domain.UserRole, phone, address, city string, pinCode int, specialization string) error {
	if !role.Valid() {
		return apperrors.NewValidationError("unknown role", map[string]any{"role": string(role)})
	}
	missing := map[string]any{}
	switch role {
	case domain.RoleCitizen:
		if phone == "" {
			missing["phoneNumber"] = "required for CITIZEN"
		}
		if address == "" {
			missing["address"] = "required for CITIZEN"
		}
		if city == "" {
			missing["city"] = "required for CITIZEN"
		}
		if pinCode <= 0 {
			missing["pinCode"] = "required for CITIZEN"
		}
	case domain.RoleWorker:
		if phone == "" {
			missing["phoneNumber"] = "required for WORKER"
		}
		if specialization == "" {
			missing["specialization"] = "required for WORKER"
		}
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("missing role profile fields", missing)
	}
	return nil
}

func (s *UserService) compensateUser(ctx context.Context, userID string) {
	if err := s.users.Delete(ctx, userID); err != nil {
		s.logger.Error("failed to delete user during registration compensation",
			zap.String("user_id", userID), zap.Error(err))
	}
}

func (s *UserService) publish(ctx context.Context, eventType events.EventType, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
