package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/smartcity/internal/api/dto"
	"github.com/spec-kit/smartcity/internal/auth"
	"github.com/spec-kit/smartcity/internal/domain"
	apperrors "github.com/spec-kit/smartcity/pkg/util/errorutil"
)

func newUserFixture(t *testing.T) (*UserService, *stubUserRepo, *stubCitizenRepo, *stubWorkerClient) {
	t.Helper()
	users := newStubUserRepo()
	citizens := newStubCitizenRepo()
	client := &stubWorkerClient{}
	svc := NewUserService(UserDependencies{
		UserRepo:     users,
		CitizenRepo:  citizens,
		WorkerClient: client,
		Tokens:       auth.NewTokenManager("test-secret", 60),
		BcryptCost:   bcrypt.MinCost,
	})
	return svc, users, citizens, client
}

func citizenRegistration() dto.RegisterRequest {
	return dto.RegisterRequest{
		Name:        "Asha",
		Email:       "asha@city.test",
		Password:    "supersecret",
		Role:        domain.RoleCitizen,
		PhoneNumber: "5550001",
		Address:     "12 Canal Rd",
		City:        "Riverton",
		PinCode:     411001,
	}
}

func workerRegistration() dto.RegisterRequest {
	return dto.RegisterRequest{
		Name:           "Dana",
		Email:          "dana@city.test",
		Password:       "supersecret",
		Role:           domain.RoleWorker,
		PhoneNumber:    "5550002",
		Specialization: "plumbing",
	}
}

func TestRegisterCitizenCreatesUserAndProfile(t *testing.T) {
	svc, users, citizens, _ := newUserFixture(t)

	data, err := svc.Register(context.Background(), citizenRegistration())
	require.NoError(t, err)
	assert.NotEmpty(t, data.Token)
	assert.Equal(t, "CITIZEN", data.User.Role)

	stored, err := users.GetByID(context.Background(), data.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "asha@city.test", stored.Email)

	profile, err := citizens.GetByUserID(context.Background(), data.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Riverton", profile.City)
}

func TestRegisterWorkerCallsWorkerService(t *testing.T) {
	svc, _, _, client := newUserFixture(t)

	data, err := svc.Register(context.Background(), workerRegistration())
	require.NoError(t, err)

	require.Len(t, client.created, 1)
	assert.Equal(t, data.User.ID, client.created[0].UserID)
	assert.Equal(t, "plumbing", client.created[0].Specialization)
}

func TestRegisterCompensatesWhenWorkerProfileFails(t *testing.T) {
	svc, users, _, client := newUserFixture(t)
	client.createErr = apperrors.NewDependencyFailure("worker-service unavailable", errors.New("connection refused"))

	_, err := svc.Register(context.Background(), workerRegistration())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "DEPENDENCY_FAILURE"))

	all, err := users.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all, "failed registration must not leave a user behind")
}

func TestRegisterCompensatesWhenCitizenProfileFails(t *testing.T) {
	svc, users, citizens, _ := newUserFixture(t)
	citizens.createErr = errors.New("insert failed")

	_, err := svc.Register(context.Background(), citizenRegistration())
	require.Error(t, err)

	all, err := users.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newUserFixture(t)

	_, err := svc.Register(context.Background(), citizenRegistration())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), citizenRegistration())
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))
}

func TestRegisterFailsFastOnMissingRoleFields(t *testing.T) {
	svc, users, _, client := newUserFixture(t)

	req := workerRegistration()
	req.Specialization = ""
	_, err := svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	// validation happens before any write or remote call
	all, listErr := users.List(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, all)
	assert.Empty(t, client.created)
}

func TestLoginRoundTrip(t *testing.T) {
	svc, _, _, _ := newUserFixture(t)

	_, err := svc.Register(context.Background(), citizenRegistration())
	require.NoError(t, err)

	data, err := svc.Login(context.Background(), dto.LoginRequest{Email: "asha@city.test", Password: "supersecret"})
	require.NoError(t, err)
	assert.NotEmpty(t, data.Token)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "asha@city.test", Password: "wrong-password"})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))
}

func TestLogoutRejectsGarbageToken(t *testing.T) {
	svc, _, _, _ := newUserFixture(t)

	err := svc.Logout(context.Background(), "not-a-jwt")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))
}

func TestLogoutAcceptsIssuedToken(t *testing.T) {
	svc, _, _, _ := newUserFixture(t)

	data, err := svc.Register(context.Background(), citizenRegistration())
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), data.Token))
}

func TestGetUserShapesByRole(t *testing.T) {
	svc, _, _, _ := newUserFixture(t)

	data, err := svc.Register(context.Background(), citizenRegistration())
	require.NoError(t, err)

	got, err := svc.GetUser(context.Background(), data.User.ID)
	require.NoError(t, err)
	citizen, ok := got.(dto.CitizenResponse)
	require.True(t, ok, "citizen accounts come back with their profile")
	assert.Equal(t, "Riverton", citizen.City)
}

func TestUpdateUserRejectsRoleChange(t *testing.T) {
	svc, users, _, _ := newUserFixture(t)

	data, err := svc.Register(context.Background(), citizenRegistration())
	require.NoError(t, err)

	_, err = svc.UpdateUser(context.Background(), data.User.ID, dto.UpdateUserRequest{
		Name:        "Asha Again",
		Role:        domain.RoleWorker,
		PhoneNumber: "5550001",
		Address:     "12 Canal Rd",
		City:        "Riverton",
		PinCode:     411001,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	stored, err := users.GetByID(context.Background(), data.User.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCitizen, stored.Role)
	assert.Equal(t, "Asha", stored.Name)
}

func TestUpdateUserAppliesProfileFields(t *testing.T) {
	svc, _, citizens, _ := newUserFixture(t)

	data, err := svc.Register(context.Background(), citizenRegistration())
	require.NoError(t, err)

	updated, err := svc.UpdateUser(context.Background(), data.User.ID, dto.UpdateUserRequest{
		Name:        "Asha M",
		Role:        domain.RoleCitizen,
		PhoneNumber: "5559999",
		Address:     "99 Hill St",
		City:        "Riverton",
		PinCode:     411002,
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha M", updated.Name)

	profile, err := citizens.GetByUserID(context.Background(), data.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "99 Hill St", profile.Address)
}

func TestDeleteAdminForbidden(t *testing.T) {
	svc, users, _, _ := newUserFixture(t)
	admin := &domain.User{Name: "Root", Email: "root@city.test", Role: domain.RoleAdmin}
	require.NoError(t, users.Create(context.Background(), admin))

	err := svc.DeleteUser(context.Background(), admin.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))

	_, err = users.GetByID(context.Background(), admin.ID)
	assert.NoError(t, err)
}

func TestDeleteCitizenCascades(t *testing.T) {
	svc, users, citizens, _ := newUserFixture(t)

	data, err := svc.Register(context.Background(), citizenRegistration())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(context.Background(), data.User.ID))

	_, err = users.GetByID(context.Background(), data.User.ID)
	assert.Error(t, err)
	_, err = citizens.GetByUserID(context.Background(), data.User.ID)
	assert.Error(t, err)
}

func TestDeleteWorkerKeepsUserWhenRemoteDeleteFails(t *testing.T) {
	svc, users, _, client := newUserFixture(t)

	data, err := svc.Register(context.Background(), workerRegistration())
	require.NoError(t, err)

	client.deleteErr = apperrors.NewDependencyFailure("worker-service unavailable", errors.New("connection refused"))
	err = svc.DeleteUser(context.Background(), data.User.ID)
	require.Error(t, err)

	// user survives so the delete can be retried
	_, err = users.GetByID(context.Background(), data.User.ID)
	assert.NoError(t, err)
}
