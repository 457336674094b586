package userService

import (
	"context"
	"io"
	"net/http"
	"testing"

	"BlogGolang/internal/api/user"
	userRepository "BlogGolang/internal/api/user/repository"
	"BlogGolang/internal/entity"
	bcryptPkg "BlogGolang/pkg/bcrypt"
	"BlogGolang/pkg/response"
	"BlogGolang/pkg/utils"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type fakeRepository struct {
	stub *usersStub
}

func (f *fakeRepository) NewClient(tx bool) (userRepository.Client, error) {
	return userRepository.Client{
		Users:    f.stub,
		Commit:   func() error { return nil },
		Rollback: func() error { return nil },
	}, nil
}

type usersStub struct {
	byID      map[string]entity.User
	byEmail   map[string]entity.User
	all       []entity.User
	active    []entity.UserWithPostCount
	stats     entity.UserStats
	posts     []entity.PostSummaryWithCategory
	postCount int

	created     []entity.User
	updated     []entity.User
	deleted     []string
	newHash     string
	roleQueried string
	activeLimit int
}

func (s *usersStub) CreateUser(_ context.Context, userData entity.User) error {
	s.created = append(s.created, userData)
	return nil
}

func (s *usersStub) GetAllUsers(_ context.Context) ([]entity.User, error) {
	return s.all, nil
}

func (s *usersStub) GetUsersByRole(_ context.Context, role string) ([]entity.User, error) {
	s.roleQueried = role
	return s.all, nil
}

func (s *usersStub) GetActiveUsers(_ context.Context, limit int) ([]entity.UserWithPostCount, error) {
	s.activeLimit = limit
	return s.active, nil
}

func (s *usersStub) GetStats(_ context.Context) (entity.UserStats, error) {
	return s.stats, nil
}

func (s *usersStub) GetUserByID(_ context.Context, id string) (entity.User, error) {
	userData, ok := s.byID[id]
	if !ok {
		return entity.User{}, user.ErrUserNotFound
	}
	return userData, nil
}

func (s *usersStub) GetUserByEmail(_ context.Context, email string) (entity.User, error) {
	userData, ok := s.byEmail[email]
	if !ok {
		return entity.User{}, user.ErrUserNotFound
	}
	return userData, nil
}

func (s *usersStub) GetPostSummaries(_ context.Context, _ string) ([]entity.PostSummaryWithCategory, error) {
	return s.posts, nil
}

func (s *usersStub) CountPosts(_ context.Context, _ string) (int, error) {
	return s.postCount, nil
}

func (s *usersStub) UpdateUser(_ context.Context, userData entity.User) error {
	s.updated = append(s.updated, userData)
	return nil
}

func (s *usersStub) UpdatePassword(_ context.Context, _ string, hashedPassword string) error {
	s.newHash = hashedPassword
	return nil
}

func (s *usersStub) DeleteUser(_ context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func newService(stub *usersStub) IUsersService {
	return NewUsersService(testLogger(), &fakeRepository{stub: stub}, bcryptPkg.NewWithCost(bcrypt.MinCost), utils.New())
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcryptPkg.NewWithCost(bcrypt.MinCost).HashPassword(password)
	require.NoError(t, err)
	return hash
}

func TestRegisterUser(t *testing.T) {
	stub := &usersStub{}
	svc := newService(stub)

	result, err := svc.RegisterUser(context.Background(), user.RegisterUserRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.ID)
	assert.Equal(t, entity.RoleUser, result.Role)

	require.Len(t, stub.created, 1)
	stored := stub.created[0]
	assert.NotEqual(t, "secret123", stored.Password)
	assert.NoError(t, bcryptPkg.New().ComparePassword(stored.Password, "secret123"))
}

func TestRegisterUser_KeepsExplicitRole(t *testing.T) {
	stub := &usersStub{}
	svc := newService(stub)

	result, err := svc.RegisterUser(context.Background(), user.RegisterUserRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "secret123",
		Role:     entity.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, result.Role)
}

func TestGetUsersByRole_RejectsUnknownRole(t *testing.T) {
	stub := &usersStub{}
	svc := newService(stub)

	_, err := svc.GetUsersByRole(context.Background(), "SUPERUSER")
	assert.ErrorIs(t, err, user.ErrInvalidRole)
	assert.Empty(t, stub.roleQueried)
}

func TestGetActiveUsers_ClampsLimit(t *testing.T) {
	stub := &usersStub{
		active: []entity.UserWithPostCount{
			{User: entity.User{ID: "user-1", Name: "Ana"}, PostCount: 12},
		},
	}
	svc := newService(stub)

	result, err := svc.GetActiveUsers(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, 10, stub.activeLimit)
	require.Len(t, result.Users, 1)
	require.NotNil(t, result.Users[0].PostCount)
	assert.Equal(t, 12, *result.Users[0].PostCount)
}

func TestChangePassword(t *testing.T) {
	stub := &usersStub{
		byID: map[string]entity.User{
			"user-1": {ID: "user-1", Password: mustHash(t, "old-secret")},
		},
	}
	svc := newService(stub)

	err := svc.ChangePassword(context.Background(), "user-1", user.ChangePasswordRequest{
		CurrentPassword: "old-secret",
		NewPassword:     "new-secret",
	})
	require.NoError(t, err)

	require.NotEmpty(t, stub.newHash)
	assert.NoError(t, bcryptPkg.New().ComparePassword(stub.newHash, "new-secret"))
}

func TestChangePassword_WrongCurrentPassword(t *testing.T) {
	stub := &usersStub{
		byID: map[string]entity.User{
			"user-1": {ID: "user-1", Password: mustHash(t, "old-secret")},
		},
	}
	svc := newService(stub)

	err := svc.ChangePassword(context.Background(), "user-1", user.ChangePasswordRequest{
		CurrentPassword: "not-the-password",
		NewPassword:     "new-secret",
	})
	assert.ErrorIs(t, err, user.ErrCurrentPasswordIncorrect)
	assert.Empty(t, stub.newHash)
}

func TestDeleteUser(t *testing.T) {
	stub := &usersStub{
		byID: map[string]entity.User{"user-1": {ID: "user-1", Name: "Ana"}},
	}
	svc := newService(stub)

	require.NoError(t, svc.DeleteUser(context.Background(), "user-1"))
	assert.Equal(t, []string{"user-1"}, stub.deleted)
}

func TestDeleteUser_BlockedByPosts(t *testing.T) {
	stub := &usersStub{
		byID:      map[string]entity.User{"user-1": {ID: "user-1", Name: "Ana"}},
		postCount: 2,
	}
	svc := newService(stub)

	err := svc.DeleteUser(context.Background(), "user-1")

	var coded *response.Error
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, http.StatusConflict, coded.Code)
	assert.Contains(t, err.Error(), `"Ana"`)
	assert.Contains(t, err.Error(), "2 posts")
	assert.Empty(t, stub.deleted)
}

func TestGetStats(t *testing.T) {
	stub := &usersStub{
		stats: entity.UserStats{TotalUsers: 10, AdminUsers: 2, ModeratorUsers: 3, RegularUsers: 5},
	}
	svc := newService(stub)

	result, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, result.TotalUsers)
	assert.Equal(t, 2, result.AdminUsers)
	assert.Equal(t, 3, result.ModeratorUsers)
	assert.Equal(t, 5, result.RegularUsers)
}
