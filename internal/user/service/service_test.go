package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/festy23/teamwork/internal/auth"
	submissionModel "github.com/festy23/teamwork/internal/submission/model"
	teamModel "github.com/festy23/teamwork/internal/team/model"
	teamRepository "github.com/festy23/teamwork/internal/team/repository"
	"github.com/festy23/teamwork/internal/testutil"
	"github.com/festy23/teamwork/internal/user/model"
	"github.com/festy23/teamwork/internal/user/repository"
	"github.com/festy23/teamwork/pkg/apperror"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type mockRevoker struct {
	mock.Mock
}

func (m *mockRevoker) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	args := m.Called(ctx, tokenID, expiresAt)
	return args.Error(0)
}

func (m *mockRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

var _ auth.Revoker = (*mockRevoker)(nil)

type fixture struct {
	db      *gorm.DB
	svc     Service
	repo    repository.Repository
	tokens  *auth.TokenManager
	revoker *mockRevoker
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewSQLite(t)
	logger := testutil.Logger()
	repo := repository.New(db, logger)
	tokens := auth.NewTokenManager(testSecret, "teamwork", time.Hour)
	revoker := new(mockRevoker)
	return &fixture{
		db:      db,
		svc:     New(repo, db, auth.NewBcryptHasher(bcrypt.MinCost), tokens, revoker, logger),
		repo:    repo,
		tokens:  tokens,
		revoker: revoker,
	}
}

func (f *fixture) register(t *testing.T, username, password string) *model.User {
	t.Helper()
	u, err := f.svc.Register(context.Background(), &model.RegisterRequest{
		Name:     "Name " + username,
		Username: username,
		Password: password,
	})
	require.NoError(t, err)
	return u
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		u := f.register(t, "alice", "password1")

		assert.NotZero(t, u.ID)
		assert.Equal(t, model.RoleUser, u.Role)
		assert.NotEqual(t, "password1", u.PasswordHash)
	})

	t.Run("duplicate username leaves the first user untouched", func(t *testing.T) {
		f := newFixture(t)
		first := f.register(t, "alice", "password1")

		_, err := f.svc.Register(ctx, &model.RegisterRequest{Name: "Impostor", Username: "alice", Password: "password2"})
		assert.ErrorIs(t, err, apperror.ErrDuplicateUsername)

		stored, err := f.repo.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, first.ID, stored.ID)
		assert.Equal(t, "Name alice", stored.Name)
		assert.Equal(t, first.PasswordHash, stored.PasswordHash)

		users, err := f.repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})

	t.Run("validation", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Register(ctx, &model.RegisterRequest{Name: "A", Username: "al", Password: "password1"})
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
		_, err = f.svc.Register(ctx, &model.RegisterRequest{Name: "A", Username: "alice", Password: "short"})
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	})

	t.Run("whitespace-only name or username", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.Register(ctx, &model.RegisterRequest{Name: "   ", Username: "alice", Password: "password1"})
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
		_, err = f.svc.Register(ctx, &model.RegisterRequest{Name: "Alice", Username: "     ", Password: "password1"})
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
		_, err = f.svc.Register(ctx, &model.RegisterRequest{Name: "Alice", Username: "  al  ", Password: "password1"})
		assert.ErrorIs(t, err, apperror.ErrInvalidInput, "length is checked after trimming")

		users, err := f.repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("username is stored trimmed", func(t *testing.T) {
		f := newFixture(t)
		u, err := f.svc.Register(ctx, &model.RegisterRequest{Name: " Alice ", Username: " alice ", Password: "password1"})
		require.NoError(t, err)
		assert.Equal(t, "alice", u.Username)
		assert.Equal(t, "Alice", u.Name)
	})
}

func TestService_LoginLogout(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "alice", "password1")

	resp, err := f.svc.Login(ctx, &model.LoginRequest{Username: "alice", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, u.ID, resp.User.ID)

	claims, err := f.tokens.Parse(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)

	_, err = f.svc.Login(ctx, &model.LoginRequest{Username: "alice", Password: "nope"})
	assert.ErrorIs(t, err, model.ErrInvalidLogin)
	_, err = f.svc.Login(ctx, &model.LoginRequest{Username: "bob", Password: "password1"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	actor := auth.FromUser(u)
	actor.TokenID = claims.TokenID
	actor.ExpiresAt = claims.ExpiresAt
	f.revoker.On("Revoke", ctx, claims.TokenID, claims.ExpiresAt).Return(nil).Once()
	require.NoError(t, f.svc.Logout(ctx, actor))
	f.revoker.AssertExpectations(t)

	f.revoker.On("Revoke", ctx, "broken", mock.Anything).Return(errors.New("redis down")).Once()
	actor.TokenID = "broken"
	assert.Error(t, f.svc.Logout(ctx, actor))

	assert.ErrorIs(t, f.svc.Logout(ctx, auth.Identity{}), apperror.ErrUnauthorized)
}

func TestService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	admin, err := f.svc.EnsureAdmin(ctx, "root", "rootpass", "Administrator")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())

	again, err := f.svc.EnsureAdmin(ctx, "root", "other", "Administrator")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)

	_, err = f.svc.Login(ctx, &model.LoginRequest{Username: "root", Password: "rootpass"})
	assert.NoError(t, err, "existing password is kept")

	plain := f.register(t, "alice", "password1")
	promoted, err := f.svc.EnsureAdmin(ctx, "alice", "ignored1", "ignored")
	require.NoError(t, err)
	assert.Equal(t, plain.ID, promoted.ID)
	assert.True(t, promoted.IsAdmin())
}

func TestService_AdminUpdateUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := auth.FromUser(testutil.SeedUser(t, f.db, "root", model.RoleAdmin))
	alice := f.register(t, "alice", "password1")
	f.register(t, "bob", "password1")
	team := testutil.SeedTeam(t, f.db, alice, "Alpha")

	_, err := f.svc.AdminUpdateUser(ctx, auth.FromUser(alice), alice.ID, &model.AdminUpdateUserRequest{
		Name: "x", Username: "alice", Role: "USER",
	})
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = f.svc.AdminUpdateUser(ctx, admin, alice.ID, &model.AdminUpdateUserRequest{
		Name: "  ", Username: "alice", Role: "USER",
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	_, err = f.svc.AdminUpdateUser(ctx, admin, alice.ID, &model.AdminUpdateUserRequest{
		Name: "Alice", Username: "    ", Role: "USER",
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	updated, err := f.svc.AdminUpdateUser(ctx, admin, alice.ID, &model.AdminUpdateUserRequest{
		Name: "Alice Liddell", Username: "aliddell", Role: "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, updated.Role)
	assert.Equal(t, alice.PasswordHash, updated.PasswordHash)

	stored, err := teamRepository.New(f.db, testutil.Logger()).GetByID(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", stored.LeaderName)
	assert.Equal(t, "aliddell", stored.LeaderUsername)

	_, err = f.svc.AdminUpdateUser(ctx, admin, alice.ID, &model.AdminUpdateUserRequest{
		Name: "x", Username: "bob", Role: "USER",
	})
	assert.ErrorIs(t, err, apperror.ErrDuplicateUsername)
	stored, err = teamRepository.New(f.db, testutil.Logger()).GetByID(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, "aliddell", stored.LeaderUsername, "failed update rolls back")

	_, err = f.svc.AdminUpdateUser(ctx, admin, alice.ID, &model.AdminUpdateUserRequest{
		Name: "x", Username: "aliddell", Password: "newpassword", Role: "USER",
	})
	require.NoError(t, err)
	_, err = f.svc.Login(ctx, &model.LoginRequest{Username: "aliddell", Password: "newpassword"})
	assert.NoError(t, err)

	_, err = f.svc.AdminUpdateUser(ctx, admin, 999, &model.AdminUpdateUserRequest{Name: "x", Username: "ghost", Role: "USER"})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestService_AdminDeleteUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	admin := auth.FromUser(testutil.SeedUser(t, f.db, "root", model.RoleAdmin))
	leader := testutil.SeedUser(t, f.db, "lead", model.RoleUser)
	member := testutil.SeedUser(t, f.db, "member", model.RoleUser)
	led := testutil.SeedTeam(t, f.db, leader, "Led")
	other := testutil.SeedTeam(t, f.db, member, "Other")
	testutil.SeedMember(t, f.db, led.ID, member.ID)
	testutil.SeedMember(t, f.db, other.ID, leader.ID)
	a := testutil.SeedAssignment(t, f.db, other.ID, "hw", time.Now().Add(time.Hour))
	testutil.SeedSubmission(t, f.db, a.ID, leader.ID, "hw.txt", []byte("x"))

	assert.ErrorIs(t, f.svc.AdminDeleteUser(ctx, auth.FromUser(member), leader.ID), apperror.ErrForbidden)
	assert.ErrorIs(t, f.svc.AdminDeleteUser(ctx, admin, admin.UserID), model.ErrCannotDeleteSelf)
	assert.ErrorIs(t, f.svc.AdminDeleteUser(ctx, admin, 999), model.ErrUserNotFound)

	require.NoError(t, f.svc.AdminDeleteUser(ctx, admin, leader.ID))

	teams := teamRepository.New(f.db, testutil.Logger())
	orphan, err := teams.GetByID(ctx, led.ID)
	require.NoError(t, err)
	assert.True(t, orphan.IsOrphaned())
	assert.Empty(t, orphan.LeaderName)

	var memberships, submissions int64
	f.db.Model(&teamModel.Membership{}).Where("user_id = ?", leader.ID).Count(&memberships)
	f.db.Model(&submissionModel.Submission{}).Count(&submissions)
	assert.Zero(t, memberships)
	assert.Zero(t, submissions)

	stillMember, err := teams.IsMember(ctx, led.ID, member.ID)
	require.NoError(t, err)
	assert.True(t, stillMember, "other members stay until cleanup")

	_, err = f.repo.GetByID(ctx, leader.ID)
	assert.ErrorIs(t, err, model.ErrUserNotFound)

	users, err := f.svc.AdminListUsers(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	_, err = f.svc.AdminListUsers(ctx, auth.FromUser(member))
	assert.ErrorIs(t, err, model.ErrAdminRequired)
}
