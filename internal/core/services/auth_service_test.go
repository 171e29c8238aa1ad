package services

import (
	"context"
	"sync"
	"testing"

	"github.com/gimhantharuke456/policeappbackend/internal/adapters/persistence/repositories"
	"github.com/gimhantharuke456/policeappbackend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRequiresRosterEntry(t *testing.T) {
	d := newTestDeps(t)
	svc := d.authService()

	for _, pw := range []string{"s3cret-pass", "x", ""} {
		input := registerInput("SVC-404")
		input.Password = pw
		_, err := svc.Register(context.Background(), input)
		assert.ErrorIs(t, err, domain.ErrNotAuthorized, pw)
	}

	exists, err := d.officers.ExistsBySVC(context.Background(), "SVC-404")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRegisterInactiveRosterEntry(t *testing.T) {
	d := newTestDeps(t)
	d.allow(t, "SVC-1")
	require.NoError(t, d.roster.Deactivate(context.Background(), "SVC-1"))

	_, err := d.authService().Register(context.Background(), registerInput("SVC-1"))
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)
}

func TestRegisterSuccess(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	d.allow(t, "SVC-1")
	svc := d.authService()

	resp, err := svc.Register(ctx, registerInput("SVC-1"))
	require.NoError(t, err)
	assert.Equal(t, "SVC-1", resp.OfficerSVC)
	assert.Equal(t, "Officer SVC-1", resp.FullName)
	assert.Equal(t, "Colombo Fort", resp.PoliceStation)
	require.NotEmpty(t, resp.Token)

	identity, err := svc.Verify("Bearer " + resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "SVC-1", identity.OfficerSVC)

	stored, err := d.officers.GetBySVC(ctx, "SVC-1")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", stored.Password)
	assert.Equal(t, stored.ID, identity.ID)
	assert.True(t, d.hasher.Verify(ctx, "s3cret-pass", stored.Password))
}

func TestRegisterShortPassword(t *testing.T) {
	d := newTestDeps(t)
	d.allow(t, "SVC-1")

	input := registerInput("SVC-1")
	input.Password = "abc"
	_, err := d.authService().Register(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "Password must be at least 6 characters", domain.Message(err))
}

func TestRegisterEmptyPasswordOnRoster(t *testing.T) {
	d := newTestDeps(t)
	d.allow(t, "SVC-1")

	input := registerInput("SVC-1")
	input.Password = ""
	_, err := d.authService().Register(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "Password must be at least 6 characters", domain.Message(err))
}

func TestRegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	d.allow(t, "SVC-1")
	svc := d.authService()

	_, err := svc.Register(ctx, registerInput("SVC-1"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerInput("SVC-1"))
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

// blindOfficerRepo never sees an existing account, so uniqueness is left to the index
type blindOfficerRepo struct {
	repositories.OfficerRepository
}

func (blindOfficerRepo) ExistsBySVC(context.Context, string) (bool, error) {
	return false, nil
}

func TestRegisterRaceResolvedByUniqueIndex(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	d.allow(t, "SVC-1")
	svc := NewAuthService(blindOfficerRepo{d.officers}, d.roster, d.hasher, d.tokens, 0)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(ctx, registerInput("SVC-1"))
		}(i)
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	}
	assert.Equal(t, 1, ok)
}

func TestLoginDoesNotLeakExistence(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	d.allow(t, "SVC-1")
	svc := d.authService()
	_, err := svc.Register(ctx, registerInput("SVC-1"))
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, &LoginInput{OfficerSVC: "SVC-1", Password: "nope-nope"})
	_, unknownUser := svc.Login(ctx, &LoginInput{OfficerSVC: "SVC-2", Password: "s3cret-pass"})

	assert.ErrorIs(t, wrongPassword, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, domain.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())

	resp, err := svc.Login(ctx, &LoginInput{OfficerSVC: "SVC-1", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Officer SVC-1", resp.FullName)
}

func TestLoginValidation(t *testing.T) {
	_, err := newTestDeps(t).authService().Login(context.Background(), &LoginInput{OfficerSVC: "SVC-1"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "Password is required", domain.Message(err))
}

func TestVerify(t *testing.T) {
	d := newTestDeps(t)
	svc := d.authService()

	_, err := svc.Verify("")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = svc.Verify("Token abc")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Verify("Bearer ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Verify("Bearer not.a.token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	token, err := d.tokens.Generate(7, "SVC-7")
	require.NoError(t, err)
	identity, err := svc.Verify("bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), identity.ID)
	assert.Equal(t, "SVC-7", identity.OfficerSVC)
}

func TestCurrentOfficerGone(t *testing.T) {
	_, err := newTestDeps(t).authService().CurrentOfficer(context.Background(), &domain.TokenIdentity{ID: 1, OfficerSVC: "GONE"})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Equal(t, "No User Found", domain.Message(err))
}

func TestUpdateProfilePartial(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	d.allow(t, "SVC-1")
	svc := d.authService()
	_, err := svc.Register(ctx, registerInput("SVC-1"))
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, &UpdateProfileInput{
		OfficerSVC: "SVC-1",
		Email:      strPtr("one@police.lk"),
		Phone:      strPtr("0771234567"),
	})
	require.NoError(t, err)
	before, err := d.officers.GetBySVC(ctx, "SVC-1")
	require.NoError(t, err)

	summary, err := svc.UpdateProfile(ctx, &UpdateProfileInput{
		OfficerSVC:    "SVC-1",
		PoliceStation: strPtr("Kandy"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Kandy", summary.PoliceStation)

	after, err := d.officers.GetBySVC(ctx, "SVC-1")
	require.NoError(t, err)
	assert.Equal(t, "Kandy", after.PoliceStation)
	assert.Equal(t, before.FullName, after.FullName)
	assert.Equal(t, before.OfficerRank, after.OfficerRank)
	assert.Equal(t, before.Email, after.Email)
	assert.Equal(t, before.Phone, after.Phone)
	assert.Equal(t, before.Password, after.Password)
	assert.False(t, after.UpdatedAt.Before(before.UpdatedAt))
}

func TestUpdateProfileErrors(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	d.allow(t, "SVC-1", "SVC-2")
	svc := d.authService()
	for _, s := range []string{"SVC-1", "SVC-2"} {
		_, err := svc.Register(ctx, registerInput(s))
		require.NoError(t, err)
	}

	_, err := svc.UpdateProfile(ctx, &UpdateProfileInput{FullName: strPtr("X")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.UpdateProfile(ctx, &UpdateProfileInput{OfficerSVC: "SVC-9", FullName: strPtr("X")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.UpdateProfile(ctx, &UpdateProfileInput{OfficerSVC: "SVC-1", Email: strPtr("not-an-email")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.UpdateProfile(ctx, &UpdateProfileInput{OfficerSVC: "SVC-1", Email: strPtr("shared@police.lk")})
	require.NoError(t, err)
	_, err = svc.UpdateProfile(ctx, &UpdateProfileInput{OfficerSVC: "SVC-2", Email: strPtr("shared@police.lk")})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	// re-saving your own email is not a clash
	_, err = svc.UpdateProfile(ctx, &UpdateProfileInput{OfficerSVC: "SVC-1", Email: strPtr("shared@police.lk")})
	assert.NoError(t, err)
}
