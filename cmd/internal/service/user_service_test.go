package service

import (
	"testing"

	"orbit/cmd/internal/utils"
	"orbit/cmd/internal/utils/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_ResolveCreatesOnce(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.users)
	token := &utils.TokenData{Sub: "new-sub", Email: "New@Example.com", Name: "New", Picture: "https://img", EmailVerified: true}

	user, apierr := svc.ResolveUser(token)
	require.Nil(t, apierr)
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, "https://img", user.Image)

	again, apierr := svc.ResolveUser(token)
	require.Nil(t, apierr)
	assert.Equal(t, user.ID, again.ID)
}

func TestUserService_ResolveExisting(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.users)

	user, apierr := svc.ResolveUser(&utils.TokenData{Sub: f.user.SubUUID})
	require.Nil(t, apierr)
	assert.Equal(t, f.user.ID, user.ID)
}

func TestUserService_EmailOwnedByAnotherSubject(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.users)

	_, apierr := svc.ResolveUser(&utils.TokenData{Sub: "recreated", Email: f.user.Email})
	assert.Equal(t, apierror.IDPExistingEmailError, apierr)

	user, apierr := svc.ResolveUser(&utils.TokenData{Sub: "recreated", Email: f.user.Email, EmailVerified: true})
	require.Nil(t, apierr)
	assert.Equal(t, f.user.ID, user.ID)
	assert.Equal(t, "recreated", user.SubUUID)
}

func TestUserService_TokenWithoutEmail(t *testing.T) {
	f := newFixture(t)
	svc := NewUserService(f.users)

	_, apierr := svc.ResolveUser(&utils.TokenData{Sub: "nobody"})
	assert.Equal(t, apierror.InvalidAuthTokenError, apierr)
}
