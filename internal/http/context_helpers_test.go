package httpx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	domainauth "github.com/target/travelgo/internal/domain/auth"
)

func TestGetUserSessionFromContext(t *testing.T) {
	// No session
	if s, ok := GetUserSessionFromContext(context.Background()); assert.False(t, ok) {
		assert.Nil(t, s)
	}
	assert.Equal(t, context.Background(), SetSessionInContext(context.Background(), nil))

	// With session
	sess := &domainauth.Session{ID: "abc", Token: "tok"}
	ctx := SetSessionInContext(context.Background(), sess)
	s, ok := GetUserSessionFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, sess, s)
	assert.Equal(t, "tok", sessionToken(ctx))
}

func TestIsSignedIn(t *testing.T) {
	assert.False(t, IsSignedIn(context.Background()))
	assert.Empty(t, sessionToken(context.Background()))

	noToken := &domainauth.Session{ID: "n"}
	assert.False(t, IsSignedIn(SetSessionInContext(context.Background(), noToken)))

	user := &domainauth.Session{ID: "u", Token: "t"}
	assert.True(t, IsSignedIn(SetSessionInContext(context.Background(), user)))
}
