package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapAndIsCode(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CodeStorage, "failed to save profile", cause)

	require.True(t, IsCode(err, CodeStorage))
	require.False(t, IsCode(err, CodeNotFound))
	require.ErrorIs(t, err, cause)
	require.Equal(t, "failed to save profile: connection refused", err.Error())
}

func TestIsCode_ThroughFmtWrap(t *testing.T) {
	err := fmt.Errorf("get profile: %w", NotFound("profile not found"))
	require.True(t, IsCode(err, CodeNotFound))
	require.Equal(t, "profile not found", Message(err, "fallback"))
}

func TestMessage_Fallback(t *testing.T) {
	require.Equal(t, "fallback", Message(errors.New("plain"), "fallback"))
	require.False(t, IsCode(nil, CodeNotFound))
}
