package common

import (
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString(t *testing.T) {
	const n = 16
	s, err := MakeRandHexString(n)
	require.NoError(t, err)
	assert.Len(t, s, n*2)

	_, err = hex.DecodeString(s)
	assert.NoError(t, err, "string is not valid hex")

	empty, err := MakeRandHexString(0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGenerateRandByteArray(t *testing.T) {
	a := GenerateRandByteArray(32)
	b := GenerateRandByteArray(32)
	require.Len(t, a, 32)
	require.Len(t, b, 32)

	if string(a) == string(b) {
		t.Logf("warning: two GenerateRandByteArray(32) results are identical; extremely unlikely")
	}
}

func TestWipeByteArray(t *testing.T) {
	buf := []byte("hunter2")
	WipeByteArray(buf)
	assert.Equal(t, make([]byte, 7), buf)

	assert.NotPanics(t, func() { WipeByteArray(nil) })
}

func TestSentinelsSurviveWrapping(t *testing.T) {
	err := fmt.Errorf("users.Create: %w", ErrorAlreadyExists)
	assert.True(t, errors.Is(err, ErrorAlreadyExists))
	assert.False(t, errors.Is(err, ErrorNotFound))
}
