package account

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInviteCode_RedrawsBiasedBytes(t *testing.T) {
	src := []byte{248, 249, 250, 251, 252, 253, 254, 255}
	src = append(src, 0, 31, 62, 30, 247, 255, 1, 2)
	src = append(src, 3, 4, 5, 6, 7, 8, 9, 10)

	code, err := newInviteCode(bytes.NewReader(src))
	require.NoError(t, err)

	// 247 is the last accepted byte: 247 % 31 == 30.
	assert.Equal(t, "AAA99BCD", code)
}

func TestNewInviteCode_ShortSource(t *testing.T) {
	_, err := newInviteCode(bytes.NewReader([]byte{255, 255, 255}))
	assert.Error(t, err)
}
