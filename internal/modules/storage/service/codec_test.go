package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignalCodec_RoundTrip(t *testing.T) {
	sig := sampleSignal("LINK/USDT", time.Date(2024, 1, 2, 3, 4, 5, 600000000, time.UTC))
	sig.IsBuy, sig.IsSell = false, true

	b, err := encodeSignal(sig)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"pair":"LINK/USDT"`)

	back, err := decodeSignal(b)
	require.NoError(t, err)
	assert.Equal(t, sig, back)

	again, err := encodeSignal(back)
	require.NoError(t, err)
	assert.Equal(t, b, again)
}

func TestSignalCodec_Garbage(t *testing.T) {
	_, err := decodeSignal([]byte(`{"pair":`))
	assert.Error(t, err)
}
