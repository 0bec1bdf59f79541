package middleware

import (
	"net/http"
	"testing"

	assert "github.com/stretchr/testify/require"
)

func TestCachePayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	body := []byte(`{"ok":true}`)

	bs, err := encodePayload(http.StatusCreated, hdr, body)
	assert.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(bs)
	assert.True(t, ok)
	assert.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadGarbage(t *testing.T) {
	_, _, _, ok := decodePayload([]byte("short"))
	assert.False(t, ok)

	_, _, _, ok = decodePayload([]byte("not a real payload, just bytes over eight"))
	assert.False(t, ok)
}
