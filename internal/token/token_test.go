package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	c := NewCodec("test-secret")

	tok, err := c.Encode("cs_123", "Foo@Bar.com", "demo-game", 48*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	ent, err := c.Decode(tok)
	require.NoError(t, err)

	assert.Equal(t, "cs_123", ent.SessionID)
	assert.Equal(t, "foo@bar.com", ent.Email, "email must be lowercased at mint time")
	assert.Equal(t, "demo-game", ent.GameID)
	assert.Equal(t, ent.IssuedAt.Add(48*time.Hour), ent.ExpiresAt)
	assert.False(t, time.Now().After(ent.ExpiresAt))
}

func TestDecode_ExpiryBoundary(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	c := NewCodec("test-secret")
	c.now = func() time.Time { return issued }

	tok, err := c.Encode("cs_123", "a@b.com", "demo-game", time.Hour)
	require.NoError(t, err)
	expiry := issued.Add(time.Hour)

	cases := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{"one second before expiry", expiry.Add(-time.Second), nil},
		{"exactly at expiry", expiry, nil},
		{"one second after expiry", expiry.Add(time.Second), ErrExpired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c.now = func() time.Time { return tc.now }
			_, err := c.Decode(tok)
			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestDecode_RejectsGarbage(t *testing.T) {
	c := NewCodec("test-secret")

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := c.Decode(tok)
		assert.ErrorIs(t, err, ErrInvalid, "token %q", tok)
	}
}

func TestDecode_RejectsTamperedSignature(t *testing.T) {
	c := NewCodec("test-secret")
	other := NewCodec("other-secret")

	tok, err := other.Encode("cs_123", "a@b.com", "demo-game", time.Hour)
	require.NoError(t, err)

	_, err = c.Decode(tok)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDecode_RejectsMissingFields(t *testing.T) {
	c := NewCodec("test-secret")

	tok, err := c.Encode("", "a@b.com", "demo-game", time.Hour)
	require.NoError(t, err)

	_, err = c.Decode(tok)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestFileToken_RoundTrip(t *testing.T) {
	c := NewCodec("test-secret")

	tok, err := c.EncodeFile("demo-game", "demo-game-win64.zip", 48*time.Hour)
	require.NoError(t, err)

	grant, err := c.DecodeFile(tok)
	require.NoError(t, err)
	assert.Equal(t, "demo-game", grant.GameID)
	assert.Equal(t, "demo-game-win64.zip", grant.FileName)
}

func TestScopes_NotInterchangeable(t *testing.T) {
	c := NewCodec("test-secret")

	entTok, err := c.Encode("cs_123", "a@b.com", "demo-game", time.Hour)
	require.NoError(t, err)
	fileTok, err := c.EncodeFile("demo-game", "build.zip", time.Hour)
	require.NoError(t, err)

	_, err = c.DecodeFile(entTok)
	assert.ErrorIs(t, err, ErrInvalid, "entitlement token must not pass as file token")

	_, err = c.Decode(fileTok)
	assert.ErrorIs(t, err, ErrInvalid, "file token must not pass as entitlement token")
}
