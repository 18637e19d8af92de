package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tutor/internal/core/domain"
)

func TestStaticTokenVerifier_Verify(t *testing.T) {
	v := NewStaticTokenVerifier(map[string]string{
		"tok-ana":   "ana",
		"tok-bruno": "bruno",
		"":          "ignored",
		"tok-empty": "",
	})
	require.Equal(t, 2, v.Len())

	tests := []struct {
		name    string
		token   string
		want    string
		wantErr bool
	}{
		{"known token", "tok-ana", "ana", false},
		{"second token", "tok-bruno", "bruno", false},
		{"unknown token", "tok-carla", "", true},
		{"empty token", "", "", true},
		{"prefix of known token", "tok-an", "", true},
		{"token with empty username", "tok-empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Verify(context.Background(), tt.token)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrUnauthorized)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStaticTokenVerifier_CancelledContext(t *testing.T) {
	v := NewStaticTokenVerifier(map[string]string{"t": "u"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := v.Verify(ctx, "t")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestNullTokenVerifier(t *testing.T) {
	v := NewNullTokenVerifier("anonymous")

	got, err := v.Verify(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "anonymous", got)

	got, err = v.Verify(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "anonymous", got)
}

func TestNewVerifier(t *testing.T) {
	_, isNull := NewVerifier(nil, "anonymous").(*NullTokenVerifier)
	assert.True(t, isNull)

	_, isStatic := NewVerifier(map[string]string{"t": "u"}, "anonymous").(*StaticTokenVerifier)
	assert.True(t, isStatic)
}
