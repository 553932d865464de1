package simplefin

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDecodeSetupToken(t *testing.T) {
	claimURL := "https://bridge.example.com/simplefin/claim/ABC123"

	tests := []struct {
		name    string
		token   string
		want    string
		wantErr bool
	}{
		{
			name:  "standard base64",
			token: base64.StdEncoding.EncodeToString([]byte(claimURL)),
			want:  claimURL,
		},
		{
			name:  "unpadded base64",
			token: base64.RawStdEncoding.EncodeToString([]byte(claimURL)),
			want:  claimURL,
		},
		{
			name:  "surrounding whitespace",
			token: "  " + base64.StdEncoding.EncodeToString([]byte(claimURL)) + "\n",
			want:  claimURL,
		},
		{
			name:    "not base64",
			token:   "not-base64!!",
			wantErr: true,
		},
		{
			name:    "decodes to binary garbage",
			token:   base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe, 0x00, 0x01}),
			wantErr: true,
		},
		{
			name:    "empty",
			token:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeSetupToken(tt.token)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidSetupToken)
				assert.Contains(t, err.Error(), "setup token")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupService_ClaimToken(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	claimURL := "https://bridge.example.com/simplefin/claim/ABC123"
	token := base64.StdEncoding.EncodeToString([]byte(claimURL))

	mockTransport.On("Claim", mock.Anything, claimURL).
		Return("https://u1:p1@bridge.example.com/simplefin", nil)

	result, err := client.Setup.ClaimToken(context.Background(), token)

	require.NoError(t, err)
	assert.Equal(t, "https://u1:p1@bridge.example.com/simplefin", result.AccessURL)
	assert.Contains(t, result.Instructions, EnvAccessURL)
	mockTransport.AssertExpectations(t)
}

func TestSetupService_ClaimToken_InvalidToken(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	_, err := client.Setup.ClaimToken(context.Background(), "not-base64!!")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSetupToken)
	// No network call happens for an undecodable token
	mockTransport.AssertNotCalled(t, "Claim", mock.Anything, mock.Anything)
}

func TestSetupService_ClaimToken_ClaimFailed(t *testing.T) {
	mockTransport := new(MockTransport)
	client := newTestClient(mockTransport)

	claimURL := "https://bridge.example.com/simplefin/claim/USED"
	token := base64.StdEncoding.EncodeToString([]byte(claimURL))

	mockTransport.On("Claim", mock.Anything, claimURL).
		Return("", &Error{Code: "CLAIM_FAILED", Message: "Failed to claim token (HTTP 403).", Err: ErrClaimFailed})

	_, err := client.Setup.ClaimToken(context.Background(), token)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrClaimFailed)
}
