package simplefin

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	internalTypes "github.com/simplefin-mcp/simplefin-go/internal/types"
)

// setupService implements the SetupService interface
type setupService struct {
	client *Client
}

// ClaimToken exchanges a one-time setup token for a durable access URL.
// This is the only operation that does not need a configured access URL.
func (s *setupService) ClaimToken(ctx context.Context, setupToken string) (*ClaimResult, error) {
	claimURL, err := DecodeSetupToken(setupToken)
	if err != nil {
		return nil, err
	}

	accessURL, err := s.client.claim(ctx, claimURL)
	if err != nil {
		return nil, err
	}

	return &ClaimResult{
		AccessURL: accessURL,
		Instructions: fmt.Sprintf("Set this access URL as the %s environment variable "+
			"to enable the other SimpleFIN tools.", EnvAccessURL),
	}, nil
}

// DecodeSetupToken decodes a base64 setup token into the claim endpoint URL.
// The decoded text is used as-is; its shape is not validated further.
func DecodeSetupToken(setupToken string) (string, error) {
	setupToken = strings.TrimSpace(setupToken)
	if setupToken == "" {
		return "", invalidSetupToken()
	}

	decoded, err := base64.StdEncoding.DecodeString(setupToken)
	if err != nil {
		// Tokens are sometimes handed around without padding
		decoded, err = base64.RawStdEncoding.DecodeString(setupToken)
	}
	if err != nil || !isText(decoded) {
		return "", invalidSetupToken()
	}

	return string(decoded), nil
}

// isText reports whether the decoded bytes form printable text
func isText(data []byte) bool {
	if len(data) == 0 || !utf8.Valid(data) {
		return false
	}
	for _, b := range data {
		if b < 0x20 && b != '\t' {
			return false
		}
	}
	return true
}

func invalidSetupToken() error {
	return &Error{
		Code:    internalTypes.CodeInvalidSetupToken,
		Message: "Invalid setup token - could not base64-decode it.",
		Err:     ErrInvalidSetupToken,
	}
}
