package provider

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

var (
	ErrInvalidGoogleAudience = errors.New("invalid google audience")
	ErrUnverifiedGoogleEmail = errors.New("google account email is not verified")
)

// GoogleIdentity is the subset of a validated Google ID token the auth flow
// cares about.
type GoogleIdentity struct {
	Email string
}

// GoogleProvider validates Google ID tokens supplied by the SPA.
type GoogleProvider interface {
	ValidateIDToken(ctx context.Context, idToken string) (*GoogleIdentity, error)
}

type googleOAuthProvider struct {
	clientID string
}

// NewGoogleOAuthProvider creates a GoogleProvider bound to the given OAuth
// client ID. Tokens minted for any other client are rejected.
func NewGoogleOAuthProvider(clientID string) GoogleProvider {
	return &googleOAuthProvider{clientID: clientID}
}

func (p *googleOAuthProvider) ValidateIDToken(ctx context.Context, idToken string) (*GoogleIdentity, error) {
	oauth2Service, err := oauth2.NewService(ctx, option.WithHTTPClient(&http.Client{}))
	if err != nil {
		return nil, err
	}

	tokenInfoCall := oauth2Service.Tokeninfo()
	tokenInfoCall.IdToken(idToken)
	tokenInfo, err := tokenInfoCall.Do()
	if err != nil {
		return nil, err
	}

	if tokenInfo.Audience != p.clientID {
		return nil, ErrInvalidGoogleAudience
	}

	if !tokenInfo.VerifiedEmail {
		return nil, ErrUnverifiedGoogleEmail
	}

	return &GoogleIdentity{Email: tokenInfo.Email}, nil
}
