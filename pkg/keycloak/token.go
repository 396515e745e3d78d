package keycloak

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token is the relevant slice of an OpenID Connect token response.
type Token struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// Expiry reads the exp claim out of the access token. The token came over
// an authenticated channel from the issuer itself, so the signature is not
// verified here.
func (t *Token) Expiry() (time.Time, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(t.AccessToken, &claims); err != nil {
		return time.Time{}, fmt.Errorf("failed to parse access token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, errors.New("access token has no exp claim")
	}
	return claims.ExpiresAt.Time, nil
}

// Token authenticates the admin user against the master realm with the
// password grant and returns the bearer token.
func (c *Client) Token(ctx context.Context, adminUser, adminPassword string) (*Token, error) {
	form := url.Values{}
	form.Set("username", adminUser)
	form.Set("password", adminPassword)
	form.Set("grant_type", "password")
	form.Set("client_id", "admin-cli")

	resp, err := c.do(ctx, http.MethodPost, "/realms/master/protocol/openid-connect/token",
		"", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to request token: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var tok Token
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, errors.New("token response carried no access token")
	}
	return &tok, nil
}
