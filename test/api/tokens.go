/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT is returned when a bearer token cannot be decoded as a JWT.
var ErrNotJWT = errors.New("bearer token is not a JWT")

// TokenClaims is the subset of bearer token claims the harness reports on.
type TokenClaims struct {
	Subject   string
	Email     string
	Role      Role
	ExpiresAt time.Time
}

// InspectToken decodes a bearer token without verifying its signature, the
// harness has no access to the platform's signing key.
func InspectToken(token string) (*TokenClaims, error) {
	claims := jwt.MapClaims{}

	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotJWT, err)
	}

	result := &TokenClaims{}

	if subject, err := claims.GetSubject(); err == nil {
		result.Subject = subject
	}

	if expiry, err := claims.GetExpirationTime(); err == nil && expiry != nil {
		result.ExpiresAt = expiry.Time
	}

	if email, ok := claims["email"].(string); ok {
		result.Email = email
	}

	if role, ok := claims["role"].(string); ok {
		result.Role = Role(role)
	}

	return result, nil
}

// Expired reports whether the token had already expired at the given time.
// Tokens without an expiry never expire.
func (c *TokenClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}
