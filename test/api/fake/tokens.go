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

package fake

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var errInvalidToken = errors.New("invalid token")

const tokenLifetime = 24 * time.Hour

// issueToken returns a bearer token for the account. Callers must hold the lock.
func (p *Platform) issueToken(a *account) (string, error) {
	if p.opaqueTokens {
		token := uuid.NewString()
		p.sessions[token] = a.ID

		return token, nil
	}

	claims := jwt.MapClaims{
		"sub":   a.ID,
		"email": a.Email,
		"role":  string(a.Role),
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(tokenLifetime).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return token, nil
}

// subject resolves a bearer token to an account ID. Callers must hold the lock.
func (p *Platform) subject(token string) (string, error) {
	if p.opaqueTokens {
		id, ok := p.sessions[token]
		if !ok {
			return "", errInvalidToken
		}

		return id, nil
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
		return p.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("%w: %w", errInvalidToken, err)
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", errInvalidToken
	}

	return subject, nil
}
