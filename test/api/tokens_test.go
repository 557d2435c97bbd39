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

package api_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/drivingschool/enrollment-harness/test/api"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	return token
}

func TestInspectToken(t *testing.T) {
	t.Parallel()

	expiry := time.Now().Add(time.Hour).Truncate(time.Second)

	claims, err := api.InspectToken(signedToken(t, jwt.MapClaims{
		"sub":   "user-1",
		"email": "student@test.dz",
		"role":  "student",
		"exp":   expiry.Unix(),
	}))
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "student@test.dz", claims.Email)
	require.Equal(t, api.RoleStudent, claims.Role)
	require.True(t, expiry.Equal(claims.ExpiresAt))
	require.False(t, claims.Expired(time.Now()))
	require.True(t, claims.Expired(expiry.Add(time.Minute)))
}

func TestInspectTokenWithoutExpiry(t *testing.T) {
	t.Parallel()

	claims, err := api.InspectToken(signedToken(t, jwt.MapClaims{"sub": "user-1"}))
	require.NoError(t, err)
	require.True(t, claims.ExpiresAt.IsZero())
	require.False(t, claims.Expired(time.Now().Add(24*365*time.Hour)))
}

func TestInspectOpaqueToken(t *testing.T) {
	t.Parallel()

	_, err := api.InspectToken("3f1c0f6e-5d5b-4d0e-9a53-0a7c2b1f3e4d")
	require.ErrorIs(t, err, api.ErrNotJWT)
}
