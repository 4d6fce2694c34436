// Copyright 2025 Map My Vid Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapmyvid/map-my-vid-go/internal/auth"
)

const testSecret = "unit-test-secret"

func protectedRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(auth.Middleware(secret))
	router.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": auth.UserID(c)})
	})
	return router
}

func doRequest(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

// TestMiddlewareAcceptsValidToken verifies a signed token passes and the
// handler sees the identity it carries.
func TestMiddlewareAcceptsValidToken(t *testing.T) {
	router := protectedRouter(testSecret)
	token, err := auth.NewToken(testSecret, "user-42")
	require.NoError(t, err)

	recorder := doRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "user-42")
}

// TestMiddlewareRejectsMissingHeader verifies an anonymous request stops at
// the middleware.
func TestMiddlewareRejectsMissingHeader(t *testing.T) {
	recorder := doRequest(protectedRouter(testSecret), "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

// TestMiddlewareRejectsGarbageToken verifies an unparseable token is a 401,
// not a 500.
func TestMiddlewareRejectsGarbageToken(t *testing.T) {
	recorder := doRequest(protectedRouter(testSecret), "Bearer not.a.token")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

// TestMiddlewareRejectsWrongSecret verifies a token signed with another key
// does not validate.
func TestMiddlewareRejectsWrongSecret(t *testing.T) {
	router := protectedRouter(testSecret)
	token, err := auth.NewToken("some-other-secret", "user-42")
	require.NoError(t, err)

	recorder := doRequest(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

// TestMiddlewareRejectsUnsignedAlgorithm verifies tokens that dodge the HMAC
// pin, like alg=none, are refused.
func TestMiddlewareRejectsUnsignedAlgorithm(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &auth.Claims{UserID: "user-42"})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	recorder := doRequest(protectedRouter(testSecret), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

// TestMiddlewareRejectsEmptyIdentity verifies a valid signature with no
// user id claim is still refused.
func TestMiddlewareRejectsEmptyIdentity(t *testing.T) {
	token, err := auth.NewToken(testSecret, "")
	require.NoError(t, err)

	recorder := doRequest(protectedRouter(testSecret), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
