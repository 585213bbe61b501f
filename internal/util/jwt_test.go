package util

import (
	"net/http/httptest"
	"testing"
	"time"

	"skilltracker_backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-test-secret-test-secret"

func TestGenerateAndParseJWT(t *testing.T) {
	user := &model.User{Email: "ada@example.com"}
	user.ID = 12

	token, err := GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(12), claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
}

func TestParseJWTRejectsWrongSecretAndExpiry(t *testing.T) {
	user := &model.User{}
	user.ID = 1

	token, err := GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)
	_, err = ParseJWT(token, "another-secret")
	require.Error(t, err)

	expired, err := GenerateJWT(user, testSecret, -time.Minute)
	require.NoError(t, err)
	_, err = ParseJWT(expired, testSecret)
	require.Error(t, err)
	assert.True(t, IsTokenExpired(err))
}

func TestParseJWTRejectsMissingUser(t *testing.T) {
	token, err := GenerateJWT(&model.User{}, testSecret, time.Hour)
	require.NoError(t, err)
	_, err = ParseJWT(token, testSecret)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseJWTRejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{UserID: 3, RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, err = ParseJWT(token, testSecret)
	require.Error(t, err)
}

func TestGetUserFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetUserFromContext(c))

	c.Set(UserContextKey, "not claims")
	assert.Nil(t, GetUserFromContext(c))

	c.Set(UserContextKey, &Claims{UserID: 5})
	require.NotNil(t, GetUserFromContext(c))
	assert.Equal(t, uint(5), GetUserFromContext(c).UserID)
}

func TestParseLimit(t *testing.T) {
	assert.Equal(t, 7, ParseLimit("", 7, 30))
	assert.Equal(t, 7, ParseLimit("abc", 7, 30))
	assert.Equal(t, 7, ParseLimit("-2", 7, 30))
	assert.Equal(t, 14, ParseLimit("14", 7, 30))
	assert.Equal(t, 30, ParseLimit("90", 7, 30))
}
