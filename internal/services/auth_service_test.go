package services

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/middleware"
	"github.com/AssiutRoboticsWeb/Staging-robotics-server/internal/models"
)

func TestAuthService_Signup_DefaultsToNotAccepted(t *testing.T) {
	env := setupServiceTestEnv(t)

	member, err := env.authService.Signup(SignupInput{
		Name:      "Alice",
		Email:     "Alice@Robotics.Test",
		Password:  "secret-password",
		Committee: "software",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleNotAccepted, member.Role)
	// email is normalized
	require.Equal(t, "alice@robotics.test", member.Email)
	require.NotEqual(t, "secret-password", member.PasswordHash)
}

func TestAuthService_Signup_ShortPassword(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, err := env.authService.Signup(SignupInput{
		Name:     "Alice",
		Email:    "alice@robotics.test",
		Password: "short",
	})
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestAuthService_Signup_EmailTaken(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, err := env.authService.Signup(SignupInput{
		Name:     "Alice",
		Email:    "alice@robotics.test",
		Password: "secret-password",
	})
	require.NoError(t, err)

	_, err = env.authService.Signup(SignupInput{
		Name:     "Other Alice",
		Email:    "alice@robotics.test",
		Password: "secret-password",
	})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_Login_IssuesParsableToken(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, err := env.authService.Signup(SignupInput{
		Name:     "Alice",
		Email:    "alice@robotics.test",
		Password: "secret-password",
	})
	require.NoError(t, err)

	member, token, err := env.authService.Login("alice@robotics.test", "secret-password")
	require.NoError(t, err)
	require.Equal(t, "alice@robotics.test", member.Email)
	require.NotEmpty(t, token)

	var claims middleware.Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(token *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	require.Equal(t, "alice@robotics.test", claims.Email)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, err := env.authService.Signup(SignupInput{
		Name:     "Alice",
		Email:    "alice@robotics.test",
		Password: "secret-password",
	})
	require.NoError(t, err)

	_, _, err = env.authService.Login("alice@robotics.test", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	env := setupServiceTestEnv(t)

	_, _, err := env.authService.Login("nobody@robotics.test", "whatever-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
