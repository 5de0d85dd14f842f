package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joachez17/bodega-api/pkg/jwt"
)

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	token, err := jwt.Generate("secreto", "user-1", "bodeguero", "bodega-api", 5)
	require.NoError(t, err)

	userID, role, err := jwt.Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "bodeguero", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("secreto", "user-1", "admin", "bodega-api", 5)
	require.NoError(t, err)
	_, _, err = jwt.Parse("otro", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := jwt.Generate("secreto", "user-1", "admin", "bodega-api", -1)
	require.NoError(t, err)
	_, _, err = jwt.Parse("secreto", token)
	assert.Error(t, err)
}

func TestGenerate_SinSecreto(t *testing.T) {
	_, err := jwt.Generate("", "u", "admin", "x", 5)
	assert.Error(t, err)
}

func TestVerifier_EmisorDistinto(t *testing.T) {
	token, err := jwt.Generate("secreto", "user-1", "admin", "otra-app", 5)
	require.NoError(t, err)

	_, err = jwt.NewVerifier("secreto", "bodega-api").Verify(token)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	actor, err := jwt.NewVerifier("secreto", "otra-app").Verify(token)
	require.NoError(t, err)
	assert.Equal(t, jwt.Actor{UserID: "user-1", Role: "admin"}, actor)
}

func TestVerifier_SinSecreto(t *testing.T) {
	_, err := jwt.NewVerifier("", "").Verify("x.y.z")
	assert.ErrorIs(t, err, jwt.ErrMissingSecret)
}

func TestVerifier_TokenSinUsuario(t *testing.T) {
	token, err := jwt.Generate("secreto", "", "admin", "bodega-api", 5)
	require.NoError(t, err)
	_, err = jwt.NewVerifier("secreto", "").Verify(token)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}
