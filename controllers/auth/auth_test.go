package authController_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"aula/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	app := testutil.SetupApp(t)

	body := map[string]string{"name": "Ana", "email": "ana@aula.test", "password": "password123"}

	resp, _ := testutil.DoJSON(t, app, "POST", "/auth/register", "", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Duplicate email conflicts
	resp, _ = testutil.DoJSON(t, app, "POST", "/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Wrong password
	resp, _ = testutil.DoJSON(t, app, "POST", "/auth/login", "", map[string]string{
		"email": "ana@aula.test", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Happy path returns a token
	resp, env := testutil.DoJSON(t, app, "POST", "/auth/login", "", map[string]string{
		"email": "ana@aula.test", "password": "password123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.Token)
}

func TestRegisterValidation(t *testing.T) {
	app := testutil.SetupApp(t)

	resp, env := testutil.DoJSON(t, app, "POST", "/auth/register", "", map[string]string{
		"name": "A", "email": "not-an-email", "password": "short",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var errs map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &errs))
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}
