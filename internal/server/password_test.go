package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gotest.tools/v3/assert"

	"github.com/shareclass/accounts/api"
	"github.com/shareclass/accounts/internal/server/data"
)

func TestAPI_ChangePassword(t *testing.T) {
	s := setupServer(t)
	routes := s.GenerateRoutes()

	t.Run("success invalidates the session", func(t *testing.T) {
		account := createTestAccount(t, s.db, "jane@example.com", "oldpass1")
		cookie := login(t, routes, "jane@example.com", "oldpass1")

		body := api.ChangePasswordRequest{
			CurrentPassword:    "oldpass1",
			NewPassword:        "newpass1",
			ConfirmNewPassword: "newpass1",
		}
		req := jsonRequest(http.MethodPost, "/api/change_password", cookie, jsonBody(t, body))
		resp := httptest.NewRecorder()
		routes.ServeHTTP(resp, req)
		assert.Equal(t, resp.Code, http.StatusCreated, resp.Body.String())

		credential, err := data.GetCredential(s.db, data.ByAccountID(account.ID))
		assert.NilError(t, err)
		assert.NilError(t, bcrypt.CompareHashAndPassword(credential.PasswordHash, []byte("newpass1")))

		// the session that made the request is gone
		_, err = data.GetSession(s.db, data.ByToken(cookie))
		assert.ErrorContains(t, err, "not found")

		// the old password no longer signs in, the new one does
		loginBody := api.LoginRequest{Username: "jane@example.com", Password: "oldpass1"}
		req = jsonRequest(http.MethodPost, "/api/login", "", jsonBody(t, loginBody))
		resp = httptest.NewRecorder()
		routes.ServeHTTP(resp, req)
		assert.Equal(t, resp.Code, http.StatusUnauthorized, resp.Body.String())

		login(t, routes, "jane@example.com", "newpass1")
	})

	t.Run("wrong current password", func(t *testing.T) {
		createTestAccount(t, s.db, "todd@example.com", "oldpass1")
		cookie := login(t, routes, "todd@example.com", "oldpass1")

		body := api.ChangePasswordRequest{
			CurrentPassword:    "wrongpass1",
			NewPassword:        "newpass1",
			ConfirmNewPassword: "newpass1",
		}
		req := jsonRequest(http.MethodPost, "/api/change_password", cookie, jsonBody(t, body))
		resp := httptest.NewRecorder()
		routes.ServeHTTP(resp, req)
		assert.Equal(t, resp.Code, http.StatusBadRequest, resp.Body.String())

		respBody := &api.Error{}
		err := json.Unmarshal(resp.Body.Bytes(), respBody)
		assert.NilError(t, err)
		assert.DeepEqual(t, respBody.FieldErrors, []api.FieldError{
			{FieldName: "current_password", Errors: []string{"invalid password"}},
		})

		// the password did not change and the session survives
		req = jsonRequest(http.MethodGet, "/api/info", cookie, nil)
		resp = httptest.NewRecorder()
		routes.ServeHTTP(resp, req)
		assert.Equal(t, resp.Code, http.StatusOK, resp.Body.String())
		login(t, routes, "todd@example.com", "oldpass1")
	})

	t.Run("confirmation must match", func(t *testing.T) {
		createTestAccount(t, s.db, "lydia@example.com", "oldpass1")
		cookie := login(t, routes, "lydia@example.com", "oldpass1")

		body := api.ChangePasswordRequest{
			CurrentPassword:    "oldpass1",
			NewPassword:        "newpass1",
			ConfirmNewPassword: "newpass2",
		}
		req := jsonRequest(http.MethodPost, "/api/change_password", cookie, jsonBody(t, body))
		resp := httptest.NewRecorder()
		routes.ServeHTTP(resp, req)
		assert.Equal(t, resp.Code, http.StatusBadRequest, resp.Body.String())

		respBody := &api.Error{}
		err := json.Unmarshal(resp.Body.Bytes(), respBody)
		assert.NilError(t, err)
		assert.DeepEqual(t, respBody.FieldErrors, []api.FieldError{
			{FieldName: "confirm_new_password", Errors: []string{"passwords do not match"}},
		})

		login(t, routes, "lydia@example.com", "oldpass1")
	})

	t.Run("new password must satisfy the policy", func(t *testing.T) {
		createTestAccount(t, s.db, "huell@example.com", "oldpass1")
		cookie := login(t, routes, "huell@example.com", "oldpass1")

		body := api.ChangePasswordRequest{
			CurrentPassword:    "oldpass1",
			NewPassword:        "nope",
			ConfirmNewPassword: "nope",
		}
		req := jsonRequest(http.MethodPost, "/api/change_password", cookie, jsonBody(t, body))
		resp := httptest.NewRecorder()
		routes.ServeHTTP(resp, req)
		assert.Equal(t, resp.Code, http.StatusBadRequest, resp.Body.String())

		respBody := &api.Error{}
		err := json.Unmarshal(resp.Body.Bytes(), respBody)
		assert.NilError(t, err)
		assert.Assert(t, len(respBody.FieldErrors) > 0)
		assert.Equal(t, respBody.FieldErrors[0].FieldName, "new_password")
	})

	t.Run("requires a session", func(t *testing.T) {
		body := api.ChangePasswordRequest{
			CurrentPassword:    "oldpass1",
			NewPassword:        "newpass1",
			ConfirmNewPassword: "newpass1",
		}
		req := jsonRequest(http.MethodPost, "/api/change_password", "", jsonBody(t, body))
		resp := httptest.NewRecorder()
		routes.ServeHTTP(resp, req)
		assert.Equal(t, resp.Code, http.StatusUnauthorized, resp.Body.String())
	})
}

func TestAPI_ChangePassword_FederatedAccount(t *testing.T) {
	s := setupServer(t)
	routes := s.GenerateRoutes()

	account := createTestFederatedAccount(t, s.db, "saul@example.com")

	// a federated account has a session from its provider login, not from a
	// password login
	session, err := data.CreateSession(s.db, account.ID, time.Now().Add(time.Hour))
	assert.NilError(t, err)

	body := api.ChangePasswordRequest{
		CurrentPassword:    "anything1",
		NewPassword:        "newpass1",
		ConfirmNewPassword: "newpass1",
	}
	req := jsonRequest(http.MethodPost, "/api/change_password", session.Token, jsonBody(t, body))
	resp := httptest.NewRecorder()
	routes.ServeHTTP(resp, req)
	assert.Equal(t, resp.Code, http.StatusForbidden, resp.Body.String())

	respBody := &api.Error{}
	err = json.Unmarshal(resp.Body.Bytes(), respBody)
	assert.NilError(t, err)
	assert.Assert(t, respBody.Message != "")
}
