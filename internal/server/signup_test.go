package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/shareclass/accounts/api"
	"github.com/shareclass/accounts/internal/server/data"
	"github.com/shareclass/accounts/internal/server/models"
)

func TestAPI_Signup(t *testing.T) {
	s := setupServer(t)
	routes := s.GenerateRoutes()

	createTestAccount(t, s.db, "taken@example.com", "password1")

	type testCase struct {
		name     string
		body     any
		cookie   string
		expected func(t *testing.T, resp *httptest.ResponseRecorder)
	}

	run := func(t *testing.T, tc testCase) {
		req := jsonRequest(http.MethodPost, "/api/register", tc.cookie, jsonBody(t, tc.body))
		resp := httptest.NewRecorder()
		routes.ServeHTTP(resp, req)

		tc.expected(t, resp)
	}

	testCases := []testCase{
		{
			name: "success creates account, profile, and session",
			body: api.SignupRequest{
				Username:        "walter@example.com",
				Password:        "password1",
				ConfirmPassword: "password1",
			},
			expected: func(t *testing.T, resp *httptest.ResponseRecorder) {
				assert.Equal(t, resp.Code, http.StatusCreated, resp.Body.String())

				respBody := &api.UserResponse{}
				err := json.Unmarshal(resp.Body.Bytes(), respBody)
				assert.NilError(t, err)
				assert.Equal(t, respBody.Username, "walter@example.com")
				assert.Equal(t, respBody.Nickname, "walter")

				cookie := authCookie(resp)
				assert.Assert(t, cookie != "")

				session, err := data.GetSession(s.db, data.ByToken(cookie))
				assert.NilError(t, err)

				account, err := data.GetAccount(s.db, data.ByUsername("walter@example.com"))
				assert.NilError(t, err)
				assert.Equal(t, session.AccountID, account.ID)
				assert.Equal(t, account.Profile.Nickname, "walter")

				_, err = data.GetCredential(s.db, data.ByAccountID(account.ID))
				assert.NilError(t, err)
			},
		},
		{
			name: "password confirmation must match",
			body: api.SignupRequest{
				Username:        "mismatch@example.com",
				Password:        "password1",
				ConfirmPassword: "password2",
			},
			expected: func(t *testing.T, resp *httptest.ResponseRecorder) {
				assert.Equal(t, resp.Code, http.StatusBadRequest, resp.Body.String())

				respBody := &api.Error{}
				err := json.Unmarshal(resp.Body.Bytes(), respBody)
				assert.NilError(t, err)
				assert.DeepEqual(t, respBody.FieldErrors, []api.FieldError{
					{FieldName: "confirm_password", Errors: []string{"passwords do not match"}},
				})
			},
		},
		{
			name: "username must be an email address",
			body: api.SignupRequest{
				Username:        "not-an-email",
				Password:        "password1",
				ConfirmPassword: "password1",
			},
			expected: func(t *testing.T, resp *httptest.ResponseRecorder) {
				assert.Equal(t, resp.Code, http.StatusBadRequest, resp.Body.String())

				respBody := &api.Error{}
				err := json.Unmarshal(resp.Body.Bytes(), respBody)
				assert.NilError(t, err)
				assert.Assert(t, len(respBody.FieldErrors) > 0)
				assert.Equal(t, respBody.FieldErrors[0].FieldName, "username")
			},
		},
		{
			name: "password must satisfy the policy",
			body: api.SignupRequest{
				Username:        "short@example.com",
				Password:        "pw1",
				ConfirmPassword: "pw1",
			},
			expected: func(t *testing.T, resp *httptest.ResponseRecorder) {
				assert.Equal(t, resp.Code, http.StatusBadRequest, resp.Body.String())

				respBody := &api.Error{}
				err := json.Unmarshal(resp.Body.Bytes(), respBody)
				assert.NilError(t, err)
				assert.Assert(t, len(respBody.FieldErrors) > 0)
				assert.Equal(t, respBody.FieldErrors[0].FieldName, "password")
			},
		},
		{
			name: "duplicate username conflicts",
			body: api.SignupRequest{
				Username:        "taken@example.com",
				Password:        "password1",
				ConfirmPassword: "password1",
			},
			expected: func(t *testing.T, resp *httptest.ResponseRecorder) {
				assert.Equal(t, resp.Code, http.StatusConflict, resp.Body.String())
			},
		},
		{
			name: "signed in callers can not register",
			body: api.SignupRequest{
				Username:        "second@example.com",
				Password:        "password1",
				ConfirmPassword: "password1",
			},
			cookie: login(t, routes, "taken@example.com", "password1"),
			expected: func(t *testing.T, resp *httptest.ResponseRecorder) {
				assert.Equal(t, resp.Code, http.StatusBadRequest, resp.Body.String())

				_, err := data.GetAccount(s.db, data.ByUsername("second@example.com"))
				assert.ErrorContains(t, err, "not found")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			run(t, tc)
		})
	}
}

func TestAPI_Signup_PasswordPolicy(t *testing.T) {
	s := setupServer(t)
	routes := s.GenerateRoutes()

	register := func(t *testing.T, username, password string) *httptest.ResponseRecorder {
		body := api.SignupRequest{
			Username:        username,
			Password:        password,
			ConfirmPassword: password,
		}
		req := jsonRequest(http.MethodPost, "/api/register", "", jsonBody(t, body))
		resp := httptest.NewRecorder()
		routes.ServeHTTP(resp, req)
		return resp
	}

	t.Run("symbols are rejected", func(t *testing.T) {
		resp := register(t, "symbols@example.com", "pass-word1")
		assert.Equal(t, resp.Code, http.StatusBadRequest, resp.Body.String())
	})
	t.Run("21 characters is too long", func(t *testing.T) {
		resp := register(t, "toolong@example.com", "a12345678901234567890")
		assert.Equal(t, resp.Code, http.StatusBadRequest, resp.Body.String())
	})
	t.Run("6 characters is accepted", func(t *testing.T) {
		resp := register(t, "sixchars@example.com", "abc123")
		assert.Equal(t, resp.Code, http.StatusCreated, resp.Body.String())
	})
	t.Run("20 characters is accepted", func(t *testing.T) {
		resp := register(t, "twenty@example.com", "a1234567890123456789")
		assert.Equal(t, resp.Code, http.StatusCreated, resp.Body.String())
	})
}

func TestAPI_Signup_ProfileContactEmail(t *testing.T) {
	s := setupServer(t)
	routes := s.GenerateRoutes()

	body := api.SignupRequest{
		Username:        "jesse.pinkman@example.com",
		Password:        "password1",
		ConfirmPassword: "password1",
	}
	req := jsonRequest(http.MethodPost, "/api/register", "", jsonBody(t, body))
	resp := httptest.NewRecorder()
	routes.ServeHTTP(resp, req)
	assert.Equal(t, resp.Code, http.StatusCreated, resp.Body.String())

	account, err := data.GetAccount(s.db, data.ByUsername("jesse.pinkman@example.com"))
	assert.NilError(t, err)
	assert.DeepEqual(t, account.Profile, &models.Profile{
		Model:        account.Profile.Model,
		AccountID:    account.ID,
		Nickname:     "jesse.pinkman",
		ContactEmail: "jesse.pinkman@example.com",
	})
}
