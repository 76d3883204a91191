package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gotest.tools/v3/assert"

	"github.com/shareclass/accounts/internal/logging"
	"github.com/shareclass/accounts/internal/server/data"
	"github.com/shareclass/accounts/internal/server/models"
)

func setupServer(t *testing.T) *Server {
	t.Helper()
	logging.PatchLogger(t, zerolog.NewTestWriter(t))

	driver, err := data.NewSQLiteDriver("file::memory:")
	assert.NilError(t, err)

	db, err := data.NewDB(driver)
	assert.NilError(t, err)

	return &Server{
		options: Options{
			SessionDuration: 24 * time.Hour,
			API:             APIOptions{RequestTimeout: time.Minute},
		},
		db:              db,
		metricsRegistry: prometheus.NewRegistry(),
	}
}

// createTestAccount writes an account with a bcrypt credential, the way
// Signup would, without going through the API.
func createTestAccount(t *testing.T, db *gorm.DB, username, password string) *models.Account {
	t.Helper()

	account := &models.Account{Username: username}
	err := data.CreateAccount(db, account)
	assert.NilError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	assert.NilError(t, err)

	err = data.CreateCredential(db, &models.Credential{
		AccountID:    account.ID,
		PasswordHash: hash,
	})
	assert.NilError(t, err)

	return account
}

// createTestFederatedAccount writes an account with a linked identity and no
// credential, as the identity provider callback would.
func createTestFederatedAccount(t *testing.T, db *gorm.DB, username string) *models.Account {
	t.Helper()

	account := &models.Account{Username: username}
	err := data.CreateAccount(db, account)
	assert.NilError(t, err)

	err = data.CreateLinkedIdentity(db, &models.LinkedIdentity{
		AccountID:   account.ID,
		Provider:    "google",
		ProviderUID: "sub-" + username,
		Email:       username,
	})
	assert.NilError(t, err)

	account.Federated = true
	return account
}

// login signs the account in through the API and returns the value of the
// auth cookie.
func login(t *testing.T, routes http.Handler, username, password string) string {
	t.Helper()

	body := jsonBody(t, map[string]string{"username": username, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/api/login", body)
	req.Header.Set("Content-Type", "application/json")

	resp := httptest.NewRecorder()
	routes.ServeHTTP(resp, req)
	assert.Equal(t, resp.Code, http.StatusCreated, resp.Body.String())

	cookie := authCookie(resp)
	assert.Assert(t, cookie != "", "expected an auth cookie on the login response")
	return cookie
}

func authCookie(resp *httptest.ResponseRecorder) string {
	for _, cookie := range resp.Result().Cookies() {
		if cookie.Name == CookieAuthorizationName {
			return cookie.Value
		}
	}
	return ""
}

func jsonBody(t *testing.T, body any) io.Reader {
	t.Helper()
	raw, err := json.Marshal(body)
	assert.NilError(t, err)
	return strings.NewReader(string(raw))
}

func jsonRequest(method, target, cookie string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: CookieAuthorizationName, Value: cookie})
	}
	return req
}
