package web

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"publigo/database"
	"publigo/logger"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()
	t.Setenv("PUBLIGO_LOG_FOLDER", t.TempDir())
	logger.InitLogger(logging.ERROR)

	require.NoError(t, database.InitDB(filepath.Join(t.TempDir(), "test.db")))
	t.Cleanup(func() {
		_ = database.CloseDB()
	})

	engine, err := NewServer().initRouter()
	require.NoError(t, err)
	ts := httptest.NewServer(engine)
	t.Cleanup(ts.Close)
	return ts
}

// newClient returns a client with its own cookie jar, i.e. its own session.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func doJSON(t *testing.T, client *http.Client, method, url string, payload any) (int, string) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func signup(t *testing.T, client *http.Client, baseURL, login, mail, password string) int {
	t.Helper()
	status, body := doJSON(t, client, http.MethodPost, baseURL+"/utilisateurs", map[string]string{
		"login":         login,
		"mail":          mail,
		"plainPassword": password,
	})
	require.Equal(t, http.StatusCreated, status, body)

	var view struct {
		Id int `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &view))
	return view.Id
}

func login(t *testing.T, client *http.Client, baseURL, login, password string) {
	t.Helper()
	status, body := doJSON(t, client, http.MethodPost, baseURL+"/login", map[string]string{
		"login":    login,
		"password": password,
	})
	require.Equal(t, http.StatusOK, status, body)
}

func TestEndToEnd(t *testing.T) {
	ts := setupServer(t)

	alice := newClient(t)
	aliceId := signup(t, alice, ts.URL, "alice123", "a@x.com", "Passw0rd")
	login(t, alice, ts.URL, "alice123", "Passw0rd")

	// Client-supplied author and date must be ignored.
	status, body := doJSON(t, alice, http.MethodPost, ts.URL+"/publications", map[string]any{
		"message":         "hello world",
		"auteur":          map[string]any{"id": 9999},
		"datePublication": "1999-01-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, status, body)

	var publication struct {
		Id              int    `json:"id"`
		Message         string `json:"message"`
		DatePublication string `json:"datePublication"`
		Auteur          struct {
			Id    int    `json:"id"`
			Login string `json:"login"`
		} `json:"auteur"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &publication))
	assert.Equal(t, "hello world", publication.Message)
	assert.Equal(t, aliceId, publication.Auteur.Id)
	assert.Equal(t, "alice123", publication.Auteur.Login)

	published, err := time.Parse(time.RFC3339, publication.DatePublication)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), published, time.Minute)

	// A different authenticated user may not delete it.
	bob := newClient(t)
	signup(t, bob, ts.URL, "bob456", "b@x.com", "Passw0rd")
	login(t, bob, ts.URL, "bob456", "Passw0rd")

	pubURL := ts.URL + "/publications/" + strconv.Itoa(publication.Id)
	status, _ = doJSON(t, bob, http.MethodDelete, pubURL, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// The author may.
	status, _ = doJSON(t, alice, http.MethodDelete, pubURL, nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, alice, http.MethodGet, pubURL, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSignupNeverSerializesPasswords(t *testing.T) {
	ts := setupServer(t)

	client := newClient(t)
	status, body := doJSON(t, client, http.MethodPost, ts.URL+"/utilisateurs", map[string]string{
		"login":         "alice123",
		"mail":          "a@x.com",
		"plainPassword": "Passw0rd",
	})
	require.Equal(t, http.StatusCreated, status, body)
	assert.NotContains(t, strings.ToLower(body), "password")
	assert.Contains(t, body, "ROLE_USER")

	login(t, client, ts.URL, "alice123", "Passw0rd")

	for _, url := range []string{ts.URL + "/utilisateurs", ts.URL + "/publications"} {
		status, body := doJSON(t, client, http.MethodGet, url, nil)
		require.Equal(t, http.StatusOK, status)
		assert.NotContains(t, strings.ToLower(body), "password")
	}
}

func TestSignupValidationAndConflicts(t *testing.T) {
	ts := setupServer(t)
	client := newClient(t)

	// Field-level detail on validation failure.
	status, body := doJSON(t, client, http.MethodPost, ts.URL+"/utilisateurs", map[string]string{
		"login":         "ab",
		"mail":          "not-a-mail",
		"plainPassword": "short",
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, `"login"`)
	assert.Contains(t, body, `"mail"`)
	assert.Contains(t, body, `"plainPassword"`)

	// Complexity is checked beyond length.
	status, body = doJSON(t, client, http.MethodPost, ts.URL+"/utilisateurs", map[string]string{
		"login":         "alice123",
		"mail":          "a@x.com",
		"plainPassword": "alllowercase",
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, `"plainPassword"`)

	signup(t, client, ts.URL, "alice123", "a@x.com", "Passw0rd")

	// Duplicate login.
	status, _ = doJSON(t, client, http.MethodPost, ts.URL+"/utilisateurs", map[string]string{
		"login":         "alice123",
		"mail":          "other@x.com",
		"plainPassword": "Passw0rd",
	})
	assert.Equal(t, http.StatusConflict, status)

	// Duplicate mail.
	status, _ = doJSON(t, client, http.MethodPost, ts.URL+"/utilisateurs", map[string]string{
		"login":         "bob456",
		"mail":          "a@x.com",
		"plainPassword": "Passw0rd",
	})
	assert.Equal(t, http.StatusConflict, status)
}

func TestWritesRequireAuthentication(t *testing.T) {
	ts := setupServer(t)

	anonymous := newClient(t)
	status, _ := doJSON(t, anonymous, http.MethodPost, ts.URL+"/publications", map[string]string{
		"message": "hello world",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, anonymous, http.MethodDelete, ts.URL+"/publications/1", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doJSON(t, anonymous, http.MethodPatch, ts.URL+"/utilisateurs/1", map[string]string{
		"mail": "new@x.com",
	})
	assert.Equal(t, http.StatusUnauthorized, status)

	// Reads stay public.
	status, _ = doJSON(t, anonymous, http.MethodGet, ts.URL+"/publications", nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, anonymous, http.MethodGet, ts.URL+"/utilisateurs", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestProfileOwnership(t *testing.T) {
	ts := setupServer(t)

	alice := newClient(t)
	aliceId := signup(t, alice, ts.URL, "alice123", "a@x.com", "Passw0rd")
	login(t, alice, ts.URL, "alice123", "Passw0rd")

	bob := newClient(t)
	signup(t, bob, ts.URL, "bob456", "b@x.com", "Passw0rd")
	login(t, bob, ts.URL, "bob456", "Passw0rd")

	aliceURL := ts.URL + "/utilisateurs/" + strconv.Itoa(aliceId)

	// Bob may neither patch nor delete Alice.
	status, _ := doJSON(t, bob, http.MethodPatch, aliceURL, map[string]string{"mail": "hijack@x.com"})
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = doJSON(t, bob, http.MethodDelete, aliceURL, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// Alice patches her own mail and can then log in with a new password.
	status, body := doJSON(t, alice, http.MethodPatch, aliceURL, map[string]string{
		"mail":          "new@x.com",
		"plainPassword": "NewPassw0rd",
	})
	require.Equal(t, http.StatusOK, status, body)
	assert.Contains(t, body, "new@x.com")

	relogged := newClient(t)
	login(t, relogged, ts.URL, "alice123", "NewPassw0rd")

	// Deleting her account removes her publications.
	status, _ = doJSON(t, relogged, http.MethodPost, ts.URL+"/publications", map[string]string{
		"message": "soon gone",
	})
	require.Equal(t, http.StatusCreated, status)

	status, _ = doJSON(t, relogged, http.MethodDelete, aliceURL, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, newClient(t), http.MethodGet, aliceURL, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = doJSON(t, newClient(t), http.MethodGet, ts.URL+"/publications", nil)
	require.Equal(t, http.StatusOK, status)
	assert.NotContains(t, body, "soon gone")
}

func TestNestedPublicationListing(t *testing.T) {
	ts := setupServer(t)

	alice := newClient(t)
	aliceId := signup(t, alice, ts.URL, "alice123", "a@x.com", "Passw0rd")
	login(t, alice, ts.URL, "alice123", "Passw0rd")

	bob := newClient(t)
	signup(t, bob, ts.URL, "bob456", "b@x.com", "Passw0rd")
	login(t, bob, ts.URL, "bob456", "Passw0rd")

	for _, message := range []string{"first post", "second post"} {
		status, _ := doJSON(t, alice, http.MethodPost, ts.URL+"/publications", map[string]string{"message": message})
		require.Equal(t, http.StatusCreated, status)
	}
	status, _ := doJSON(t, bob, http.MethodPost, ts.URL+"/publications", map[string]string{"message": "bob's post"})
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, newClient(t), http.MethodGet,
		ts.URL+"/utilisateur/"+strconv.Itoa(aliceId)+"/publications", nil)
	require.Equal(t, http.StatusOK, status)

	var views []struct {
		Message string `json:"message"`
		Auteur  struct {
			Login string `json:"login"`
		} `json:"auteur"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &views))
	require.Len(t, views, 2)
	for _, view := range views {
		assert.Equal(t, "alice123", view.Auteur.Login)
	}

	status, _ = doJSON(t, newClient(t), http.MethodGet, ts.URL+"/utilisateur/9999/publications", nil)
	assert.Equal(t, http.StatusNotFound, status)
}
