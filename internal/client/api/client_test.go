package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calendarapp/calendar-service/internal/client/storage"
)

func TestClient_AttachesStoredToken(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get(TokenHeader))
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "eventos": []any{}})
	}))
	defer srv.Close()

	store := storage.NewMemoryStore()
	client := New(srv.URL+"/api", store)

	_, err := client.ListEvents(context.Background())
	require.NoError(t, err)

	require.NoError(t, store.Save(storage.Credentials{Token: "abc", IssuedAt: time.Now()}))
	_, err = client.ListEvents(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"", "abc"}, seen)
}

func TestClient_LoginDecodesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "test@test.com", body["email"])
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "uid": "u-1", "name": "Test User", "token": "tok"})
	}))
	defer srv.Close()

	out, err := New(srv.URL+"/api/", nil).Login(context.Background(), "test@test.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, AuthResponse{OK: true, UID: "u-1", Name: "Test User", Token: "tok"}, out)
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":     false,
			"msg":    "Datos invalidos",
			"errors": map[string]any{"name": map[string]string{"msg": "El nombre es obligatorio"}},
		})
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).Register(context.Background(), "", "a@b.com", "password123")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Datos invalidos", apiErr.Message)
	assert.Equal(t, "El nombre es obligatorio", apiErr.Fields["name"])
	assert.False(t, IsUnauthorized(err))
}

func TestClient_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"ok":false,"msg":"Token no valido"}`))
	}))
	defer srv.Close()

	store := storage.NewMemoryStore()
	require.NoError(t, store.Save(storage.Credentials{Token: "stale", IssuedAt: time.Now()}))

	_, err := New(srv.URL, store).ListEvents(context.Background())
	assert.True(t, IsUnauthorized(err))

	_, ok := store.Load()
	assert.True(t, ok)
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url, nil).Renew(context.Background())
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr), err)
	assert.False(t, IsUnauthorized(err))
}

func TestClient_DeleteEventEscapesID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/events/a%2Fb", r.URL.RawPath)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL, nil).DeleteEvent(context.Background(), "a/b"))
}
