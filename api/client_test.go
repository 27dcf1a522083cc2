package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"zavio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"user":{"id":"u1","name":"Martin"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client(), TokenFunc(func() string { return "tok-123" }))
	_, err := c.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClientSkipsAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":["football"]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client(), TokenFunc(func() string { return "" }))
	_, err := c.Sports(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClientExtractsServerErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"message":"Insufficient credits: need 15.00, have 10.00"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client(), nil)
	_, _, err := c.CreateBooking(context.Background(), models.BookingRequest{FieldID: 1})
	require.Error(t, err)
	assert.Equal(t, "Insufficient credits: need 15.00, have 10.00", err.Error())
}

func TestClientFallsBackToStatusMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>gateway exploded</html>"))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client(), nil)
	_, err := c.Fields(context.Background())
	require.Error(t, err)
	assert.Equal(t, "HTTP 500", err.Error())
	assert.True(t, IsServerError(err))
}

func TestClientClassifiesUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid or expired token"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client(), nil)
	_, err := c.Profile(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.False(t, IsConnectivity(err))
}

func TestClientReportsConnectivityFailureWithURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // nothing listens anymore

	c := New(url, nil, nil)
	_, err := c.Fields(context.Background())
	require.Error(t, err)
	assert.True(t, IsConnectivity(err))
	assert.Contains(t, err.Error(), "could not reach server at")
	assert.Contains(t, err.Error(), url)
}

func TestAvailabilitySendsQueryParameters(t *testing.T) {
	var gotPath, gotDate, gotDuration string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotDate = r.URL.Query().Get("date")
		gotDuration = r.URL.Query().Get("duration")
		w.Write([]byte(`{"availableSlots":[{"startTime":"08:00","endTime":"09:00","price":20}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client(), nil)
	slots, err := c.Availability(context.Background(), 7, "2026-09-01", 60)
	require.NoError(t, err)
	assert.Equal(t, "/api/mobile/fields/7/availability", gotPath)
	assert.Equal(t, "2026-09-01", gotDate)
	assert.Equal(t, "60", gotDuration)
	require.Len(t, slots, 1)
	assert.Equal(t, "08:00", slots[0].StartTime)
}

func TestLoginDecodesSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/users/auth/login", r.URL.Path)
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "application/json"))
		w.Write([]byte(`{"token":"tok","user":{"id":"u1","name":"Martin","credits":150}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client(), nil)
	session, err := c.Login(context.Background(), LoginRequest{Email: "a@b.c", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok", session.Token)
	require.NotNil(t, session.User)
	assert.Equal(t, 150.0, session.User.Credits)
}
