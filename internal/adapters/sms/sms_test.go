package sms

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neargo/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSender_Send_UnconfiguredIsSkip(t *testing.T) {
	s := New(config.SMSConfig{}, testLogger())
	err := s.Send(context.Background(), "+37120000000", "hello")
	assert.NoError(t, err)
}

func TestSender_Send(t *testing.T) {
	var gotPath, gotTo string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, r.ParseForm())
		gotTo = r.PostFormValue("To")
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "AC123", user)
		assert.Equal(t, "token", pass)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	s := New(config.SMSConfig{AccountSID: "AC123", AuthToken: "token", From: "+37167000000"}, testLogger())
	s.baseURL = srv.URL
	s.client = srv.Client()

	err := s.Send(context.Background(), "+37120000000", "new hold")
	require.NoError(t, err)
	assert.Equal(t, "/Accounts/AC123/Messages.json", gotPath)
	assert.Equal(t, "+37120000000", gotTo)
}

func TestSender_Send_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := New(config.SMSConfig{AccountSID: "AC123", AuthToken: "bad", From: "+37167000000"}, testLogger())
	s.baseURL = srv.URL
	s.client = srv.Client()

	assert.Error(t, s.Send(context.Background(), "+37120000000", "x"))
}
