package sms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTermiiGateway_Send(t *testing.T) {
	var got termiiSendRequest
	var auth, path string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":"ok","message_id":"9122821270554876574","message":"Successfully Sent","balance":9,"user":"CampusEdge"}`))
	}))
	defer ts.Close()

	g := NewTermiiGateway("key-1", "EDGEINC", ts.URL, false, nil)
	require.True(t, g.Configured())

	delivery, err := g.Send(context.Background(), "+2348000000000", "hello")
	require.NoError(t, err)

	assert.Equal(t, "/api/sms/send", path)
	assert.Equal(t, "key-1", auth)
	assert.Equal(t, termiiSendRequest{To: "+2348000000000", From: "EDGEINC", SMS: "hello", Type: "plain"}, got)
	assert.True(t, delivery.OK)
	assert.Equal(t, "Successfully Sent", delivery.Message)
	assert.Contains(t, string(delivery.Raw), "message_id")
}

func TestTermiiGateway_SendGatewayError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid api key"}`))
	}))
	defer ts.Close()

	g := NewTermiiGateway("bad", "EDGEINC", ts.URL, false, nil)
	_, err := g.Send(context.Background(), "+2348000000000", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=401")
}

func TestTermiiGateway_NotConfigured(t *testing.T) {
	g := NewTermiiGateway("", "EDGEINC", "http://127.0.0.1:1", false, nil)
	assert.False(t, g.Configured())

	delivery, err := g.Send(context.Background(), "+2348000000000", "hello")
	require.NoError(t, err)
	assert.False(t, delivery.OK)
	assert.Equal(t, "TERMII not configured", delivery.Message)
}

func TestTermiiGateway_MockMode(t *testing.T) {
	g := NewTermiiGateway("", "EDGEINC", "http://127.0.0.1:1", true, nil)
	assert.True(t, g.Configured())

	delivery, err := g.Send(context.Background(), "+2348000000000", "hello")
	require.NoError(t, err)
	assert.True(t, delivery.OK)
	assert.True(t, json.Valid(delivery.Raw))
}
