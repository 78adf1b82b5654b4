package apns

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestKey generates a fresh P-256 key and returns its PEM plus the key.
func newTestKey(t *testing.T) ([]byte, *ecdsa.PrivateKey) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)
	return pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der}), key
}

func newTestTokenSource(t *testing.T) (*TokenSource, *ecdsa.PrivateKey) {
	t.Helper()
	pemBytes, key := newTestKey(t)
	ts, err := NewTokenSource("KEY123", "TEAM456", pemBytes)
	require.NoError(t, err)
	return ts, key
}

func TestTokenSource_SignsVerifiableES256(t *testing.T) {
	ts, key := newTestTokenSource(t)

	now := time.Unix(1767225600, 0)
	signed, err := ts.Token(now)
	require.NoError(t, err)

	parsed, err := jwt.Parse(signed, func(tok *jwt.Token) (interface{}, error) {
		return &key.PublicKey, nil
	}, jwt.WithValidMethods([]string{"ES256"}), jwt.WithoutClaimsValidation())
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	assert.Equal(t, "KEY123", parsed.Header["kid"])
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "TEAM456", claims["iss"])
	assert.EqualValues(t, now.Unix(), claims["iat"])
}

func TestNewTokenSource_BadPEM(t *testing.T) {
	_, err := NewTokenSource("k", "t", []byte("not a pem"))
	assert.Error(t, err)
}

func TestPush_SendsSignedRequest(t *testing.T) {
	ts, _ := newTestTokenSource(t)

	var gotPath, gotAuth, gotTopic, gotID string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("authorization")
		gotTopic = r.Header.Get("apns-topic")
		gotID = r.Header.Get("apns-id")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "com.example.doodles", ts)
	status, err := c.Push(context.Background(), "device-token-1", Notification{
		Title:   "New doodle",
		Body:    "Alex sent you a doodle",
		Payload: map[string]interface{}{"doodleId": "d1"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)

	assert.Equal(t, "/3/device/device-token-1", gotPath)
	assert.Regexp(t, `^bearer \S+\.\S+\.\S+$`, gotAuth)
	assert.Equal(t, "com.example.doodles", gotTopic)
	assert.NotEmpty(t, gotID)

	aps := gotBody["aps"].(map[string]interface{})
	alert := aps["alert"].(map[string]interface{})
	assert.Equal(t, "New doodle", alert["title"])
	assert.Equal(t, "Alex sent you a doodle", alert["body"])
	assert.Equal(t, "default", aps["sound"])
	assert.EqualValues(t, 1, aps["content-available"])
	assert.Equal(t, "d1", gotBody["doodleId"], "extra payload is merged at the top level")
}

func TestPush_GatewayStatusPassedThrough(t *testing.T) {
	ts, _ := newTestTokenSource(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusGone) // 410: token no longer valid
	}))
	defer srv.Close()

	status, err := NewClient(srv.URL, "b", ts).Push(context.Background(), "tok", Notification{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusGone, status)
}

func TestPush_TransportError(t *testing.T) {
	ts, _ := newTestTokenSource(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	srv.Close() // refuse connections

	status, err := NewClient(srv.URL, "b", ts).Push(context.Background(), "tok", Notification{})
	assert.Error(t, err)
	assert.Equal(t, 0, status)
}

func TestNewClient_DefaultsToSandbox(t *testing.T) {
	ts, _ := newTestTokenSource(t)
	c := NewClient("", "b", ts)
	assert.Equal(t, SandboxHost, c.host)
}
