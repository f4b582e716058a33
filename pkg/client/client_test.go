package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoDecodesData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "{ products { name } }", req["query"])
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"products":[{"name":"keyboard"}]}}`))
	}))
	defer srv.Close()

	var out struct {
		Products []struct {
			Name string `json:"name"`
		} `json:"products"`
	}
	err := New(srv.URL).Do(context.Background(), "{ products { name } }", nil, &out)

	require.NoError(t, err)
	require.Len(t, out.Products, 1)
	assert.Equal(t, "keyboard", out.Products[0].Name)
}

func TestDoFoldsGraphQLErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors":[{"message":"first"},{"message":"second"}]}`))
	}))
	defer srv.Close()

	err := New(srv.URL).Do(context.Background(), "{ x }", nil, nil)

	require.Error(t, err)
	assert.Equal(t, "first | second", err.Error())
}

func TestDoReportsHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := New(srv.URL).Do(context.Background(), "{ x }", nil, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
	assert.Contains(t, err.Error(), "boom")
}

func TestDoTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server can detect the client disconnect
		// and cancel the request context; otherwise srv.Close deadlocks.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer srv.Close()

	err := New(srv.URL).WithTimeout(50 * time.Millisecond).Do(context.Background(), "{ x }", nil, nil)

	assert.ErrorIs(t, err, ErrTimeout)
}
