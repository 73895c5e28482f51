package utils

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeElasticsearch(t *testing.T, onIndex func(r *http.Request, body map[string]interface{}) int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Path == "/" {
			_, _ = io.WriteString(w, `{"version":{"number":"8.17.1"},"tagline":"You Know, for Search"}`)
			return
		}

		var body map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		status := onIndex(r, body)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, `{"result":"created"}`)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestElasticsearch_IndexDocument(t *testing.T) {
	var gotPath, gotMethod string
	var gotBody map[string]interface{}
	srv := newFakeElasticsearch(t, func(r *http.Request, body map[string]interface{}) int {
		gotPath, gotMethod, gotBody = r.URL.Path, r.Method, body
		return http.StatusCreated
	})

	client, err := NewElasticsearchClient(srv.URL)
	require.NoError(t, err)

	err = client.IndexDocument(context.Background(), "applications", "abc", map[string]string{"role": "kid"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/applications/_doc/abc", gotPath)
	assert.Equal(t, "kid", gotBody["role"])
}

func TestElasticsearch_IndexDocumentError(t *testing.T) {
	srv := newFakeElasticsearch(t, func(*http.Request, map[string]interface{}) int {
		return http.StatusBadRequest
	})

	client, err := NewElasticsearchClient(srv.URL)
	require.NoError(t, err)

	err = client.IndexDocument(context.Background(), "applications", "abc", map[string]string{})
	assert.Error(t, err)
}

func TestElasticsearch_EnsureIndex(t *testing.T) {
	tests := []struct {
		name        string
		headStatus  int
		wantCreated bool
		wantErr     bool
	}{
		{name: "missing index is created", headStatus: http.StatusNotFound, wantCreated: true},
		{name: "existing index is kept", headStatus: http.StatusOK},
		{name: "cluster error", headStatus: http.StatusInternalServerError, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var created bool
			var mapping map[string]interface{}
			srv := newFakeElasticsearch(t, func(r *http.Request, body map[string]interface{}) int {
				assert.Equal(t, "/applications", r.URL.Path)
				if r.Method == http.MethodHead {
					return tt.headStatus
				}
				created, mapping = r.Method == http.MethodPut, body
				return http.StatusOK
			})

			client, err := NewElasticsearchClient(srv.URL)
			require.NoError(t, err)

			err = client.EnsureIndex(context.Background(), "applications")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCreated, created)
			if tt.wantCreated {
				assert.Contains(t, mapping, "mappings")
			}
		})
	}
}
