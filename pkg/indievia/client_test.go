package indievia

import (
	"context"
	"encoding/json"
	"errors"
	"go/parser"
	"go/token"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeData(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"data": data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func TestClient_QuerySendsFiltersAndToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/professionals", r.URL.Path)
		assert.Equal(t, "Berlin", r.URL.Query().Get("city"))
		assert.False(t, r.URL.Query().Has("q"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeData(w, http.StatusOK, []Professional{{FullName: "Ink Lab"}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithToken("tok"))
	var out []Professional
	require.NoError(t, c.Query(context.Background(), "professionals", Filters{"city": "Berlin", "q": ""}, &out))
	require.Len(t, out, 1)
	assert.Equal(t, "Ink Lab", out[0].FullName)
}

func TestClient_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"файл больше 2MB","field":"gallery","file":"a.png"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL).Invoke(context.Background(), http.MethodPost, "professional/gallery", nil, nil)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "файл больше 2MB", apiErr.Message)
	assert.Equal(t, "gallery", apiErr.Field)
	assert.Equal(t, "a.png", apiErr.File)
}

func TestClient_NonJSONFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	err := NewClient(srv.URL).Query(context.Background(), "professionals", nil, nil)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := NewClient(url).Query(context.Background(), "professionals", nil, nil)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, 0, apiErr.Status)
	assert.Error(t, errors.Unwrap(apiErr))
}

func TestClient_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	var out map[string]interface{}
	require.NoError(t, NewClient(srv.URL).Invoke(context.Background(), http.MethodDelete, "notifications/x", nil, &out))
	assert.Nil(t, out)
}

// Пакет импортируется из других модулей, поэтому не может зависеть от internal/.
func TestPackageImportsNoInternal(t *testing.T) {
	files, err := filepath.Glob("*.go")
	require.NoError(t, err)

	fset := token.NewFileSet()
	for _, name := range files {
		if strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, name, nil, parser.ImportsOnly)
		require.NoError(t, err)
		for _, imp := range f.Imports {
			path, err := strconv.Unquote(imp.Path.Value)
			require.NoError(t, err)
			assert.NotContains(t, path, "/internal/", "%s импортирует %s", name, path)
		}
	}
}
