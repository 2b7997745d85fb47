package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

// LoadFixture loads test data from a fixture file.
// The path is relative to the test package directory.
func LoadFixture(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load fixture from %s: %v", path, err)
	}

	return data
}

// LoadFixtureJSON loads JSON test data from a fixture file and unmarshals it.
// The path is relative to the test package directory.
func LoadFixtureJSON(t *testing.T, path string, dest any) {
	t.Helper()

	data := LoadFixture(t, path)
	if err := json.Unmarshal(data, dest); err != nil {
		t.Fatalf("failed to unmarshal JSON fixture from %s: %v", path, err)
	}
}

// FixturePath constructs a path to a fixture file relative to the testdata
// directory.
func FixturePath(filename string) string {
	return filepath.Join("testdata", filename)
}

// CountingServer is an httptest server that counts requests per
// method+path+query, for asserting deduplication behavior.
type CountingServer struct {
	*httptest.Server

	total int64
}

// NewCountingServer starts a server that responds via handler and counts
// every request. The server is closed automatically when the test ends.
func NewCountingServer(t *testing.T, handler http.HandlerFunc) *CountingServer {
	t.Helper()

	cs := &CountingServer{}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&cs.total, 1)
		handler(w, r)
	}))

	t.Cleanup(cs.Server.Close)

	return cs
}

// Requests returns the number of requests the server has received.
func (cs *CountingServer) Requests() int {
	return int(atomic.LoadInt64(&cs.total))
}

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("failed to encode JSON response: %v", err)
	}
}
