package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// ReceivedRequest is one call the fake backend answered.
type ReceivedRequest struct {
	Headers map[string]string
	Query   map[string]string
	Body    any
}

type cannedResponse struct {
	status int
	body   any
}

// LedgerMock is a fake finance backend. Responses are keyed by method and
// path, and a path segment of "*" matches any value.
type LedgerMock struct {
	mu        sync.Mutex
	server    *httptest.Server
	received  map[string][]ReceivedRequest
	sequenced map[string]map[int]cannedResponse
	defaults  map[string]cannedResponse
}

func NewLedgerMock() *LedgerMock {
	return &LedgerMock{
		received:  map[string][]ReceivedRequest{},
		sequenced: map[string]map[int]cannedResponse{},
		defaults:  map[string]cannedResponse{},
	}
}

func (l *LedgerMock) Start() {
	l.server = httptest.NewServer(http.HandlerFunc(l.serve))
}

func (l *LedgerMock) Close() {
	if l.server != nil {
		l.server.Close()
	}
}

func (l *LedgerMock) GetUrl() string {
	return l.server.URL
}

func (l *LedgerMock) serve(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var body any
	_ = json.Unmarshal(raw, &body)

	req := ReceivedRequest{
		Headers: map[string]string{},
		Query:   map[string]string{},
		Body:    body,
	}
	for key, value := range r.Header {
		req.Headers[key] = value[0]
	}
	for key, value := range r.URL.Query() {
		req.Query[key] = value[0]
	}

	l.mu.Lock()
	exact := r.Method + r.URL.Path
	index := len(l.received[exact])
	l.received[exact] = append(l.received[exact], req)
	resp := l.responseFor(r.Method, r.URL.Path, index)
	l.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	payload, _ := json.Marshal(resp.body)
	_, _ = w.Write(payload)
}

// SetResponse answers every call to method and path with status and body.
func (l *LedgerMock) SetResponse(method, path string, status int, body any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.defaults[method+path] = cannedResponse{status: status, body: body}
}

// SetResponseAt answers only the index-th call (zero based) to method and path.
func (l *LedgerMock) SetResponseAt(index int, method, path string, status int, body any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := method + path
	if l.sequenced[key] == nil {
		l.sequenced[key] = map[int]cannedResponse{}
	}
	l.sequenced[key][index] = cannedResponse{status: status, body: body}
}

// Requests returns the calls received for method and an exact path.
func (l *LedgerMock) Requests(method, path string) []ReceivedRequest {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]ReceivedRequest(nil), l.received[method+path]...)
}

// RequestCount counts all received calls.
func (l *LedgerMock) RequestCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	total := 0
	for _, reqs := range l.received {
		total += len(reqs)
	}
	return total
}

// Reset forgets every response and request.
func (l *LedgerMock) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.received = map[string][]ReceivedRequest{}
	l.sequenced = map[string]map[int]cannedResponse{}
	l.defaults = map[string]cannedResponse{}
}

func (l *LedgerMock) responseFor(method, path string, index int) cannedResponse {
	if key := l.matchKey(l.sequencedKeys(), method, path); key != "" {
		if resp, ok := l.sequenced[key][index]; ok {
			return resp
		}
	}
	if key := l.matchKey(l.defaultKeys(), method, path); key != "" {
		return l.defaults[key]
	}
	return cannedResponse{status: http.StatusNotFound, body: map[string]any{"message": "no mock for " + method + " " + path}}
}

func (l *LedgerMock) sequencedKeys() []string {
	keys := make([]string, 0, len(l.sequenced))
	for key := range l.sequenced {
		keys = append(keys, key)
	}
	return keys
}

func (l *LedgerMock) defaultKeys() []string {
	keys := make([]string, 0, len(l.defaults))
	for key := range l.defaults {
		keys = append(keys, key)
	}
	return keys
}

func (l *LedgerMock) matchKey(keys []string, method, path string) string {
	exact := method + path
	for _, key := range keys {
		if key == exact {
			return key
		}
	}
	for _, key := range keys {
		if strings.HasPrefix(key, method+"/") && matchPath(strings.TrimPrefix(key, method), path) {
			return key
		}
	}
	return ""
}

func matchPath(pattern, path string) bool {
	patternParts := strings.Split(pattern, "/")
	pathParts := strings.Split(path, "/")
	if len(patternParts) != len(pathParts) {
		return false
	}
	for i := range patternParts {
		if patternParts[i] != "*" && patternParts[i] != pathParts[i] {
			return false
		}
	}
	return true
}
