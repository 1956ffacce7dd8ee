package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRagClientAsk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rag/" || r.Method != http.MethodPost {
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
		}
		var in ragRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode: %v", err)
		}
		if in.UserInput != "import duties on textiles?" {
			t.Errorf("user_input=%q", in.UserInput)
		}
		_ = json.NewEncoder(w).Encode(ragResponse{Response: "Duties vary by HS code."})
	}))
	defer srv.Close()

	c := NewRagClient(srv.URL, srv.Client())
	got, err := c.Ask(context.Background(), "import duties on textiles?")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if got != "Duties vary by HS code." {
		t.Fatalf("got=%q", got)
	}
}

func TestRagClientAskErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"bad status", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}},
		{"malformed body", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}},
		{"empty response field", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"response":""}`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()
			c := NewRagClient(srv.URL, srv.Client())
			if _, err := c.Ask(context.Background(), "q"); !errors.Is(err, ErrUpstream) {
				t.Fatalf("err=%v, want ErrUpstream", err)
			}
		})
	}
}
