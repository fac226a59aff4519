package content

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
)

func TestHTTPClient_FetchMaze(t *testing.T) {
	var gotPath, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		io.WriteString(w, `{"content":[{"width":3,"height":3,"startPosition":{"row":1,"col":1},
			"grid":[[1,1,1],[1,0,3],[1,1,1]],"items":[{"row":1,"col":1,"type":"KEY"}]}]}`)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL+"/", time.Second, "secret")
	env, err := c.FetchMaze(context.Background(), 4, "second")
	if err != nil {
		t.Fatalf("FetchMaze: %v", err)
	}
	if gotPath != "/games/4/levels/SECOND" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("auth = %q", gotAuth)
	}
	m, err := env.First()
	if err != nil {
		t.Fatalf("First: %v", err)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	if m.Items[0].Type != "KEY" {
		t.Errorf("item type = %q", m.Items[0].Type)
	}
}

func TestHTTPClient_FetchMazeErrors(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"not found", http.StatusNotFound, "", ErrNotFound},
		{"garbage", http.StatusOK, "{nope", ErrMalformed},
		{"server error", http.StatusInternalServerError, "boom", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				io.WriteString(w, tc.body)
			}))
			defer srv.Close()

			_, err := NewHTTPClient(srv.URL, time.Second, "").FetchMaze(context.Background(), 1, "FIRST")
			if err == nil {
				t.Fatal("FetchMaze = nil error")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, want %v", err, tc.wantErr)
			}
			if tc.name == "server error" && !strings.Contains(err.Error(), "boom") {
				t.Errorf("err = %v, want body in message", err)
			}
		})
	}
}

func TestHTTPClient_SubmitScore(t *testing.T) {
	var got scoreRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/scores" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	if err := NewHTTPClient(srv.URL, time.Second, "").SubmitScore(context.Background(), 2, 11, 3); err != nil {
		t.Fatalf("SubmitScore: %v", err)
	}
	if got != (scoreRequest{GameID: 2, PlayerID: 11, Score: 3}) {
		t.Errorf("body = %+v", got)
	}
}

func TestHTTPClient_SubmitScoreFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	if err := NewHTTPClient(srv.URL, time.Second, "").SubmitScore(context.Background(), 2, 11, 3); err == nil {
		t.Error("SubmitScore = nil, want error")
	}
}

func TestStaticIdentity(t *testing.T) {
	if _, ok := StaticIdentity(0).PlayerID(context.Background()); ok {
		t.Error("zero identity should be missing")
	}
	if id, ok := StaticIdentity(9).PlayerID(context.Background()); !ok || id != 9 {
		t.Errorf("PlayerID = %d, %v", id, ok)
	}
}
