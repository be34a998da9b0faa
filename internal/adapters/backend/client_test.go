package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestDoForwardsCredentialsAndBody(t *testing.T) {
	var gotCookie, gotQuery, gotMethod string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.RawQuery
		if c, err := r.Cookie("JSESSIONID"); err == nil {
			gotCookie = c.Value
		}
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", time.Second)
	ctx := WithCredentials(context.Background(), Credentials{{Name: "JSESSIONID", Value: "abc"}})

	resp, err := client.Do(ctx, Request{
		Method: http.MethodPut,
		Path:   "/withdrawals/7/reject",
		Query:  url.Values{"page": {"0"}},
		Body:   map[string]string{"rejectionReason": "incomplete"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotMethod != http.MethodPut || gotQuery != "page=0" {
		t.Fatalf("unexpected request %s ?%s", gotMethod, gotQuery)
	}
	if gotCookie != "abc" {
		t.Fatalf("expected credential cookie to be forwarded, got %q", gotCookie)
	}
	if gotBody["rejectionReason"] != "incomplete" {
		t.Fatalf("unexpected body %v", gotBody)
	}

	var out struct {
		ID int `json:"id"`
	}
	if err := resp.Decode(&out); err != nil || out.ID != 7 {
		t.Fatalf("expected id 7, got %d (%v)", out.ID, err)
	}
}

func TestDoMapsStatusToSentinel(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusInternalServerError, ErrServer},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"message":"nope"}`))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, time.Second).Do(context.Background(), Request{Method: http.MethodGet, Path: "/clients"})
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if Message(err) != "nope" {
				t.Fatalf("expected backend message, got %q", Message(err))
			}
		})
	}
}

func TestDoUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	_, err := NewClient(addr, time.Second).Do(context.Background(), Request{Method: http.MethodGet, Path: "/cycles"})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if Message(err) != "" {
		t.Fatalf("transport errors carry no backend message")
	}
}

func TestCredentialsFromCookies(t *testing.T) {
	creds := CredentialsFromCookies([]*http.Cookie{
		{Name: "JSESSIONID", Value: "abc"},
		{Name: "expired", Value: "x", MaxAge: -1},
		{Name: "empty"},
	})
	if len(creds) != 1 || creds[0].Name != "JSESSIONID" {
		t.Fatalf("unexpected credentials %+v", creds)
	}
}
