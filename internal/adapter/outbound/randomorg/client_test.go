package randomorg_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/0xsj/overwatch-mastermind/internal/adapter/outbound/randomorg"
	"github.com/0xsj/overwatch-mastermind/internal/port/outbound/generator"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) generator.CodeGenerator {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return randomorg.NewClient(randomorg.Config{BaseURL: server.URL, Timeout: time.Second})
}

func TestClient_Generate(t *testing.T) {
	t.Run("parses plain integers", func(t *testing.T) {
		var gotQuery map[string]string
		gen := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/integers/" {
				t.Errorf("path = %v, want /integers/", r.URL.Path)
			}
			gotQuery = map[string]string{}
			for k := range r.URL.Query() {
				gotQuery[k] = r.URL.Query().Get(k)
			}
			fmt.Fprint(w, "3\n0\n7\n5\n")
		})

		numbers, err := gen.Generate(context.Background(), 4, 0, 7)

		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		want := []int{3, 0, 7, 5}
		if len(numbers) != len(want) {
			t.Fatalf("Generate() = %v, want %v", numbers, want)
		}
		for i := range want {
			if numbers[i] != want[i] {
				t.Errorf("numbers[%d] = %d, want %d", i, numbers[i], want[i])
			}
		}

		wantQuery := map[string]string{
			"num": "4", "min": "0", "max": "7", "col": "1",
			"base": "10", "format": "plain", "rnd": "new",
		}
		for k, v := range wantQuery {
			if gotQuery[k] != v {
				t.Errorf("query %s = %q, want %q", k, gotQuery[k], v)
			}
		}
	})

	tests := []struct {
		name    string
		status  int
		body    string
		qty     int
		wantErr bool
	}{
		{"out of range", http.StatusOK, "1\n9\n", 2, true},
		{"negative", http.StatusOK, "-1\n2\n", 2, true},
		{"not a number", http.StatusOK, "1\nx\n", 2, true},
		{"short response", http.StatusOK, "1\n", 2, true},
		{"server error", http.StatusServiceUnavailable, "Error: quota exceeded", 2, true},
		{"trailing whitespace", http.StatusOK, "1 \n2\n\n", 2, false},
		{"oversized body", http.StatusOK, "1\n2\n" + strings.Repeat(" ", 4096), 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})

			_, err := gen.Generate(context.Background(), tt.qty, 0, 7)

			if tt.wantErr && !errors.Is(err, generator.ErrUnavailable) {
				t.Errorf("error = %v, want %v", err, generator.ErrUnavailable)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error = %v", err)
			}
		})
	}

	t.Run("invalid request", func(t *testing.T) {
		gen := randomorg.NewClient(randomorg.DefaultConfig())

		if _, err := gen.Generate(context.Background(), 0, 0, 7); !errors.Is(err, generator.ErrUnavailable) {
			t.Errorf("error = %v, want %v", err, generator.ErrUnavailable)
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		server.Close()
		gen := randomorg.NewClient(randomorg.Config{BaseURL: server.URL, Timeout: time.Second})

		if _, err := gen.Generate(context.Background(), 1, 0, 7); !errors.Is(err, generator.ErrUnavailable) {
			t.Errorf("error = %v, want %v", err, generator.ErrUnavailable)
		}
	})
}

func TestClient_Quota(t *testing.T) {
	t.Run("parses quota", func(t *testing.T) {
		gen := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/quota/" || r.URL.Query().Get("format") != "plain" {
				t.Errorf("request = %v, want /quota/?format=plain", r.URL)
			}
			fmt.Fprint(w, "999650\n")
		})

		quota, err := gen.Quota(context.Background())

		if err != nil {
			t.Fatalf("Quota() error = %v", err)
		}
		if quota != 999650 {
			t.Errorf("Quota() = %d, want 999650", quota)
		}
	})

	t.Run("negative quota is reported", func(t *testing.T) {
		gen := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "-4200")
		})

		quota, err := gen.Quota(context.Background())

		if err != nil {
			t.Fatalf("Quota() error = %v", err)
		}
		if quota != -4200 {
			t.Errorf("Quota() = %d, want -4200", quota)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		gen := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "<html>")
		})

		if _, err := gen.Quota(context.Background()); !errors.Is(err, generator.ErrUnavailable) {
			t.Errorf("error = %v, want %v", err, generator.ErrUnavailable)
		}
	})
}
