package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"nhooyr.io/websocket"
)

// newListFeed serves msgs over a websocket and then closes normally. If abort is set
// the connection is dropped with an error status instead.
func newListFeed(t *testing.T, msgs []string, abort bool, gotAuth chan<- string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotAuth != nil {
			gotAuth <- r.Header.Get(websocketAuthorizationHeader)
		}
		c, err := websocket.Accept(w, r, nil)
		if err != nil {
			t.Error(err)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		for _, m := range msgs {
			if err := c.Write(ctx, websocket.MessageText, []byte(m)); err != nil {
				t.Error(err)
				return
			}
		}
		if abort {
			c.Close(websocket.StatusInternalError, "boom")
			return
		}
		c.Close(websocket.StatusNormalClosure, "")
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestWebSourceLoad(t *testing.T) {
	msgs := []string{
		groceriesJSON,
		`{"name":"Work","todo_list":[{"done":true,"title":"Ship"}]}`,
		`{"name":"broken"`,
	}

	t.Run("Reads one list per message until closed", func(t *testing.T) {
		authCh := make(chan string, 1)
		srv := newListFeed(t, msgs, false, authCh)
		src, err := NewWebSource(WebRemote{URL: wsURL(srv), Token: "secret", MatchAll: true})
		if err != nil {
			t.Fatal(err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		results, err := src.Load(ctx)
		if err != nil {
			t.Fatal(err)
		}

		if auth := <-authCh; auth != "secret" {
			t.Errorf("Expected token in auth header but got %q", auth)
		}
		if len(results) != 3 {
			t.Fatalf("Expected 3 results but got %d", len(results))
		}
		expected := TodoList{Name: "Work", Items: []TodoItem{{true, "Ship"}}}
		if !cmp.Equal(expected, results[1].List) {
			t.Errorf("Unexpected list: %s", cmp.Diff(expected, results[1].List))
		}
		if !errors.Is(results[2].Err, ErrSchema) {
			t.Errorf("Expected schema error but got %v", results[2].Err)
		}
		if results[2].Path != "message 2" {
			t.Errorf("Expected message 2 but got %s", results[2].Path)
		}
	})
	t.Run("Applies the match filter", func(t *testing.T) {
		srv := newListFeed(t, msgs[:2], false, nil)
		src, err := NewWebSource(WebRemote{URL: wsURL(srv), Match: "!groc"})
		if err != nil {
			t.Fatal(err)
		}
		results, err := src.Load(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if len(results) != 1 || results[0].List.Name != "Work" {
			t.Errorf("Expected only Work but got %v", results)
		}
	})
	t.Run("Lists larger than the default frame limit are read", func(t *testing.T) {
		big := TodoList{Name: "Big"}
		for i := 0; i < 2000; i++ {
			big.Items = append(big.Items, TodoItem{Title: fmt.Sprintf("item number %04d", i)})
		}
		dat, err := MarshalTodoList(big)
		if err != nil {
			t.Fatal(err)
		}
		if len(dat) <= 32<<10 {
			t.Fatalf("Expected a document over 32KiB but got %d bytes", len(dat))
		}

		srv := newListFeed(t, []string{groceriesJSON, string(dat)}, false, nil)
		src, err := NewWebSource(WebRemote{URL: wsURL(srv), MatchAll: true})
		if err != nil {
			t.Fatal(err)
		}
		lists, err := NewLoader(PolicySkip, nil, src).Load(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if len(lists) != 2 {
			t.Fatalf("Expected 2 lists but got %d", len(lists))
		}
		if !cmp.Equal(big, lists[1]) {
			t.Errorf("Unexpected list: %s", cmp.Diff(big, lists[1]))
		}
	})
	t.Run("Abnormal closure fails the source", func(t *testing.T) {
		srv := newListFeed(t, msgs[:1], true, nil)
		src, err := NewWebSource(WebRemote{URL: wsURL(srv), MatchAll: true})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := src.Load(context.Background()); err == nil {
			t.Error("Expected an error")
		}
	})
	t.Run("Unreachable server fails the source", func(t *testing.T) {
		srv := newListFeed(t, nil, false, nil)
		u := wsURL(srv)
		srv.Close()
		src, err := NewWebSource(WebRemote{URL: u, MatchAll: true})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := src.Load(context.Background()); err == nil {
			t.Error("Expected an error")
		}
	})
	t.Run("Remote without match config is rejected", func(t *testing.T) {
		if _, err := NewWebSource(WebRemote{URL: "ws://localhost"}); !errors.Is(err, ErrNoMatchConfig) {
			t.Errorf("Expected ErrNoMatchConfig but got %v", err)
		}
	})
}
