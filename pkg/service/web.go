package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"nhooyr.io/websocket"
)

const (
	websocketAuthorizationHeader = "Authorization"
	// maxListMessageBytes bounds a single list document read from a feed
	maxListMessageBytes = 16 << 20
)

// WebSource reads lists from a websocket feed. The server sends one list document
// per message and closes the connection normally once it has sent them all.
type WebSource struct {
	url    *url.URL
	token  string
	filter remoteFilter
}

// NewWebSource ...
func NewWebSource(r WebRemote) (*WebSource, error) {
	f := remoteFilter{Match: r.Match, MatchAll: r.MatchAll}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("web remote %s: %w", r.URL, err)
	}
	u, err := url.Parse(r.URL)
	if err != nil {
		return nil, fmt.Errorf("broken url: %w", err)
	}
	return &WebSource{
		url:    u,
		token:  r.Token,
		filter: f,
	}, nil
}

// Name ...
func (s *WebSource) Name() string {
	return s.url.Redacted()
}

// Load dials the feed and consumes it until the server closes the connection
func (s *WebSource) Load(ctx context.Context) ([]LoadResult, error) {
	headers := make(http.Header)
	if s.token != "" {
		headers.Add(websocketAuthorizationHeader, s.token)
	}
	conn, _, err := websocket.Dial(ctx, s.url.String(), &websocket.DialOptions{HTTPHeader: headers})
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusInternalError, "")
	conn.SetReadLimit(maxListMessageBytes)

	results := []LoadResult{}
	for i := 0; ; i++ {
		_, msg, err := conn.Read(ctx)
		if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}

		r := LoadResult{Source: s.Name(), Path: msgPath(i)}
		r.List, r.Err = ParseTodoList(msg)
		if r.Err == nil && !s.filter.keep(r.List.Name) {
			continue
		}
		results = append(results, r)
	}

	return results, nil
}

func msgPath(i int) string {
	return fmt.Sprintf("message %d", i)
}
