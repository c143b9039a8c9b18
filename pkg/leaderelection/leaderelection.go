// Package leaderelection asks the elector sidecar whether this pod is the leader.
package leaderelection

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	EnvElectorPath = "ELECTOR_PATH"

	defaultRetries = 3
)

type Elector struct {
	electorPath string
	client      *http.Client
	hostname    func() (string, error)
	retries     int
	backoff     time.Duration
}

// IsLeader reports whether this instance is the leader. Without an elector
// path there is only one instance, and it is always the leader.
func (e *Elector) IsLeader(ctx context.Context) (bool, error) {
	if e.electorPath == "" {
		return true, nil
	}

	hostname, err := e.hostname()
	if err != nil {
		return false, err
	}

	leader, err := e.getLeader(ctx)
	if err != nil {
		return false, err
	}

	return hostname == leader, nil
}

func (e *Elector) getLeader(ctx context.Context) (string, error) {
	resp, err := e.electorRequestWithRetry(ctx)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var electorResponse struct {
		Name string
	}

	if err := json.Unmarshal(bodyBytes, &electorResponse); err != nil {
		return "", err
	}

	return electorResponse.Name, nil
}

func (e *Elector) electorRequestWithRetry(ctx context.Context) (*http.Response, error) {
	for i := 1; i <= e.retries; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+e.electorPath, nil)
		if err != nil {
			return nil, err
		}

		resp, err := e.client.Do(req)
		if err == nil {
			return resp, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(e.backoff * time.Duration(i)):
		}
	}

	return nil, fmt.Errorf("no response from elector container after %v retries", e.retries)
}

type Option func(*Elector)

func WithHostname(fn func() (string, error)) Option {
	return func(e *Elector) {
		e.hostname = fn
	}
}

func WithBackoff(d time.Duration) Option {
	return func(e *Elector) {
		e.backoff = d
	}
}

func New(electorPath string, client *http.Client, opts ...Option) *Elector {
	e := &Elector{
		electorPath: electorPath,
		client:      client,
		hostname:    os.Hostname,
		retries:     defaultRetries,
		backoff:     time.Second,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// NewFromEnv reads the elector path from ELECTOR_PATH.
func NewFromEnv(client *http.Client) *Elector {
	return New(os.Getenv(EnvElectorPath), client)
}
