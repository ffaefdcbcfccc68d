// Package lms implements the gateway over the Logitech Media Server JSON-RPC
// endpoint (POST /jsonrpc.js, method "slim.request").
package lms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/nadzzz/squeezeyard/internal/config"
	"github.com/nadzzz/squeezeyard/internal/gateway"
)

// Client talks to a single media server.
type Client struct {
	endpoint string
	username string
	password string
	client   *http.Client
}

// New creates a client from config.
func New(cfg config.ServerConfig) *Client {
	scheme := cfg.Scheme
	if scheme == "" {
		scheme = "http"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		endpoint: fmt.Sprintf("%s://%s/jsonrpc.js", scheme, net.JoinHostPort(cfg.Host, fmt.Sprint(cfg.Port))),
		username: cfg.Username,
		password: cfg.Password,
		client:   &http.Client{Timeout: timeout},
	}
}

// Endpoint returns the JSON-RPC URL the client posts to.
func (c *Client) Endpoint() string { return c.endpoint }

type rpcRequest struct {
	ID     int    `json:"id"`
	Method string `json:"method"`
	Params []any  `json:"params"`
}

type rpcResponse struct {
	ID     int            `json:"id"`
	Method string         `json:"method"`
	Result gateway.Result `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Invoke sends one command vector and returns its result object.
func (c *Client) Invoke(ctx context.Context, playerID string, command ...string) (gateway.Result, error) {
	if command == nil {
		command = []string{}
	}
	body, err := json.Marshal(rpcRequest{
		ID:     1,
		Method: "slim.request",
		Params: []any{playerID, command},
	})
	if err != nil {
		return nil, fmt.Errorf("marshalling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	slog.Debug("lms request", "player", playerID, "command", command)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, gateway.NewFault(gateway.FaultUnauthorized, fmt.Errorf("status %d", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, gateway.NewFault(gateway.FaultMalformed, fmt.Errorf("status %d: %s", resp.StatusCode, respBody))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(err)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(data, &rpcResp); err != nil {
		return nil, gateway.NewFault(gateway.FaultMalformed, fmt.Errorf("decoding reply: %w", err))
	}
	if rpcResp.Error != nil {
		return nil, fmt.Errorf("lms error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}
	if rpcResp.Result == nil {
		rpcResp.Result = gateway.Result{}
	}

	slog.Debug("lms reply", "player", playerID, "fields", len(rpcResp.Result))
	return rpcResp.Result, nil
}

// classify maps network errors to fault kinds.
func classify(err error) error {
	var dnsErr *net.DNSError
	var netErr net.Error
	switch {
	case errors.As(err, &dnsErr):
		return gateway.NewFault(gateway.FaultHostNotFound, err)
	case errors.Is(err, syscall.ECONNREFUSED):
		return gateway.NewFault(gateway.FaultConnectionRefused, err)
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return gateway.NewFault(gateway.FaultTimeout, err)
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, syscall.ECONNRESET):
		return gateway.NewFault(gateway.FaultConnectionLost, err)
	default:
		return err
	}
}
