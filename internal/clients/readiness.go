package clients

import (
	"context"
	"fmt"
	"net"
	"time"
)

// BaseURL turns an HTTP listen address such as ":3000" into a loopback URL
// the same process can call. Wildcard hosts are replaced with 127.0.0.1.
func BaseURL(listenAddr string) (string, error) {
	host, port, err := net.SplitHostPort(listenAddr)
	if err != nil {
		return "", fmt.Errorf("invalid listen address %q: %w", listenAddr, err)
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port), nil
}

// WaitReady lists categories every interval until a call succeeds or ctx is
// done. A success means routing, the service and the stores all answer.
func WaitReady(ctx context.Context, client CategoryClient, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastErr error
	for {
		if _, lastErr = client.List(ctx, ""); lastErr == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("catalog API not ready: %w (last error: %v)", ctx.Err(), lastErr)
		case <-ticker.C:
		}
	}
}
