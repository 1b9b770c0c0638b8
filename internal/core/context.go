package core

import (
	"context"

	"github.com/JonMunkholm/parseos/internal/logging"
)

// ContextWithClientIP adds the caller's IP address to ctx. Conversion logs
// written under ctx include it as client_ip.
func ContextWithClientIP(ctx context.Context, ip string) context.Context {
	return logging.ContextWith(ctx, "client_ip", ip)
}

// ContextWithOrigin records where the sources came from: "json", "upload"
// or "cli". Conversion logs written under ctx include it as origin.
func ContextWithOrigin(ctx context.Context, origin string) context.Context {
	return logging.ContextWith(ctx, "origin", origin)
}
