package web

import (
	"context"
	"net/http"

	"github.com/JonMunkholm/parseos/internal/core"
	mw "github.com/JonMunkholm/parseos/internal/web/middleware"
)

// Request origins recorded on conversion logs.
const (
	originJSON   = "json"
	originUpload = "upload"
)

// withRequestMetadata adds the client IP and the source origin to the
// context for conversion logging.
func withRequestMetadata(r *http.Request, origin string) context.Context {
	ctx := core.ContextWithClientIP(r.Context(), mw.ClientIP(r))
	return core.ContextWithOrigin(ctx, origin)
}
