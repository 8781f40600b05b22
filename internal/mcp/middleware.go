package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"brandsmith/internal/services"
	"brandsmith/internal/transport"
)

const methodCallTool = "tools/call"

// authMiddleware resolves the caller of tool calls from the bearer token of
// the HTTP request that carried them.
func authMiddleware(resolver transport.UserResolver) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if method != methodCallTool {
				return next(ctx, method, req)
			}

			extra := req.GetExtra()
			if extra == nil || extra.Header == nil {
				return nil, fmt.Errorf("%w: missing headers", services.ErrUnauthorized)
			}
			token := transport.BearerToken(extra.Header.Get("Authorization"))
			if token == "" {
				return nil, fmt.Errorf("%w: missing bearer token", services.ErrUnauthorized)
			}
			u, err := resolver.Authenticate(ctx, token)
			if err != nil {
				return nil, err
			}
			return next(transport.WithUser(ctx, u.ID), method, req)
		}
	}
}

// localUserMiddleware runs every request as userID.
func localUserMiddleware(userID uint) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			return next(transport.WithUser(ctx, userID), method, req)
		}
	}
}

func loggingMiddleware(log *slog.Logger) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			start := time.Now()
			res, err := next(ctx, method, req)
			if err != nil {
				log.WarnContext(ctx, "mcp request failed", "method", method, "duration", time.Since(start), "error", err)
			} else {
				log.DebugContext(ctx, "mcp request", "method", method, "duration", time.Since(start))
			}
			return res, err
		}
	}
}
