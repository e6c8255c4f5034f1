package entry

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// GRPCServerLogging is the gRPC counterpart to Middleware: each unary call is assigned
// a request ID and a request-scoped logger (accessible via entry.Logger()), and every
// call is logged when it finishes
func GRPCServerLogging(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		// Check for an existing x-request-id header; and generate one if not found
		requestId := firstValue(ctx, "x-request-id")
		if requestId == "" {
			requestId = uuid.NewString()
		}

		// Get the client IP
		remoteAddr := ""
		if p, ok := peer.FromContext(ctx); ok {
			remoteAddr = p.Addr.String()
		}

		// Prepare a logger with the relevant details of this request
		reqLogger := logger.With(
			"requestId", requestId,
			"grpcMethod", info.FullMethod,
			"remoteAddr", remoteAddr,
		)
		if gapAuth := firstValue(ctx, "gap-auth"); gapAuth != "" {
			reqLogger = reqLogger.With("gapAuthClaimed", gapAuth)
		}
		reqLogger.Debug("Handling request")

		// Handle the request, measuring how long it takes to execute
		ctx = context.WithValue(ctx, requestIdKey, requestId)
		ctx = context.WithValue(ctx, loggerKey, reqLogger)
		start := time.Now()
		m, err := handler(ctx, req)
		elapsed := time.Since(start)
		elapsedMilliseconds := float64(elapsed.Nanoseconds()) / float64(1000000)

		// Write a final log message indicating that the request is finished, and noting any
		// error that resulted
		reqLogger = reqLogger.With("elapsedMilliseconds", elapsedMilliseconds)
		if err != nil {
			reqLogger = reqLogger.With("error", err)
			if grpcErr, ok := status.FromError(err); ok {
				reqLogger = reqLogger.With("grpcStatusCode", grpcErr.Code().String())
			}
			reqLogger.Error("Request finished with error")
		} else {
			reqLogger.Info("Request finished OK")
		}

		// Pass through the original result value and error unchanged
		return m, err
	}
}

func firstValue(ctx context.Context, key string) string {
	if values := metadata.ValueFromIncomingContext(ctx, key); len(values) > 0 {
		return values[0]
	}
	return ""
}
