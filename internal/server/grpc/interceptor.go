package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/placeholder/internal/common"
	"github.com/dmitrijs2005/placeholder/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// authInterceptor attaches the principal named by a valid bearer token in
// the "authorization" metadata. It never rejects a call: handlers that need
// an identity check auth.PrincipalFromContext themselves.
func (s *GRPCServer) authInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {

	var header string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AuthorizationMetadataKey); len(values) > 0 {
			header = values[0]
		}
	}

	authCtx, err := auth.Authenticate(ctx, s.tokens, header, s.now())
	if err != nil {
		if !errors.Is(err, auth.ErrNoBearerToken) {
			s.logger.Debug(ctx, "token rejected", "method", info.FullMethod, "reason", err.Error())
		}
		return handler(ctx, req)
	}

	return handler(authCtx, req)
}
