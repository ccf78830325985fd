package grpc

import (
	"google.golang.org/grpc"

	"github.com/0xsj/overwatch-pkg/grpc/middleware"
	"github.com/0xsj/overwatch-pkg/log"
)

// BuildUnaryInterceptors builds the unary interceptor chain for the ops server.
func BuildUnaryInterceptors(logger log.Logger) []grpc.UnaryServerInterceptor {
	return []grpc.UnaryServerInterceptor{
		middleware.UnaryServerRecoveryWithLogger(logger), // outermost, catches panics
		middleware.UnaryServerRequestID(),
		middleware.UnaryServerLogging(logger),
	}
}

// BuildStreamInterceptors builds the stream interceptor chain for the ops server.
// Health Watch is the only streaming method served.
func BuildStreamInterceptors(logger log.Logger) []grpc.StreamServerInterceptor {
	return []grpc.StreamServerInterceptor{
		middleware.StreamServerRecoveryWithLogger(logger),
		middleware.StreamServerRequestID(),
		middleware.StreamServerLogging(logger),
	}
}
