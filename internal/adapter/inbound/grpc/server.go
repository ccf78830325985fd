// Package grpc serves the operational gRPC endpoint: health checking
// and reflection. Game traffic goes through the HTTP surface.
package grpc

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"google.golang.org/grpc"

	pkggrpc "github.com/0xsj/overwatch-pkg/grpc"
	"github.com/0xsj/overwatch-pkg/log"

	"github.com/0xsj/overwatch-mastermind/internal/app/service"
)

// ServerConfig holds configuration for the ops gRPC server.
type ServerConfig struct {
	Host             string
	Port             int
	EnableReflection bool
}

// Address returns the server address.
func (c ServerConfig) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate validates the server configuration.
func (c ServerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	return nil
}

// Server wraps the pkg grpc.Server. It reports the supply pool as a
// health service, so it satisfies service.StatusReporter.
type Server struct {
	server *pkggrpc.Server
	logger log.Logger
}

var _ service.StatusReporter = (*Server)(nil)

// NewServer creates a new ops gRPC server with health checking enabled.
// The pool service starts NOT_SERVING until the first replenishment cycle reports.
func NewServer(cfg ServerConfig, logger log.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server config: %w", err)
	}

	server, err := pkggrpc.NewServer(
		pkggrpc.WithServerAddress(cfg.Address()),
		pkggrpc.WithServerLogger(logger),
		pkggrpc.WithServerReflection(cfg.EnableReflection),
		pkggrpc.WithServerHealthCheck(true),
		pkggrpc.WithUnaryInterceptors(BuildUnaryInterceptors(logger)...),
		pkggrpc.WithStreamInterceptors(BuildStreamInterceptors(logger)...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create grpc server: %w", err)
	}
	server.SetServingStatus(service.PoolHealthService, false)

	return &Server{
		server: server,
		logger: logger,
	}, nil
}

// Run starts the server and blocks until shutdown.
func (s *Server) Run() error {
	s.logger.Info("running mastermind ops gRPC server",
		log.String("address", s.server.Address()),
	)
	return s.server.Run()
}

// Stop gracefully stops the gRPC server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping mastermind ops gRPC server")
	return s.server.Stop(ctx)
}

// GRPCServer returns the underlying grpc.Server.
func (s *Server) GRPCServer() *grpc.Server {
	return s.server.Server()
}

// Address returns the server's listen address.
func (s *Server) Address() string {
	return s.server.Address()
}

// SetServingStatus sets the serving status for health checks.
func (s *Server) SetServingStatus(service string, serving bool) {
	s.server.SetServingStatus(service, serving)
}
