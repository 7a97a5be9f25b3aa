package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	greeterpb "github.com/ogurasousui/codex-user-greeter/internal/adapters/grpc/gen/greeter/v1"
	"github.com/ogurasousui/codex-user-greeter/internal/adapters/grpc/handler"
	"github.com/ogurasousui/codex-user-greeter/internal/core/hello"
	"google.golang.org/grpc"
)

// Server は gRPC サーバーのライフサイクルを管理します。
type Server struct {
	listenAddr string
	grpcServer *grpc.Server
	logger     *slog.Logger
}

// New は指定されたアドレスで待ち受ける gRPC サーバーを構築します。
func New(listenAddr string, greeter hello.Greeter, logger *slog.Logger, opts ...grpc.ServerOption) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	opts = append([]grpc.ServerOption{grpc.ChainUnaryInterceptor(LoggingInterceptor(logger))}, opts...)
	srv := grpc.NewServer(opts...)
	greeterHandler := handler.NewGreeterHandler(greeter)
	greeterpb.RegisterGreeterServiceServer(srv, greeterHandler)

	return &Server{
		listenAddr: listenAddr,
		grpcServer: srv,
		logger:     logger,
	}
}

// Run はサーバーを起動し、コンテキストがキャンセルされると GracefulStop します。
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.listenAddr, err)
	}

	return s.Serve(ctx, lis)
}

// Serve は指定されたリスナーでサーバーを起動します。
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	done := make(chan struct{})
	defer close(done)
	go watchContext(ctx, done, s.grpcServer.GracefulStop)

	s.logger.Info("gRPC server listening", "addr", lis.Addr().String())

	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	return nil
}

// watchContext は ctx がキャンセルされたら stop を呼びます。done が閉じられた場合は何もせずに戻ります。
func watchContext(ctx context.Context, done <-chan struct{}, stop func()) {
	select {
	case <-ctx.Done():
		stop()
	case <-done:
	}
}

// GracefulStop はサーバーを安全に停止します。
func (s *Server) GracefulStop() {
	s.grpcServer.GracefulStop()
}
