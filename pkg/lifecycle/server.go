// Package lifecycle owns process startup and shutdown: the HTTP API
// server, background runners and the infra-facing gRPC health endpoint.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const ShutdownTimeout = 10 * time.Second

// Runner is a background loop that blocks until its context is cancelled.
type Runner interface {
	Start(ctx context.Context) error
}

// ServerOptions holds configuration for running the daemon.
type ServerOptions struct {
	ListenAddr  string
	GrpcAddr    string // empty disables the gRPC health endpoint
	ServiceName string
	Handler     http.Handler
	Runners     []Runner
}

// RunServer starts everything and blocks until a signal, a fatal error or
// context cancellation, then shuts down within ShutdownTimeout.
func RunServer(ctx context.Context, opts *ServerOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Printf("*** Starting service %s", opts.ServiceName)

	errChan := make(chan error, len(opts.Runners)+2)

	httpServer := &http.Server{
		Addr:              opts.ListenAddr,
		Handler:           opts.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting HTTP server on %s", opts.ListenAddr)

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	grpcServer, err := startGRPCHealth(opts.GrpcAddr, opts.ServiceName, errChan)
	if err != nil {
		return err
	}

	for _, runner := range opts.Runners {
		go func(r Runner) {
			if err := r.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				select {
				case errChan <- err:
				default:
					log.Printf("Runner error: %v", err)
				}
			}
		}(runner)
	}

	return handleShutdown(ctx, cancel, httpServer, grpcServer, errChan)
}

func startGRPCHealth(addr, serviceName string, errChan chan<- error) (*grpc.Server, error) {
	if addr == "" {
		return nil, nil
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	grpcServer := grpc.NewServer()

	hs := health.NewServer()
	hs.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, hs)

	go func() {
		log.Printf("Starting gRPC health server on %s", addr)

		if err := grpcServer.Serve(lis); err != nil {
			select {
			case errChan <- fmt.Errorf("gRPC server error: %w", err):
			default:
				log.Printf("gRPC server error: %v", err)
			}
		}
	}()

	return grpcServer, nil
}

func handleShutdown(
	ctx context.Context, cancel context.CancelFunc,
	httpServer *http.Server, grpcServer *grpc.Server, errChan chan error) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var runErr error

	select {
	case sig := <-sigChan:
		log.Printf("Received signal %v, initiating shutdown", sig)
	case err := <-errChan:
		log.Printf("Received error: %v, initiating shutdown", err)
		runErr = fmt.Errorf("service error: %w", err)
	case <-ctx.Done():
		log.Printf("Context canceled, initiating shutdown")
		runErr = ctx.Err()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer shutdownCancel()

	cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during HTTP shutdown: %v", err)
	}

	if grpcServer != nil {
		grpcServer.GracefulStop()
	}

	return runErr
}
