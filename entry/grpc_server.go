package entry

import (
	"errors"
	"fmt"
	"net"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

// RunGRPCServer blocks while a gRPC server application runs
func RunGRPCServer(a Application, s *grpc.Server, bindAddr string, listenPort int) {
	// Bind to the configured port and begin listening for TCP connections
	addr := fmt.Sprintf("%s:%d", bindAddr, listenPort)
	listenConfig := net.ListenConfig{}
	lis, err := listenConfig.Listen(a.Context(), "tcp", addr)
	if err != nil {
		a.Fail(fmt.Sprintf("Failed to listen on %s", addr), err)
		return
	}

	// Serve until s.Serve fails or our application-level context is closed, whichever
	// comes first
	a.Log().Info("Now listening for gRPC", "bindAddr", bindAddr, "listenPort", listenPort)
	g, ctx := errgroup.WithContext(a.Context())
	g.Go(func() error {
		if err := s.Serve(lis); !errors.Is(err, grpc.ErrServerStopped) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		a.Log().Info("Closing gRPC server")
		s.GracefulStop()
		return nil
	})

	if err := g.Wait(); err != nil {
		a.Fail("Error running gRPC server", err)
		return
	}
	a.Log().Info("gRPC server closed")
}
