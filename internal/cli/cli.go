// Package cli builds the taskserverd command line: run the gRPC server,
// report its configuration, and generate ed25519 identities for
// executors, commanders, and admins to be added to the taskserver's
// authorized-key configuration.
package cli

import (
	"encoding/base64"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	pb "github.com/nodefleet/funtonic/api/proto/v1"
	"github.com/nodefleet/funtonic/internal/admin"
	"github.com/nodefleet/funtonic/internal/config"
	"github.com/nodefleet/funtonic/internal/dispatcher"
	"github.com/nodefleet/funtonic/internal/keystore"
	"github.com/nodefleet/funtonic/internal/metrics"
	"github.com/nodefleet/funtonic/internal/registry"
	"github.com/nodefleet/funtonic/internal/rpcserver"
	"github.com/nodefleet/funtonic/internal/signedpayload"
)

var configFile string

// BuildCLI assembles the taskserverd root command and its subcommands.
func BuildCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "taskserverd",
		Short:   "funtonic taskserver: routes commands from commanders to executors",
		Long:    "taskserverd accepts signed commands from commanders, dispatches them to matching executors by tag predicate, and routes results back.",
		Version: "1.0.0",
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "configs/default.yaml", "config file path")

	rootCmd.AddCommand(buildRunCommand())
	rootCmd.AddCommand(buildStatusCommand())
	rootCmd.AddCommand(buildGenKeyCommand())

	return rootCmd
}

func buildRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the taskserver",
		Long:  "Load configuration, bind the gRPC listener, and serve ExecutorService and CommanderService until a shutdown signal arrives.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(configFile)
		},
	}
	return cmd
}

func runServer(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	staticKeys, err := cfg.DecodeAuthorizedKeys()
	if err != nil {
		return fmt.Errorf("failed to decode authorized_keys: %w", err)
	}
	staticAdminKeys, err := cfg.DecodeAdminAuthorizedKeys()
	if err != nil {
		return fmt.Errorf("failed to decode admin_authorized_keys: %w", err)
	}

	ks, err := keystore.Open(cfg.DataFile, staticKeys, staticAdminKeys)
	if err != nil {
		return fmt.Errorf("failed to open key store: %w", err)
	}

	logger := cfg.Logger()

	reg := registry.New(registry.DefaultOutboundQueueDepth)
	disp := dispatcher.New(reg, ks)
	adminHandler := admin.New(reg, ks, disp)
	replayCache := signedpayload.NewReplayCache()

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector()
		go func() {
			logger.Info("starting metrics server", "port", cfg.Metrics.Port)
			if err := metrics.StartServer(cfg.Metrics.Port); err != nil {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	srv := rpcserver.New(reg, ks, disp, adminHandler, replayCache, logger, collector)

	lis, err := net.Listen("tcp", cfg.BindAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.BindAddress, err)
	}

	grpcServer := grpc.NewServer()
	pb.RegisterExecutorServiceServer(grpcServer, srv)
	pb.RegisterCommanderServiceServer(grpcServer, srv)

	logger.Info("taskserverd listening", "address", cfg.BindAddress)
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("grpc server stopped", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("received shutdown signal, stopping gracefully")
	grpcServer.GracefulStop()
	logger.Info("taskserverd stopped")
	return nil
}

func buildStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show taskserver configuration status",
		Long:  "Display the configuration a subsequent 'run' would use, without starting the server.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showStatus(configFile)
		},
	}
	return cmd
}

func showStatus(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Printf("Config file:            %s\n", path)
	fmt.Printf("Bind address:           %s\n", cfg.BindAddress)
	fmt.Printf("Data file:              %s\n", cfg.DataFile)
	fmt.Printf("Replay window:          %s\n", cfg.ReplayWindow())
	fmt.Printf("Authorized keys:        %d\n", len(cfg.AuthorizedKeys))
	fmt.Printf("Admin authorized keys:  %d\n", len(cfg.AdminAuthorizedKeys))
	if cfg.Metrics.Enabled {
		fmt.Printf("Metrics:                enabled on :%d/metrics\n", cfg.Metrics.Port)
	} else {
		fmt.Println("Metrics:                disabled")
	}
	return nil
}

func buildGenKeyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genkey",
		Short: "Generate an ed25519 key pair",
		Long:  "Generate a fresh ed25519 key pair for an executor, commander, or admin identity. The private key never touches disk here; copy it to the owning process's configuration.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return genKey()
		},
	}
	return cmd
}

func genKey() error {
	pub, priv, err := signedpayload.GenerateKey()
	if err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}
	fmt.Printf("public_key:  %s\n", base64.StdEncoding.EncodeToString(pub))
	fmt.Printf("private_key: %s\n", base64.StdEncoding.EncodeToString(priv))
	return nil
}
