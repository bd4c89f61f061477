// Command funtonic-admin is a thin client for the taskserver's Admin RPC:
// list connected and known executors, inspect running tasks, approve a
// pending executor key, and drop an executor. It signs every request with
// an admin ed25519 key the same way taskserverd's Admin handler expects.
package main

import (
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	pb "github.com/nodefleet/funtonic/api/proto/v1"
	"github.com/nodefleet/funtonic/internal/signedpayload"
)

var (
	serverAddr string
	keyID      string
	privateKey string
)

func main() {
	root := buildRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func buildRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "funtonic-admin",
		Short: "Administer a funtonic taskserver",
		Long:  "funtonic-admin sends signed AdminRequest RPCs to a taskserver: listing executors, inspecting running tasks, approving pending keys, and dropping executors.",
	}

	root.PersistentFlags().StringVar(&serverAddr, "server", "127.0.0.1:9443", "taskserver address")
	root.PersistentFlags().StringVar(&keyID, "key-id", "", "admin key_id (required)")
	root.PersistentFlags().StringVar(&privateKey, "private-key", "", "base64-encoded ed25519 admin private key (required)")
	root.MarkPersistentFlagRequired("key-id")
	root.MarkPersistentFlagRequired("private-key")

	root.AddCommand(
		simpleCommand("list-connected-executors", "List currently connected executors", func() *pb.AdminRequest {
			return &pb.AdminRequest{RequestType: &pb.AdminRequest_ListConnectedExecutors{ListConnectedExecutors: "*"}}
		}),
		simpleCommand("list-known-executors", "List every executor key the taskserver has ever seen", func() *pb.AdminRequest {
			return &pb.AdminRequest{RequestType: &pb.AdminRequest_ListKnownExecutors{ListKnownExecutors: "*"}}
		}),
		simpleCommand("list-running-tasks", "List task IDs the taskserver is still routing results for", func() *pb.AdminRequest {
			return &pb.AdminRequest{RequestType: &pb.AdminRequest_ListRunningTasks{ListRunningTasks: &pb.Empty{}}}
		}),
		simpleCommand("list-executor-keys", "List trusted and pending executor keys", func() *pb.AdminRequest {
			return &pb.AdminRequest{RequestType: &pb.AdminRequest_ListExecutorKeys{ListExecutorKeys: &pb.Empty{}}}
		}),
		simpleCommand("list-authorized-keys", "List commander-authorized keys", func() *pb.AdminRequest {
			return &pb.AdminRequest{RequestType: &pb.AdminRequest_ListAuthorizedKeys{ListAuthorizedKeys: &pb.Empty{}}}
		}),
		simpleCommand("list-admin-authorized-keys", "List admin-authorized keys", func() *pb.AdminRequest {
			return &pb.AdminRequest{RequestType: &pb.AdminRequest_ListAdminAuthorizedKeys{ListAdminAuthorizedKeys: &pb.Empty{}}}
		}),
		buildApproveExecutorKeyCommand(),
		buildDropExecutorCommand(),
	)

	return root
}

func simpleCommand(use, short string, build func() *pb.AdminRequest) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendAdminRequest(build())
		},
	}
}

func buildApproveExecutorKeyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "approve-executor-key <client-id>",
		Short: "Approve a pending executor key, or \"*\" to approve every pending key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendAdminRequest(&pb.AdminRequest{RequestType: &pb.AdminRequest_ApproveExecutorKey{ApproveExecutorKey: args[0]}})
		},
	}
}

func buildDropExecutorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "drop-executor <client-id>",
		Short: "Remove an executor's key and live connection from the taskserver",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendAdminRequest(&pb.AdminRequest{RequestType: &pb.AdminRequest_DropExecutor{DropExecutor: args[0]}})
		},
	}
}

func sendAdminRequest(request *pb.AdminRequest) error {
	priv, err := decodePrivateKey(privateKey)
	if err != nil {
		return err
	}

	envelope, err := signedpayload.Sign(request, priv, keyID, 30*time.Second)
	if err != nil {
		return fmt.Errorf("sign admin request: %w", err)
	}

	conn, err := grpc.NewClient(serverAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("dial %s: %w", serverAddr, err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := pb.NewCommanderServiceClient(conn)
	response, err := client.Admin(ctx, envelope)
	if err != nil {
		return fmt.Errorf("admin rpc: %w", err)
	}

	switch kind := response.GetResponseKind().(type) {
	case *pb.AdminRequestResponse_Error:
		return fmt.Errorf("taskserver: %s", kind.Error)
	case *pb.AdminRequestResponse_JsonResponse:
		return printJSON(kind.JsonResponse)
	default:
		return fmt.Errorf("taskserver: empty admin response")
	}
}

func printJSON(raw string) error {
	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		fmt.Println(raw)
		return nil
	}
	pretty, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		fmt.Println(raw)
		return nil
	}
	fmt.Println(string(pretty))
	return nil
}

func decodePrivateKey(encoded string) (ed25519.PrivateKey, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode --private-key: %w", err)
	}
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("--private-key is %d bytes, want %d", len(raw), ed25519.PrivateKeySize)
	}
	return ed25519.PrivateKey(raw), nil
}
