package catchup

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/0xPolygon/zkevm-sequencer-core/log"
	"github.com/0xPolygon/zkevm-sequencer-core/state"
	"github.com/0xPolygon/zkevm-sequencer-core/types"
	"github.com/ethereum/go-ethereum/rpc"
)

const (
	// APIName is the namespace of the catchup JSON-RPC methods
	APIName = "catchup"

	defaultMaxAccounts = 1000
	readHeaderTimeout  = 5 * time.Second
	shutdownTimeout    = 5 * time.Second
)

// API serves fragments of the ledgers held by a store to peers
type API struct {
	store       *state.Store
	maxAccounts int
}

// NewAPI creates the catchup API
func NewAPI(store *state.Store, maxAccounts int) *API {
	if maxAccounts <= 0 {
		maxAccounts = defaultMaxAccounts
	}
	return &API{store: store, maxAccounts: maxAccounts}
}

// FetchAccounts is exposed as catchup_fetchAccounts
func (a *API) FetchAccounts(ctx context.Context, req types.FetchRequest) (*types.StateFragment, error) {
	if len(req.Accounts) > a.maxAccounts {
		return nil, fmt.Errorf("too many accounts requested: %d, max %d", len(req.Accounts), a.maxAccounts)
	}
	return a.store.Prove(req.Height, req.Root, req.Accounts)
}

// NewRPCServer registers api in a new JSON-RPC server
func NewRPCServer(api *API) (*rpc.Server, error) {
	server := rpc.NewServer()
	if err := server.RegisterName(APIName, api); err != nil {
		return nil, err
	}
	return server, nil
}

// Server exposes the catchup API over http
type Server struct {
	rpc    *rpc.Server
	server *http.Server
}

// NewServer creates the http server of the catchup API
func NewServer(cfg ServerConfig, api *API) (*Server, error) {
	rpcServer, err := NewRPCServer(api)
	if err != nil {
		return nil, err
	}
	return &Server{
		rpc: rpcServer,
		server: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Handler:           rpcServer,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}, nil
}

// Start serves requests until ctx is done
func (s *Server) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			log.Warnf("error shutting down catchup server: %v", err)
		}
		s.rpc.Stop()
	}()

	log.Infof("catchup server listening on %s", s.server.Addr)
	err := s.server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("catchup server: %w", err)
	}
	return nil
}
