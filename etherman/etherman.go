package etherman

import (
	"context"
	"errors"
	"math/big"

	"github.com/0xPolygon/zkevm-sequencer-core/log"
	zkTypes "github.com/0xPolygon/zkevm-sequencer-core/types"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// ErrNotFound is used when the object is not found
var ErrNotFound = ethereum.NotFound

// EthereumClient is the subset of the ethereum client used to follow the L1
type EthereumClient interface {
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

// Client is a read only implementation of EtherMan.
type Client struct {
	EthClient EthereumClient
	cfg       Config
}

// NewClient creates a new etherman.
func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("Ethereum node URL cannot be empty")
	}

	// Connect to ethereum node
	ethClient, err := ethclient.Dial(cfg.URL)
	if err != nil {
		log.Errorf("error connecting to %s: %+v", cfg.URL, err)
		return nil, err
	}

	for key, value := range cfg.HTTPHeaders {
		ethClient.Client().SetHeader(key, value)
	}

	// Fetch chain ID if not provided
	if cfg.L1ChainID == 0 {
		chainID, err := ethClient.ChainID(context.Background())
		if err != nil {
			log.Errorf("Failed to fetch chain ID from node: %+v", err)
			return nil, err
		}
		cfg.L1ChainID = chainID.Uint64()
		log.Infof("Etherman L1ChainID set to %d from node URL", cfg.L1ChainID)
	}

	return &Client{EthClient: ethClient, cfg: cfg}, nil
}

// L1ChainID returns the chain id of the L1 the client is connected to
func (etherMan *Client) L1ChainID() uint64 {
	return etherMan.cfg.L1ChainID
}

// HeaderByNumber returns a block header from the current canonical chain. If number is
// nil, the latest known header is returned.
func (etherMan *Client) HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	header, err := etherMan.EthClient.HeaderByNumber(ctx, number)
	err = translateError(err)
	if err == nil && header == nil {
		return nil, zkTypes.ErrNotFound
	}
	return header, err
}

// LatestHeader returns the head of the L1
func (etherMan *Client) LatestHeader(ctx context.Context) (*types.Header, error) {
	return etherMan.HeaderByNumber(ctx, big.NewInt(int64(rpc.LatestBlockNumber)))
}

// FinalizedHeader returns the latest finalized block of the L1, or
// ErrNotFound if the L1 has not finalized any block yet
func (etherMan *Client) FinalizedHeader(ctx context.Context) (*types.Header, error) {
	return etherMan.HeaderByNumber(ctx, big.NewInt(int64(rpc.FinalizedBlockNumber)))
}

// GetLatestBlockNumber gets the latest block number from the ethereum
func (etherMan *Client) GetLatestBlockNumber(ctx context.Context) (uint64, error) {
	header, err := etherMan.LatestHeader(ctx)
	if err != nil {
		return 0, err
	}
	return header.Number.Uint64(), nil
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if err.Error() == ethereum.NotFound.Error() {
		return zkTypes.ErrNotFound
	}
	return err
}
