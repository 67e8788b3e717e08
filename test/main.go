package main

import (
	"context"
	"math/big"
	"time"

	"github.com/0xPolygon/zkevm-sequencer-core/catchup"
	"github.com/0xPolygon/zkevm-sequencer-core/config/types"
	"github.com/0xPolygon/zkevm-sequencer-core/etherman"
	"github.com/0xPolygon/zkevm-sequencer-core/l1client"
	"github.com/0xPolygon/zkevm-sequencer-core/log"
	"github.com/0xPolygon/zkevm-sequencer-core/node"
	"github.com/0xPolygon/zkevm-sequencer-core/state"
	seqTypes "github.com/0xPolygon/zkevm-sequencer-core/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
)

var (
	funded    = common.HexToAddress("0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266")
	recipient = common.HexToAddress("0x0001")
)

// Builds a short chain on top of a local L1 with one node and validates it
// with a second node that only knows the genesis root and catches up from
// the first over JSON-RPC.
func main() {
	log.Init(log.Config{Level: "info", Environment: "development", Outputs: []string{"stderr"}})
	ctx := context.Background()

	ethCfg := etherman.Config{
		URL:         "http://localhost:8545",
		HTTPHeaders: map[string]string{},
		L1ChainID:   1337,
	}
	ethClient, err := etherman.NewClient(ethCfg)
	if err != nil {
		log.Fatalf("Error creating etherman client: %s", err)
	}
	if err := etherman.WaitBlock(ctx, ethClient, 1, 2*time.Minute); err != nil {
		log.Fatalf("L1 did not produce blocks: %s", err)
	}

	tracker := l1client.New(l1client.Config{
		PollInterval:   types.NewDuration(time.Second),
		RequestTimeout: types.NewDuration(5 * time.Second),
		MaxBackoff:     types.NewDuration(10 * time.Second),
		BlockRetries:   3,
	}, ethClient)
	go tracker.Start(ctx)
	defer tracker.Stop()
	for {
		if _, err := tracker.Snapshot(); err == nil {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	chainConfig := seqTypes.DefaultChainConfig()
	builderStore := state.NewMemoryStore()
	genesisState, err := state.Genesis(builderStore, chainConfig, []common.Address{funded})
	if err != nil {
		log.Fatal(err)
	}
	builder, err := node.NewNodeState(0, chainConfig, tracker, catchup.NoOp{})
	if err != nil {
		log.Fatal(err)
	}
	builder = builder.WithGenesis(genesisState)

	// the validator reaches the builder's state through the catchup API
	rpcServer, err := catchup.NewRPCServer(catchup.NewAPI(builderStore, 100))
	if err != nil {
		log.Fatal(err)
	}
	peers := &catchup.StatePeers{}
	peers.Add("builder", catchup.NewRPCPeer(rpc.DialInProc(rpcServer)))
	defer peers.Close()
	validator, err := node.NewNodeState(1, chainConfig, tracker, catchup.NewLocalAndRemote(catchup.Config{
		Retries:        2,
		RequestTimeout: types.NewDuration(time.Second),
		RetryInterval:  types.NewDuration(100 * time.Millisecond),
	}, catchup.NewLocalSource(state.NewMemoryStore()), peers))
	if err != nil {
		log.Fatal(err)
	}

	genesis, genesisPayload, err := builder.GenesisBlock()
	if err != nil {
		log.Fatal(err)
	}
	validator = validator.WithGenesis(state.FromCommitment(state.NewMemoryStore(), genesis.FeeMerkleRoot, chainConfig))
	validatorState, err := validator.ValidateAndApply(ctx, nil, nil, genesis, genesisPayload)
	if err != nil {
		log.Fatalf("genesis rejected: %s", err)
	}

	parent, parentState := genesis, genesisState
	for i := int64(1); i <= 5; i++ {
		tx, err := seqTypes.NewFeeTransaction(funded, recipient, big.NewInt(i))
		if err != nil {
			log.Fatal(err)
		}
		payload, nsTable, err := seqTypes.NewPayload([]seqTypes.Transaction{tx})
		if err != nil {
			log.Fatal(err)
		}
		h, next, err := builder.BuildHeader(ctx, parent, parentState, payload, nsTable, common.Hash{})
		if err != nil {
			log.Fatalf("error building block: %s", err)
		}
		validatorState, err = validator.ValidateAndApply(ctx, parent, validatorState, h, payload)
		if err != nil {
			log.Fatalf("block %d rejected: %s", h.Height, err)
		}
		log.Infof("block %d validated, L1 head %d, fee root %s", h.Height, h.L1Head, h.FeeMerkleRoot)
		parent, parentState = h, next
		time.Sleep(time.Second)
	}

	balance, err := validatorState.Balance(recipient)
	if err != nil {
		log.Fatal(err)
	}
	log.Infof("recipient balance %s", balance)
}
