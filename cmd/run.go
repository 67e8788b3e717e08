package main

import (
	"context"
	"fmt"

	"github.com/0xPolygon/zkevm-sequencer-core/catchup"
	localCommon "github.com/0xPolygon/zkevm-sequencer-core/common"
	"github.com/0xPolygon/zkevm-sequencer-core/config"
	"github.com/0xPolygon/zkevm-sequencer-core/etherman"
	"github.com/0xPolygon/zkevm-sequencer-core/l1client"
	"github.com/0xPolygon/zkevm-sequencer-core/log"
	"github.com/0xPolygon/zkevm-sequencer-core/metrics"
	"github.com/0xPolygon/zkevm-sequencer-core/node"
	"github.com/0xPolygon/zkevm-sequencer-core/persistence"
	"github.com/0xPolygon/zkevm-sequencer-core/state"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func start(cliCtx *cli.Context) error {
	c, err := config.Load(cliCtx)
	if err != nil {
		return err
	}
	log.Init(c.Log)

	ctx, cancel := context.WithCancel(cliCtx.Context)
	defer cancel()

	storage, err := persistence.Open(c.Persistence)
	if err != nil {
		return err
	}
	defer func() {
		if err := storage.Close(context.Background()); err != nil {
			log.Errorf("error closing storage: %v", err)
		}
	}()

	networkCfg, rejoined, err := node.InitNetworkConfig(ctx, storage, config.NetworkFileFetcher(cliCtx.String(config.FlagNetworkFile)))
	if err != nil {
		return err
	}
	if !rejoined {
		log.Warn("joined a new network, DO NOT RESTART until all nodes are connected")
	}

	chainConfig := networkCfg.ChainConfig
	if chainConfig.ChainID == nil {
		chainConfig = c.Genesis.ChainConfig()
	}

	ethClient, err := etherman.NewClient(c.L1.Etherman)
	if err != nil {
		return fmt.Errorf("error creating L1 client: %w", err)
	}
	trackerCfg := c.L1.Config
	if networkCfg.L1FinalizedBlock != nil {
		trackerCfg.FinalizedBlock = networkCfg.L1FinalizedBlock
	}
	tracker := l1client.New(trackerCfg, ethClient)
	l1Genesis, err := tracker.Genesis(ctx)
	if err != nil {
		return fmt.Errorf("error fetching L1 genesis block: %w", err)
	}

	store, err := state.OpenStore(c.State)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Errorf("error closing state store: %v", err)
		}
	}()
	genesisState, err := state.Genesis(store, chainConfig, c.Genesis.PrefundedAccounts)
	if err != nil {
		return err
	}

	statePeers, err := catchup.NewStatePeers(ctx, localCommon.Dedup(append(c.Catchup.Peers, networkCfg.StatePeers...)))
	if err != nil {
		return err
	}
	defer statePeers.Close()
	stateCatchup := catchup.NewLocalAndRemote(c.Catchup, catchup.NewLocalSource(store), statePeers)

	nodeState, err := node.NewNodeState(networkCfg.NodeIndex, chainConfig, tracker, stateCatchup)
	if err != nil {
		return err
	}
	nodeState = nodeState.WithGenesis(genesisState).WithL1Genesis(l1Genesis)
	genesis, _, err := nodeState.GenesisBlock()
	if err != nil {
		return err
	}
	log.Infof("node %d ready, genesis header %s, fee root %s", nodeState.NodeID(), genesis.Commit(), genesis.FeeMerkleRoot)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tracker.Start(gCtx)
		return nil
	})
	if c.Catchup.Server.Enabled {
		server, err := catchup.NewServer(c.Catchup.Server, catchup.NewAPI(store, c.Catchup.MaxAccountsPerRequest))
		if err != nil {
			return err
		}
		g.Go(func() error {
			return server.Start(gCtx)
		})
	}
	if c.Metrics.Enabled {
		g.Go(func() error {
			return metrics.NewServer(c.Metrics).Start(gCtx)
		})
	}
	g.Go(func() error {
		etherman.WaitSignal(gCtx, cancel, tracker.Stop)
		return nil
	})

	return g.Wait()
}
