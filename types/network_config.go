package types

import (
	"errors"
	"fmt"

	configTypes "github.com/0xPolygon/zkevm-sequencer-core/config/types"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// PeerConfig describes a consensus participant.
type PeerConfig struct {
	StakeKey hexutil.Bytes `json:"stake_table_key"`
	Stake    uint64        `json:"stake"`
}

// NetworkConfig is the snapshot a node needs to join or rejoin a network.
// It is written once and never mutated.
type NetworkConfig struct {
	NodeIndex        uint64               `json:"node_index"`
	Seed             hexutil.Bytes        `json:"seed"`
	KnownNodes       []PeerConfig         `json:"known_nodes"`
	DACommitteeSize  uint64               `json:"da_committee_size"`
	StartThreshold   uint64               `json:"start_threshold"`
	NextViewTimeout  configTypes.Duration `json:"next_view_timeout"`
	RoundStartDelay  configTypes.Duration `json:"round_start_delay"`
	BuilderTimeout   configTypes.Duration `json:"builder_timeout"`
	BuilderURL       string               `json:"builder_url"`
	StatePeers       []string             `json:"state_peers"`
	ChainConfig      ChainConfig          `json:"chain_config"`
	L1FinalizedBlock *uint64              `json:"l1_finalized_block,omitempty"`
}

// Validate checks that the config is usable by this node.
func (c *NetworkConfig) Validate() error {
	if len(c.KnownNodes) == 0 {
		return errors.New("network config has no known nodes")
	}
	if c.NodeIndex >= uint64(len(c.KnownNodes)) {
		return fmt.Errorf("node index %d out of range of %d known nodes", c.NodeIndex, len(c.KnownNodes))
	}
	if c.DACommitteeSize > uint64(len(c.KnownNodes)) {
		return fmt.Errorf("da committee size %d exceeds %d known nodes", c.DACommitteeSize, len(c.KnownNodes))
	}
	return nil
}
