package catchup

import (
	"context"
	"fmt"

	"github.com/0xPolygon/zkevm-sequencer-core/log"
	"github.com/0xPolygon/zkevm-sequencer-core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/hashicorp/go-multierror"
)

const fetchAccountsMethod = "catchup_fetchAccounts"

// Peer is a remote node able to serve state fragments
type Peer interface {
	FetchAccounts(ctx context.Context, req types.FetchRequest) (*types.StateFragment, error)
}

// rpcPeer talks to the catchup API of a peer
type rpcPeer struct {
	client *rpc.Client
}

// NewRPCPeer wraps a JSON-RPC client connected to a peer
func NewRPCPeer(client *rpc.Client) Peer {
	return &rpcPeer{client: client}
}

// FetchAccounts calls catchup_fetchAccounts on the peer
func (p *rpcPeer) FetchAccounts(ctx context.Context, req types.FetchRequest) (*types.StateFragment, error) {
	var fragment types.StateFragment
	if err := p.client.CallContext(ctx, &fragment, fetchAccountsMethod, req); err != nil {
		return nil, err
	}
	return &fragment, nil
}

type namedPeer struct {
	name string
	peer Peer
}

// StatePeers is the ordered list of remote catchup sources
type StatePeers struct {
	peers []namedPeer
}

// NewStatePeers dials every URL. Connections to http endpoints are lazy,
// so unreachable peers only fail when used.
func NewStatePeers(ctx context.Context, urls []string) (*StatePeers, error) {
	sp := &StatePeers{}
	for _, url := range urls {
		client, err := rpc.DialContext(ctx, url)
		if err != nil {
			sp.Close()
			return nil, fmt.Errorf("dialing state peer %s: %w", url, err)
		}
		sp.Add(url, NewRPCPeer(client))
	}
	return sp, nil
}

// Add appends a peer, tried after the existing ones
func (sp *StatePeers) Add(name string, peer Peer) {
	sp.peers = append(sp.peers, namedPeer{name: name, peer: peer})
}

// Len returns the number of peers
func (sp *StatePeers) Len() int {
	return len(sp.peers)
}

// Fetch asks every peer in order and returns the first fragment that
// answers the request.
func (sp *StatePeers) Fetch(ctx context.Context, req types.FetchRequest) (*types.StateFragment, error) {
	if len(sp.peers) == 0 {
		return nil, fmt.Errorf("%w: no state peers", types.ErrMerkleTree)
	}
	var result *multierror.Error
	for _, p := range sp.peers {
		fragment, err := p.peer.FetchAccounts(ctx, req)
		if err == nil {
			err = verify(req, fragment)
		}
		if err != nil {
			log.Debugf("state peer %s failed: %v", p.name, err)
			result = multierror.Append(result, fmt.Errorf("%s: %w", p.name, err))
			continue
		}
		return fragment, nil
	}
	return nil, fmt.Errorf("%w: all state peers failed: %w", types.ErrMerkleTree, result.ErrorOrNil())
}

// Close closes the connections to peers dialed by NewStatePeers
func (sp *StatePeers) Close() {
	for _, p := range sp.peers {
		if rp, ok := p.peer.(*rpcPeer); ok {
			rp.client.Close()
		}
	}
}
