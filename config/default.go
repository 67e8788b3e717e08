package config

// DefaultValues is the default configuration
const DefaultValues = `
[Log]
Environment = "development" # "production" or "development"
Level = "info"
Outputs = ["stderr"]

[Genesis]
ChainID = 35353
MaxBlockSize = 10240
BaseFee = 0
FeeRecipient = "0x0000000000000000000000000000000000000000"
PrefundedAccounts = []

[L1]
PollInterval = "7s"
RequestTimeout = "10s"
MaxBackoff = "1m"
BlockRetries = 5
CacheSize = 128
	[L1.Etherman]
	URL = "http://localhost:8545"
	L1ChainID = 0

[Catchup]
Peers = []
Retries = 3
RequestTimeout = "5s"
RetryInterval = "500ms"
MaxAccountsPerRequest = 1000
	[Catchup.Server]
	Enabled = false
	Host = "0.0.0.0"
	Port = 8770

[State]
ArchivePath = ""
ArchiveCache = 16
ArchiveHandles = 16

[Persistence]
Type = "sqlite"
Path = "/tmp/sequencer/consensus.sqlite"
DSN = ""

[Metrics]
Host = "0.0.0.0"
Port = 9091
Enabled = false
`
