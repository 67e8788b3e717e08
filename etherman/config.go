package etherman

// Config represents the configuration of the etherman
type Config struct {
	// URL is the URL of the Ethereum node for L1
	URL string `mapstructure:"URL"`
	// L1ChainID is the chain ID of the L1. If 0 it is requested from the node
	L1ChainID uint64 `mapstructure:"L1ChainID"`
	// HTTPHeaders are the headers to be used in the HTTP requests
	HTTPHeaders map[string]string `mapstructure:"HTTPHeaders"`
}
