package state

// Config is the configuration of the fee ledger store
type Config struct {
	// ArchivePath is the directory of the on disk archive that retains every
	// committed ledger node. Empty disables the archive.
	ArchivePath string `mapstructure:"ArchivePath"`
	// ArchiveCache is the leveldb cache size in MB
	ArchiveCache int `mapstructure:"ArchiveCache"`
	// ArchiveHandles is the number of open files of the archive
	ArchiveHandles int `mapstructure:"ArchiveHandles"`
}
