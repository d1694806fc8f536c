package setting

import "math"

// Names of the graph database settings in the default catalog.
const (
	ReadOnly                 = "read_only"
	AllowStoreUpgrade        = "allow_store_upgrade"
	KeepLogicalLogs          = "keep_logical_logs"
	DumpConfiguration        = "dump_configuration"
	CacheType                = "cache_type"
	NodeAutoIndexing         = "node_auto_indexing"
	RelationshipAutoIndexing = "relationship_auto_indexing"
	StringBlockSize          = "string_block_size"
	ArrayBlockSize           = "array_block_size"
	LockReadTimeout          = "lock_read_timeout"
	OnlineBackupEnabled      = "online_backup_enabled"
	OnlineBackupServer       = "online_backup_server"
	RemoteShellEnabled       = "remote_shell_enabled"
	RemoteShellPort          = "remote_shell_port"
	StoreDir                 = "store_dir"
	ServerURL                = "neo4j_server_url"
)

// GraphDatabaseSettings returns the catalog of settings understood by the
// embedded graph database.
func GraphDatabaseSettings() *Registry {
	return MustRegistry(
		Setting{Name: ReadOnly, Description: "Only allow read operations", Default: False, Validator: Boolean()},
		Setting{Name: AllowStoreUpgrade, Description: "Allow upgrading an older store format", Default: False, Validator: Boolean()},
		Setting{Name: KeepLogicalLogs, Description: "Keep logical logs after rotation", Default: True, Validator: Boolean()},
		Setting{Name: DumpConfiguration, Description: "Print the effective configuration at startup", Default: False, Validator: Boolean()},
		Setting{Name: CacheType, Description: "Object cache implementation", Default: "soft", Validator: Options("weak", "soft", "strong", "none", "gcr")},
		Setting{Name: NodeAutoIndexing, Description: "Automatically index node properties", Default: False, Validator: Boolean()},
		Setting{Name: RelationshipAutoIndexing, Description: "Automatically index relationship properties", Default: False, Validator: Boolean()},
		Setting{Name: StringBlockSize, Description: "Block size for the string store, in bytes", Default: "120", Validator: Integer(1, math.MaxInt32)},
		Setting{Name: ArrayBlockSize, Description: "Block size for the array store, in bytes", Default: "120", Validator: Integer(1, math.MaxInt32)},
		Setting{Name: LockReadTimeout, Description: "Maximum wait for a read lock", Default: "30s", Validator: Duration()},
		Setting{Name: OnlineBackupEnabled, Description: "Enable the online backup service", Default: False, Validator: Boolean()},
		Setting{Name: OnlineBackupServer, Description: "Listen address of the online backup service", Default: "0.0.0.0:6362", Validator: HostPort()},
		Setting{Name: RemoteShellEnabled, Description: "Enable the remote shell", Default: False, Validator: Boolean()},
		Setting{Name: RemoteShellPort, Description: "Port of the remote shell", Default: "1337", Validator: Port()},
		Setting{Name: StoreDir, Description: "Directory holding the store files", Validator: NonEmpty()},
		Setting{Name: ServerURL, Description: "Public URL of the server", Validator: URL()},
	)
}
