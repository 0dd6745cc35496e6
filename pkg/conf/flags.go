package conf

// Flags shared by every experiment binary: metadata backend selection and
// connection settings for the supported databases.
var (
	// DefaultMetadataDB selects where experiment metadata is recorded.
	DefaultMetadataDB = NewStringFlag("metadata_db", "Database for experiment metadata: none, cassandra or influxdb", "none")

	// CassandraAddress represents the cassandra address flag.
	CassandraAddress = NewStringFlag("cassandra_addr", "Address of Cassandra DB endpoint", "127.0.0.1")
	// CassandraPort represents the cassandra port flag.
	CassandraPort = NewIntFlag("cassandra_port", "Port of Cassandra DB endpoint", 9042)
	// CassandraUsername holds the user name which will be presented when connecting to the cluster.
	CassandraUsername = NewStringFlag("cassandra_username", "The user name which will be presented when connecting to the cluster", "")
	// CassandraPassword holds the password which will be presented when connecting to the cluster.
	CassandraPassword = NewStringFlag("cassandra_password", "The password which will be presented when connecting to the cluster", "")
	// CassandraConnectionTimeout limits time spent establishing the connection, in seconds.
	CassandraConnectionTimeout = NewIntFlag("cassandra_connection_timeout", "Initial connection timeout in seconds", 5)
	// CassandraTimeout limits time spent on a single query, in seconds.
	CassandraTimeout = NewIntFlag("cassandra_timeout", "Query timeout in seconds", 5)
	// CassandraCreateKeyspace enables keyspace creation on connect.
	CassandraCreateKeyspace = NewBoolFlag("cassandra_create_keyspace", "Create the keyspace when connecting", true)
	// CassandraKeyspaceName holds the keyspace metadata is stored in.
	CassandraKeyspaceName = NewStringFlag("cassandra_keyspace_name", "Keyspace for experiment metadata", "bandits")
	// CassandraIgnorePeerAddr disables cluster peer discovery.
	CassandraIgnorePeerAddr = NewBoolFlag("cassandra_ignore_peer_addr", "Ignore peer addresses reported by the cluster", false)
	// CassandraInitialHostLookup toggles the initial host lookup on connect.
	CassandraInitialHostLookup = NewBoolFlag("cassandra_initial_host_lookup", "Perform initial host lookup on connect", true)
	// CassandraSslEnabled determines whether the cassandra connection uses SSL.
	CassandraSslEnabled = NewBoolFlag("cassandra_ssl", "Determines whether the cassandra connection is encrypted", false)
	// CassandraSslHostValidation enables server certificate verification.
	CassandraSslHostValidation = NewBoolFlag("cassandra_ssl_host_validation", "Verify the server certificate against its hostname", false)
	// CassandraSslCAPath points at the CA certificate.
	CassandraSslCAPath = NewStringFlag("cassandra_ssl_ca_path", "Path to the CA certificate", "")
	// CassandraSslCertPath points at the client certificate.
	CassandraSslCertPath = NewStringFlag("cassandra_ssl_cert_path", "Path to the client certificate", "")
	// CassandraSslKeyPath points at the client key.
	CassandraSslKeyPath = NewStringFlag("cassandra_ssl_key_path", "Path to the client key", "")

	// InfluxDBAddress represents the influxdb address flag.
	InfluxDBAddress = NewStringFlag("influxdb_addr", "Address of InfluxDB endpoint", "127.0.0.1")
	// InfluxDBPort represents the influxdb port flag.
	InfluxDBPort = NewIntFlag("influxdb_port", "Port of InfluxDB endpoint", 8086)
	// InfluxDBUsername holds the user name presented when connecting.
	InfluxDBUsername = NewStringFlag("influxdb_username", "The user name which will be presented when connecting", "")
	// InfluxDBPassword holds the password presented when connecting.
	InfluxDBPassword = NewStringFlag("influxdb_password", "The password which will be presented when connecting", "")
	// InfluxDBName holds the database metadata is stored in.
	InfluxDBName = NewStringFlag("influxdb_name", "InfluxDB database for experiment metadata", "bandits")
	// InfluxDBInsecureSkipVerify disables certificate verification.
	InfluxDBInsecureSkipVerify = NewBoolFlag("influxdb_insecure_skip_verify", "Skip verification of the server certificate chain", false)
	// InfluxDBCreateDatabase enables database creation on connect.
	InfluxDBCreateDatabase = NewBoolFlag("influxdb_create_database", "Create the database when connecting", true)
)
