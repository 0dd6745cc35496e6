// Package metadata records experiment metadata (flags, environment,
// treatments, result summaries) in a database, tagged with the experiment
// id, so a finished experiment can be identified and reproduced later.
package metadata

import (
	"fmt"

	"github.com/joeclark-phd/bandits/pkg/conf"
)

// Predefined kinds of metadata. The kind groups metadata maps by their
// common characteristics: TypeFlags for parameters passed to the
// experiment binary, TypeEnviron for environment variables, TypePlatform
// for recorded host characteristics, TypeTreatments for the experimental
// design and TypeResults for the aggregated outcomes. The kind is just a
// string and each experiment may define its own kinds.
const (
	TypeEmpty      = ""
	TypeFlags      = "flags"
	TypeEnviron    = "environ"
	TypePlatform   = "platform"
	TypeTreatments = "treatments"
	TypeResults    = "results"
)

// Metadata defines the methods which must be supported by a DB backend.
type Metadata interface {
	// Record stores a key and value and associates them with the experiment id.
	Record(key string, value string, kind string) error
	// RecordMap stores a key and value map and associates it with the experiment id.
	RecordMap(metadata map[string]string, kind string) error
	// GetByKind retrieves a single metadata kind from the database.
	// Returns an error if the kind is absent or ambiguous.
	GetByKind(kind string) (map[string]string, error)
	// Clear deletes all metadata entries associated with the current experiment id.
	Clear() error
}

// NewDefault initializes a metadata backend selected by the metadata_db
// flag (or the BANDITS_METADATA_DB environment variable).
func NewDefault(experimentID string) (Metadata, error) {
	switch conf.DefaultMetadataDB.Value() {
	case "cassandra":
		return NewCassandra(experimentID, DefaultCassandraConfig())
	case "influxdb":
		return NewInfluxDB(experimentID, DefaultInfluxDBConfig())
	}

	return nil, fmt.Errorf("unsupported database for metadata: %s", conf.DefaultMetadataDB.Value())
}
