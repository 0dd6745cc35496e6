package metadata

import (
	"fmt"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/joeclark-phd/bandits/pkg/conf"
)

// fakeBackend collects the recorded maps so the helpers can be tested
// without a database.
type fakeBackend struct {
	records map[string][]map[string]string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{records: map[string][]map[string]string{}}
}

func (f *fakeBackend) Record(key, value, kind string) error {
	return f.RecordMap(map[string]string{key: value}, kind)
}

func (f *fakeBackend) RecordMap(metadata map[string]string, kind string) error {
	f.records[kind] = append(f.records[kind], metadata)
	return nil
}

func (f *fakeBackend) GetByKind(kind string) (map[string]string, error) {
	maps := f.records[kind]
	if len(maps) != 1 {
		return nil, fmt.Errorf("kind %q absent or ambiguous", kind)
	}
	return maps[0], nil
}

func (f *fakeBackend) Clear() error {
	f.records = map[string][]map[string]string{}
	return nil
}

func TestDefaultConfigs(t *testing.T) {
	Convey("While using the metadata package", t, func() {
		Convey("InfluxDB default config shall mirror the flag defaults", func() {
			influxDefConf := DefaultInfluxDBConfig()
			So(influxDefConf.dbName, ShouldEqual, conf.InfluxDBName.Value())
			So(influxDefConf.httpConfig.Addr, ShouldEqual, fmt.Sprintf("http://%s:%d", conf.InfluxDBAddress.Value(), conf.InfluxDBPort.Value()))
			So(influxDefConf.httpConfig.Username, ShouldEqual, conf.InfluxDBUsername.Value())
			So(influxDefConf.httpConfig.Password, ShouldEqual, conf.InfluxDBPassword.Value())
		})

		Convey("Cassandra default config shall mirror the flag defaults", func() {
			cassandraDefConf := DefaultCassandraConfig()
			So(cassandraDefConf.Address, ShouldEqual, conf.CassandraAddress.Value())
			So(cassandraDefConf.Port, ShouldEqual, conf.CassandraPort.Value())
			So(cassandraDefConf.KeyspaceName, ShouldEqual, conf.CassandraKeyspaceName.Value())
			So(cassandraDefConf.Timeout, ShouldEqual, time.Duration(conf.CassandraTimeout.Value())*time.Second)
		})

		Convey("NewDefault shall reject an unknown backend", func() {
			// The default metadata_db value is "none" which no backend serves.
			_, err := NewDefault("some-experiment")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestRecordRuntimeEnv(t *testing.T) {
	Convey("While recording the runtime environment", t, func() {
		backend := newFakeBackend()

		err := RecordRuntimeEnv(backend, time.Now())
		So(err, ShouldBeNil)

		Convey("Flags should be recorded with the flags kind", func() {
			flags, err := backend.GetByKind(TypeFlags)
			So(err, ShouldBeNil)
			So(flags, ShouldContainKey, "metadata_db")
		})

		Convey("Platform details should be recorded", func() {
			platform, err := backend.GetByKind(TypePlatform)
			So(err, ShouldBeNil)
			So(platform, ShouldContainKey, "cpus")
			So(platform, ShouldContainKey, "go_version")
		})

		Convey("Host and start time should be recorded under the empty kind", func() {
			host, err := backend.GetByKind(TypeEmpty)
			So(err, ShouldBeNil)
			So(host, ShouldContainKey, "host")
			So(host, ShouldContainKey, "time")
		})
	})
}
