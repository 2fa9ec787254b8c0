package ostreetar

import (
	"sync"

	"github.com/docker/go-metrics"
)

// exportNamespace is the single docker/go-metrics namespace this package
// registers: one namespace per concern, registered once at package init.
var exportNamespace = metrics.NewNamespace("ostreetar", "export", nil)

var (
	objectsEmittedCounter = exportNamespace.NewLabeledCounter("objects_emitted_total", "objects written to the export stream, by kind", "kind")
	bytesWrittenGauge     = exportNamespace.NewGauge("bytes_written", "regular-file content bytes written to the export stream by the current run", metrics.Bytes)
)

var registerOnce sync.Once

func init() {
	registerOnce.Do(func() {
		metrics.Register(exportNamespace)
	})
}

// stats accumulates the per-run counts this package also exposes through
// the prometheus namespace above; kept locally too so a caller can log a
// single end-of-run summary without scraping prometheus.
type stats struct {
	objectsByKind map[ObjectType]int
	bytesWritten  int64
}

func newStats() *stats {
	return &stats{objectsByKind: make(map[ObjectType]int)}
}

func (s *stats) recordObject(t ObjectType) {
	s.objectsByKind[t]++
	objectsEmittedCounter.WithValues(t.String()).Inc()
}

func (s *stats) recordBytes(n int64) {
	s.bytesWritten += n
	bytesWrittenGauge.Set(float64(s.bytesWritten))
}

func (s *stats) total() int {
	total := 0
	for _, n := range s.objectsByKind {
		total += n
	}
	return total
}
