package sink

// Sink is the durable append-only destination for visited-URL records.
type Sink interface {
	// Record appends one visited URL. Errors indicate the output can no
	// longer be trusted and abort the crawl run.
	Record(url string) error

	// Close flushes and releases the destination.
	Close() error
}

// MultiSink fans records out to several sinks, e.g. the text file and
// the visit database together.
//
// Design decision: Modeled after io.MultiWriter but with our Record
// signature; the first failing sink stops the fan-out because partial
// persistence is exactly the silent data loss the fatal-error policy
// exists to prevent.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink creates a Sink writing to all provided sinks in order.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// Record appends the URL to every sink, stopping at the first error.
func (m *MultiSink) Record(url string) error {
	for _, s := range m.sinks {
		if err := s.Record(url); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink, returning the first error encountered.
func (m *MultiSink) Close() error {
	var firstErr error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
