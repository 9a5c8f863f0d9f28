package transport

import "sync"

// dryRunSender validates and records every report without ever opening a
// device. This is the basis of the unit test suite (see §4.7: "dry-run
// mode ... validates and prints every report").
type dryRunSender struct {
	mu   sync.Mutex
	sent [][]byte
}

func newDryRunSender() *dryRunSender {
	return &dryRunSender{}
}

func (d *dryRunSender) sendFeatureReport(b []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	cp := make([]byte, len(b))
	copy(cp, b)
	d.sent = append(d.sent, cp)
	return nil
}

func (d *dryRunSender) close() error { return nil }

// Sent returns every report recorded so far, in send order. Exposed for
// tests that need to assert on what a dry-run Transport would have
// transmitted.
func (d *dryRunSender) Sent() [][]byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([][]byte, len(d.sent))
	copy(out, d.sent)
	return out
}

// SentReports exposes the dry-run sender's recorded reports for a
// Transport opened with Options{DryRun: true}, or nil otherwise.
func (t *Transport) SentReports() [][]byte {
	if d, ok := t.send.(*dryRunSender); ok {
		return d.Sent()
	}
	return nil
}
