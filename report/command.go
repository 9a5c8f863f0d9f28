package report

import (
	"fmt"

	"github.com/epomaker-go/epomakerctl/internal/kberrors"
)

// CommandStructure describes the shape of a Command: how many starter,
// data, and footer reports it carries, in that order.
type CommandStructure struct {
	NStarter int
	NData    int
	NFooter  int
}

// Total returns the number of reports a Command with this structure holds.
func (s CommandStructure) Total() int { return s.NStarter + s.NData + s.NFooter }

// Command is an ordered sequence of Reports forming one logical device
// operation. Reports are inserted by index and the Command is "prepared"
// once every declared slot is filled; only prepared commands may be
// turned into a byte stream for transmission.
type Command struct {
	structure CommandStructure
	reports   []*Report
	filled    int
}

// NewCommandBuilder allocates an empty Command for the given structure.
// NStarter must be at least 1.
func NewCommandBuilder(structure CommandStructure) (*Command, error) {
	if structure.NStarter < 1 {
		return nil, kberrors.State("command structure requires at least one starter report")
	}
	return &Command{
		structure: structure,
		reports:   make([]*Report, structure.Total()),
	}, nil
}

// Insert places r at its declared index. Fails if the slot is already
// filled or the index is out of range — both are programming bugs, never
// retried.
func (c *Command) Insert(r *Report) error {
	idx := r.Index()
	if idx < 0 || idx >= len(c.reports) {
		return kberrors.State(fmt.Sprintf("report index %d out of range [0,%d)", idx, len(c.reports)))
	}
	if c.reports[idx] != nil {
		return kberrors.State(fmt.Sprintf("report index %d already inserted", idx))
	}
	c.reports[idx] = r
	c.filled++
	return nil
}

// IsPrepared reports whether every declared slot has been filled.
func (c *Command) IsPrepared() bool {
	return c.filled == len(c.reports)
}

// Structure returns the CommandStructure this Command was built with.
func (c *Command) Structure() CommandStructure { return c.structure }

// Len returns the total number of report slots.
func (c *Command) Len() int { return len(c.reports) }

// Reports returns the inserted reports in ascending index order. Only
// meaningful once IsPrepared is true; earlier it may contain nils.
func (c *Command) Reports() []*Report {
	return c.reports
}

// BytesStream returns the 64-byte wire image of every report, in
// ascending index order. Fails if the command isn't fully prepared.
func (c *Command) BytesStream() ([][Width]byte, error) {
	if !c.IsPrepared() {
		return nil, kberrors.State("command transmitted before every report was prepared")
	}
	out := make([][Width]byte, len(c.reports))
	for i, r := range c.reports {
		out[i] = r.Bytes()
	}
	return out, nil
}
