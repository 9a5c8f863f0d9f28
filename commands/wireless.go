package commands

import (
	"github.com/epomaker-go/epomakerctl/internal/kberrors"
	"github.com/epomaker-go/epomakerctl/report"
)

// wirelessInitChunks is the literal handshake sequence that negotiates the
// 2.4 GHz dongle into a ready state after power-up. Each eight-byte chunk
// ends with its checksum byte already baked in; the short "fc" and "f60a"
// chunks carry none. None of these reports use Report's automatic checksum
// mechanism.
var wirelessInitChunks = []string{
	"f60a",
	"8f00000000000070",
	"fc",
	"8700000000000078",
	"fc",
	"800000000000007f",
	"fc",
	"ad00000000000052",
	"fc",
	"840000000000007b",
	"fc",
	"850000000000007a",
	"fc",
	"8700000000000078",
	"fc",
	"8600000000000079",
	"fc",
	"910000000000006e",
	"fc",
	"920000000000006d",
	"fc",
	"9700000000000068fc",
}

// NewWirelessInitCommand builds the dongle-negotiation handshake sent once
// before the first wireless command of a session.
func NewWirelessInitCommand() (*report.Command, error) {
	structure := report.CommandStructure{NStarter: 1, NData: len(wirelessInitChunks), NFooter: 0}
	cmd, err := report.NewCommandBuilder(structure)
	if err != nil {
		return nil, err
	}

	starter, err := report.New(report.Options{HeaderTemplate: "fe40", Index: 0})
	if err != nil {
		return nil, err
	}
	if err := cmd.Insert(starter); err != nil {
		return nil, err
	}

	for i, chunk := range wirelessInitChunks {
		rep, err := report.New(report.Options{HeaderTemplate: chunk, Index: i + 1})
		if err != nil {
			return nil, err
		}
		if err := cmd.Insert(rep); err != nil {
			return nil, err
		}
	}

	if !cmd.IsPrepared() {
		return nil, kberrors.State("wireless init command incomplete after carve")
	}
	return cmd, nil
}
