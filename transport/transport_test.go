package transport_test

import (
	"context"
	"testing"
	"time"

	"github.com/epomaker-go/epomakerctl/commands"
	"github.com/epomaker-go/epomakerctl/report"
	"github.com/epomaker-go/epomakerctl/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S7 — dry-run: no device is opened, every report is validated and recorded.
func TestDryRunTransportRecordsReportsWithoutDevice(t *testing.T) {
	tr, err := transport.Open(context.Background(), transport.Options{DryRun: true})
	require.NoError(t, err)
	defer tr.Close()

	cmd, err := commands.NewClearScreenCommand()
	require.NoError(t, err)
	require.NoError(t, tr.Send(cmd))

	sent := tr.SentReports()
	require.Len(t, sent, 1)
	assert.Equal(t, 64, len(sent[0]))
	assert.Equal(t, byte(0xac), sent[0][0])
}

func TestDryRunTransportPreservesOrder(t *testing.T) {
	tr, err := transport.Open(context.Background(), transport.Options{DryRun: true})
	require.NoError(t, err)
	defer tr.Close()

	cmd, err := commands.NewTimeCommand(time.Now())
	require.NoError(t, err)
	require.NoError(t, tr.Send(cmd))

	cmd2, err := commands.NewPollCommand()
	require.NoError(t, err)
	require.NoError(t, tr.Send(cmd2))

	sent := tr.SentReports()
	require.Len(t, sent, 2)
	assert.Equal(t, byte(0x28), sent[0][0])
	assert.Equal(t, byte(0xf7), sent[1][0])
}

func TestTransportCloseIsIdempotent(t *testing.T) {
	tr, err := transport.Open(context.Background(), transport.Options{DryRun: true})
	require.NoError(t, err)
	require.NoError(t, tr.Close())
	require.NoError(t, tr.Close())
}

func TestTransportRejectsSendAfterClose(t *testing.T) {
	tr, err := transport.Open(context.Background(), transport.Options{DryRun: true})
	require.NoError(t, err)
	require.NoError(t, tr.Close())

	cmd, err := commands.NewPollCommand()
	require.NoError(t, err)
	assert.Error(t, tr.Send(cmd))
}

func TestTransportRejectsUnpreparedCommand(t *testing.T) {
	tr, err := transport.Open(context.Background(), transport.Options{DryRun: true})
	require.NoError(t, err)
	defer tr.Close()

	// A command missing a declared data slot must never transmit.
	cmd, err := report.NewCommandBuilder(report.CommandStructure{NStarter: 1, NData: 1})
	require.NoError(t, err)
	starter, err := report.New(report.Options{HeaderTemplate: "00", Index: 0})
	require.NoError(t, err)
	require.NoError(t, cmd.Insert(starter))

	err = tr.Send(cmd)
	assert.Error(t, err)
}
