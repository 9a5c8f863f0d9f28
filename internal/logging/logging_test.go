package logging_test

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/epomaker-go/epomakerctl/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logging.LevelTrace, logging.ParseLevel("trace"))
	assert.Equal(t, slog.LevelDebug, logging.ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel(""))
	assert.Equal(t, slog.LevelWarn, logging.ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, logging.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("bogus"))
}

func TestSetupWritesToLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	logger, closers, err := logging.Setup("info", path)
	require.NoError(t, err)
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()
	require.Len(t, closers, 1)
	logger.Info("hello", "key", "value")
}

func TestRawLoggerHexDumpsSends(t *testing.T) {
	var buf bytes.Buffer
	rl := logging.NewRaw(&buf)
	rl.LogSend(3, []byte{0xDE, 0xAD, 0xBE, 0xEF})
	assert.Contains(t, buf.String(), "de ad be ef")
	assert.Contains(t, buf.String(), "report[3]")
}

func TestRawLoggerNilWriterIsNoOp(t *testing.T) {
	rl := logging.NewRaw(nil)
	rl.LogSend(0, []byte{0x01})
}
