package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"":      zapcore.InfoLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNew_WritesToFile(t *testing.T) {
	prev := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(prev) })

	path := filepath.Join(t.TempDir(), "browserhist.log")
	log, err := New("debug", false, path)
	require.NoError(t, err)

	log.Info("favicon cached", String("domain", "example.com"), Int("bytes", 42))
	log.Debug("favicon download failed", Duration("timeout", 750*time.Millisecond))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"domain":"example.com"`)
	assert.Contains(t, string(data), `"timeout":0.75`)
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New("verbose", true, "")
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Error("ignored", Error(assert.AnError))
	assert.NoError(t, log.Sync())
}
