package logging

import (
	"bytes"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLogLevel(t *testing.T) {
	defer SetLogLevel("info")

	require.NoError(t, SetLogLevel("debug"))
	assert.Equal(t, logrus.DebugLevel, GetLogger().GetLevel())

	err := SetLogLevel("chatty")
	assert.Error(t, err)
	assert.Equal(t, logrus.DebugLevel, GetLogger().GetLevel(), "invalid level must not change the current one")
}

func TestSetOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	GetLogger().WithField("metric", "bfs_time").Info("chart written")
	assert.Contains(t, buf.String(), "metric=bfs_time")
	assert.Contains(t, buf.String(), "chart written")
}
