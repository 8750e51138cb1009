package log

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestWithFieldDoesNotShareBacking(t *testing.T) {
	req := require.New(t)
	base := Log().WithField("a", 1)
	l1 := base.WithField("b", 2)
	l2 := base.WithField("c", 3)

	req.Equal([]interface{}{"a", 1, "b", 2}, l1.fields)
	req.Equal([]interface{}{"a", 1, "c", 3}, l2.fields)
	req.Len(base.fields, 2)
}

func TestSetLevel(t *testing.T) {
	req := require.New(t)
	defer func() { req.NoError(SetLevel("info")) }()

	req.NoError(SetLevel("debug"))
	req.True(level.Enabled(zapcore.DebugLevel))
	req.Error(SetLevel("loud"))
}
