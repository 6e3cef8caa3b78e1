package observability

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoverPanic(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(logrus.InfoLevel, &buf)

	func() {
		defer RecoverPanic(logger, "test worker")
		panic("boom")
	}()

	out := buf.String()
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "test worker")
}

func TestMustRecover(t *testing.T) {
	var err error
	func() {
		defer func() { err = MustRecover(recover()) }()
		panic("boom")
	}()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	func() {
		defer func() { err = MustRecover(recover()) }()
	}()
	assert.NoError(t, err)
}
