package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeSystem(c *Clipboard) *string {
	var sys string
	c.system = true
	c.readAll = func() (string, error) { return sys, nil }
	c.writeAll = func(s string) error { sys = s; return nil }
	return &sys
}

func TestInternalRegister(t *testing.T) {
	c := New(false)
	assert.False(t, c.System())

	_, err := c.Paste()
	assert.ErrorIs(t, err, ErrEmpty)

	require.NoError(t, c.Copy("note text\n"))
	got, err := c.Paste()
	require.NoError(t, err)
	assert.Equal(t, "note text\n", got)

	require.NoError(t, c.Copy(""))
	got, err = c.Paste()
	require.NoError(t, err, "an empty copy still counts")
	assert.Equal(t, "", got)
}

func TestSystemClipboard(t *testing.T) {
	c := New(false)
	sys := fakeSystem(c)

	require.NoError(t, c.Copy("shared"))
	assert.Equal(t, "shared", *sys)

	*sys = "from another app"
	got, err := c.Paste()
	require.NoError(t, err)
	assert.Equal(t, "from another app", got)
}

func TestSystemFailureFallsBack(t *testing.T) {
	c := New(false)
	fakeSystem(c)
	boom := errors.New("no display")
	c.writeAll = func(string) error { return boom }
	c.readAll = func() (string, error) { return "", boom }

	err := c.Copy("kept")
	assert.ErrorIs(t, err, boom)

	got, err := c.Paste()
	require.NoError(t, err)
	assert.Equal(t, "kept", got)
}
