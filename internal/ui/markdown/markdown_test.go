package markdown

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	r, err := New(80)
	require.NoError(t, err)
	require.Equal(t, 80, r.Width())
}

func TestRender(t *testing.T) {
	r, err := New(80)
	require.NoError(t, err)

	out, err := r.Render("# Title\n\nsome *styled* text\n")
	require.NoError(t, err)

	stripped := ansi.Strip(out)
	require.Contains(t, stripped, "Title")
	require.Contains(t, stripped, "styled")
}

func TestRender_Table(t *testing.T) {
	r, err := New(60)
	require.NoError(t, err)

	out, err := r.Render("| a | b |\n|---|---|\n| 1 | 2 |\n")
	require.NoError(t, err)

	stripped := ansi.Strip(out)
	require.Contains(t, stripped, "a")
	require.Contains(t, stripped, "b")
}
