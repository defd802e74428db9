//go:build e2e && unix

package e2e

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHelpPager(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err)
	require.NoError(t, tf.StartApp())
	require.True(t, tf.Ready(), "Should receive ready signal")

	tf.SendKeys(KeyF1)
	require.True(t, tf.SeePlain("tutorselect help"), "Help should open in the pager")
	require.True(t, tf.SeePlain("Option list"))

	// Quit the pager and ensure the form is back
	tf.ClearOutput()
	tf.SendKeys("q")
	require.True(t, tf.SeePlain("Dados do Animal"), "Should return to the form after closing pager")
}
