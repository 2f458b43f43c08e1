// internal/i18n/i18n_test.go
package i18n

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeLoadsLocalesFromConfiguredPath(t *testing.T) {
	dir := t.TempDir()

	en := `{"cart.empty": "Your cart is empty!", "order.placed": "Order #%s placed successfully!"}`
	hi := `{"cart.empty": "आपकी कार्ट खाली है!"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"), []byte(en), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hi.json"), []byte(hi), 0o644))

	require.NoError(t, Initialize("en", dir))

	assert.Equal(t, "Your cart is empty!", T("en", "cart.empty"))
	assert.Equal(t, "आपकी कार्ट खाली है!", T("hi", "cart.empty"))

	// Formatted messages interpolate their arguments
	assert.Equal(t, "Order #42 placed successfully!", T("en", "order.placed", "42"))

	// Unknown language falls back to the default locale
	assert.Equal(t, "Your cart is empty!", T("fr", "cart.empty"))

	// A key missing from the requested locale falls back too
	assert.Equal(t, "Order #7 placed successfully!", T("hi", "order.placed", "7"))

	// Unknown keys come back verbatim
	assert.Equal(t, "no.such.key", T("en", "no.such.key"))
}
