package etree_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/zealdoc"
	"github.com/fwojciec/zealdoc/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePlist(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Info.plist")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestPlistReader_ReadPlist(t *testing.T) {
	t.Parallel()

	t.Run("reads strings and booleans", func(t *testing.T) {
		t.Parallel()

		path := writePlist(t, `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleIdentifier</key>
	<string>go</string>
	<key>CFBundleName</key>
	<string>Go Standard Library</string>
	<key>DocSetPlatformFamily</key>
	<string>go</string>
	<key>isDashDocset</key>
	<true/>
	<key>isJavaScriptEnabled</key>
	<false/>
</dict>
</plist>`)

		plist, err := etree.NewPlistReader().ReadPlist(path)
		require.NoError(t, err)

		assert.Equal(t, zealdoc.Plist{
			"CFBundleIdentifier":   "go",
			"CFBundleName":         "Go Standard Library",
			"DocSetPlatformFamily": "go",
			"isDashDocset":         true,
			"isJavaScriptEnabled":  false,
		}, plist)
	})

	t.Run("skips unsupported value types", func(t *testing.T) {
		t.Parallel()

		path := writePlist(t, `<plist version="1.0"><dict>
	<key>Count</key>
	<integer>3</integer>
	<key>Items</key>
	<array><string>a</string></array>
	<key>CFBundleName</key>
	<string>Qt</string>
</dict></plist>`)

		plist, err := etree.NewPlistReader().ReadPlist(path)
		require.NoError(t, err)

		assert.Equal(t, zealdoc.Plist{"CFBundleName": "Qt"}, plist)
	})

	t.Run("ignores trailing key without value", func(t *testing.T) {
		t.Parallel()

		path := writePlist(t, `<plist><dict><key>CFBundleName</key><string>Qt</string><key>Dangling</key></dict></plist>`)

		plist, err := etree.NewPlistReader().ReadPlist(path)
		require.NoError(t, err)

		assert.Equal(t, zealdoc.Plist{"CFBundleName": "Qt"}, plist)
	})

	t.Run("returns error for malformed xml", func(t *testing.T) {
		t.Parallel()

		path := writePlist(t, `<plist><dict><key>CFBundleName</key><string>Qt</dict>`)

		_, err := etree.NewPlistReader().ReadPlist(path)
		require.Error(t, err)
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := etree.NewPlistReader().ReadPlist(filepath.Join(t.TempDir(), "Info.plist"))
		require.Error(t, err)
	})
}
