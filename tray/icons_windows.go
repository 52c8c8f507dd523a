//go:build windows

package tray

// The Windows tray wants .ico data.
func platformIcon(pngData []byte) []byte {
	return encodeICO(pngData, iconSize)
}
