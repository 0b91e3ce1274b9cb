//go:build !darwin

package platform

// HideDockIcon is a no-op outside macOS, where tray apps have no dock icon.
func HideDockIcon() {}
