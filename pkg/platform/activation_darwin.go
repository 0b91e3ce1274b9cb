//go:build darwin

package platform

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa
#import <Cocoa/Cocoa.h>

void hideDockIcon(void) {
    [NSApp setActivationPolicy:NSApplicationActivationPolicyAccessory];
}
*/
import "C"
import "log"

// HideDockIcon turns the app into a menu bar only accessory on macOS.
func HideDockIcon() {
	log.Println("[PLATFORM] Switching to accessory activation policy")
	C.hideDockIcon()
}
