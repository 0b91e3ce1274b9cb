package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"runtime"
)

func openFolderCommand(goos, path string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", path), nil
	case "windows":
		return exec.Command("explorer", path), nil
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", path), nil
	default:
		return nil, fmt.Errorf("unsupported OS: %s", goos)
	}
}

// openFolder shows path in the platform file manager, creating it if needed.
func openFolder(path string) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		log.Printf("Failed to create %s: %v", path, err)
		return
	}

	cmd, err := openFolderCommand(runtime.GOOS, path)
	if err != nil {
		log.Println(err)
		return
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open %s: %v", path, err)
		return
	}
	go cmd.Wait()
}
