// Package sysopen hands a file to the platform's default "open with
// associated application" mechanism. Fire and forget: the viewer process
// is started and never waited on.
package sysopen

import (
	"fmt"
	"os/exec"
	"runtime"
)

func Open(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch system opener: %w", err)
	}
	// Reap the child in the background so it does not linger as a zombie.
	go cmd.Wait()
	return nil
}
