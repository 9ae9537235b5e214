package explorer

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Opener implements ports.FolderOpener with the platform file manager
type Opener struct {
	goos string
	run  func(*exec.Cmd) error
}

// NewOpener creates an opener for the running platform
func NewOpener() *Opener {
	return &Opener{
		goos: runtime.GOOS,
		run:  (*exec.Cmd).Start,
	}
}

// OpenFolder reveals dir in the file manager without waiting for it to exit
func (o *Opener) OpenFolder(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("cannot open folder: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cannot open folder: %s is not a directory", dir)
	}

	cmd, err := o.BuildCommand(dir)
	if err != nil {
		return err
	}
	return o.run(cmd)
}

// BuildCommand returns the command that opens dir on this platform
func (o *Opener) BuildCommand(dir string) (*exec.Cmd, error) {
	switch o.goos {
	case "darwin":
		return exec.Command("open", dir), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", dir), nil
	case "windows":
		return exec.Command("explorer", dir), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", o.goos)
	}
}
