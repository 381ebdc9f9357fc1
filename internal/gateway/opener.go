package gateway

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Opener launches url in a browser.
type Opener func(ctx context.Context, url string) error

// SystemOpener returns an Opener that runs command with the URL appended,
// or the platform's default launcher when command is empty.
func SystemOpener(command string) Opener {
	return func(ctx context.Context, url string) error {
		name, args, err := launcher(command, runtime.GOOS)
		if err != nil {
			return err
		}
		cmd := exec.Command(name, append(args, url)...)
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("start %s: %w", name, err)
		}
		go func() { _ = cmd.Wait() }()
		return nil
	}
}

func launcher(command, goos string) (string, []string, error) {
	if fields := strings.Fields(command); len(fields) > 0 {
		return fields[0], fields[1:], nil
	}
	switch goos {
	case "darwin":
		return "open", nil, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", nil, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}, nil
	}
	return "", nil, fmt.Errorf("no browser launcher for %s, set open_command", goos)
}
