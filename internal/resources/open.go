package resources

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// Opener launches a URL outside the terminal.
type Opener func(ctx context.Context, url string) error

// OpenInBrowser hands url to the platform's default handler.
func OpenInBrowser(ctx context.Context, url string) error {
	name, args := openCommand(runtime.GOOS)
	cmd := exec.CommandContext(ctx, name, append(args, url)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	// The handler detaches; reap it so it does not linger as a zombie.
	go cmd.Wait()
	return nil
}

func openCommand(goos string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler"}
	default:
		return "xdg-open", nil
	}
}
