package cli

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Execute implements the go-flags Commander interface for OpenCommand.
func (c *OpenCommand) Execute(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("open requires exactly one URL")
	}

	u, err := url.Parse(args[0])
	if err != nil || u.Scheme == "" {
		return fmt.Errorf("invalid URL: %s", args[0])
	}

	launch := c.launch
	if launch == nil {
		launch = openURL
	}
	if err := launch(u.String()); err != nil {
		return fmt.Errorf("open %s: %w", u, err)
	}

	if c.globals != nil && !c.globals.JSON {
		fmt.Printf("Opened %s\n", u)
	}
	return nil
}

// openURL hands rawURL to the platform's default browser launcher.
func openURL(rawURL string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	case "darwin":
		cmd = exec.Command("open", rawURL)
	default:
		cmd = exec.Command("xdg-open", rawURL)
	}
	return cmd.Start()
}
