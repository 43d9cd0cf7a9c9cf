package csvhist

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
)

// Viewer presents an image file and returns when it is dismissed.
type Viewer interface {
	View(ctx context.Context, path string) error
}

// CommandViewer opens files with an external program and waits for it to exit.
type CommandViewer struct {
	Name string
	Args []string

	// Detached is set for programs that hand the file over and exit before it is displayed,
	// View then waits for a line from Confirm (os.Stdin if nil) after printing a prompt
	// to Prompt (os.Stderr if nil).
	Detached bool
	Confirm  io.Reader
	Prompt   io.Writer
}

// blockingViewers stay in foreground until image window is closed.
var blockingViewers = []string{"feh", "nsxiv", "sxiv", "display"}

// DefaultViewer returns a platform image viewer.
//
// On platforms other than macOS and Windows, the first available program
// from a list of blocking viewers is used, xdg-open otherwise.
func DefaultViewer() CommandViewer {
	switch runtime.GOOS {
	case "darwin":
		return CommandViewer{Name: "open", Args: []string{"-W"}}
	case "windows":
		return CommandViewer{Name: "cmd", Args: []string{"/c", "start", "/wait", ""}}
	default:
		return lookupViewer(blockingViewers, exec.LookPath)
	}
}

func lookupViewer(names []string, lookPath func(file string) (string, error)) CommandViewer {
	for _, name := range names {
		if _, err := lookPath(name); err == nil {
			return CommandViewer{Name: name}
		}
	}

	return CommandViewer{Name: "xdg-open", Detached: true}
}

// View runs the program with path as the last argument.
func (v CommandViewer) View(ctx context.Context, path string) error {
	args := append(append([]string(nil), v.Args...), path)

	out, err := exec.CommandContext(ctx, v.Name, args...).CombinedOutput() //nolint:gosec
	if err != nil {
		if out = bytes.TrimSpace(out); len(out) > 0 {
			return fmt.Errorf("%s: %w: %s", v.Name, err, out)
		}

		return fmt.Errorf("%s: %w", v.Name, err)
	}

	if !v.Detached {
		return nil
	}

	return v.confirm(ctx)
}

func (v CommandViewer) confirm(ctx context.Context) error {
	in, prompt := v.Confirm, v.Prompt
	if in == nil {
		in = os.Stdin
	}

	if prompt == nil {
		prompt = os.Stderr
	}

	fmt.Fprintln(prompt, "Press Enter to close the chart.")

	done := make(chan error, 1)

	go func() {
		_, err := bufio.NewReader(in).ReadString('\n')
		if errors.Is(err, io.EOF) {
			err = nil
		}

		done <- err
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Show renders histogram chart to a temporary PNG file and blocks until viewer returns.
func Show(ctx context.Context, v Viewer, c Chart, h *Histogram) error {
	f, err := os.CreateTemp("", "csvhist-*.png")
	if err != nil {
		return err
	}

	err = c.Render(f, h, "png")
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		_ = os.Remove(f.Name())

		return err
	}

	defer os.Remove(f.Name()) //nolint:errcheck

	return v.View(ctx, f.Name())
}
