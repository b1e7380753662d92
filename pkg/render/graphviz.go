package render

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// RenderPNG invokes the external Graphviz binary to rasterize a DOT file.
func RenderPNG(ctx context.Context, dotPath, imagePath string) error {
	cmd := exec.CommandContext(ctx, "dot", "-Tpng", dotPath, "-o", imagePath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("graphviz render failed: %w: %s", err, out)
	}
	return nil
}

// OpenFile asks the OS to open a file with its default viewer.
func OpenFile(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	case "darwin":
		cmd = exec.Command("open", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}
