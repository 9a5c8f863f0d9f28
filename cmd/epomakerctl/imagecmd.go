package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/epomaker-go/epomakerctl/codec"
	"github.com/epomaker-go/epomakerctl/commands"
	"github.com/epomaker-go/epomakerctl/internal/logging"
)

// UploadImageCmd pushes a static bitmap to the LCD.
type UploadImageCmd struct {
	Path string `arg:"" type:"existingfile" help:"Path to a PNG/JPEG/BMP/TIFF/WebP image."`
}

func (c *UploadImageCmd) Run(g *Globals, logger *slog.Logger, raw logging.RawLogger) error {
	f, err := os.Open(c.Path)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	buf, err := codec.PrepareImage(f)
	if err != nil {
		return err
	}

	cmd, err := commands.NewImageCommand(buf)
	if err != nil {
		return err
	}

	tr, err := g.openTransport(context.Background(), raw, true)
	if err != nil {
		return err
	}
	defer tr.Close()

	if err := tr.Send(cmd); err != nil {
		return err
	}
	logger.Info("uploaded image", "path", c.Path, "bytes", len(buf))
	return nil
}
