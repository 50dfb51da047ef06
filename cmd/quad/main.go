//go:build !js

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/oliverbestmann/quad/glimpse"
	"github.com/oliverbestmann/quad/quad"
)

type stringList []string

func (l *stringList) String() string {
	return fmt.Sprint(*l)
}

func (l *stringList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error("Quad failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "quad.yml", "path to the yaml config file")

	var textures stringList
	flag.Var(&textures, "texture", "image file to use as texture, can be repeated")

	flag.Parse()

	config, err := LoadConfig(*configPath)
	if err != nil {
		return err
	}

	level, err := config.SlogLevel()
	if err != nil {
		return err
	}

	slog.SetLogLoggerLevel(level)

	images, err := readTextures(append(config.Textures, textures...))
	if err != nil {
		return err
	}

	win, err := glimpse.NewWindow(glimpse.WindowOptions{
		Width:   config.Width,
		Height:  config.Height,
		Title:   config.Title,
		Profile: config.Profile,
	})
	if err != nil {
		return err
	}

	defer win.Terminate()

	app, err := quad.Setup(win, images)
	if err != nil {
		return err
	}

	defer app.Release()

	logReady(app)

	clock := quad.NewFrameClock()

	return win.Run(func(input glimpse.InputState) error {
		update := clock.Tick()
		update.Pointer = input.Mouse.Pointer()

		if err := app.Update(update); err != nil {
			return err
		}

		if clock.ShouldReport() {
			slog.Info("Frame stats",
				slog.Uint64("frames", clock.FrameCount),
				slog.Float64("fps", clock.FPS()),
				slog.Duration("max", clock.MaxDuration),
				slog.Any("pointer", app.PerFrame().Pointer),
			)
		}

		return app.Render()
	})
}

func logReady(app *quad.App) {
	program := app.Program()

	slog.Info("Quad ready",
		slog.Float64("width", float64(program.ScreenWidth)),
		slog.Float64("height", float64(program.ScreenHeight)),
		slog.Int("textures", app.TextureCount()),
	)
}

func readTextures(paths []string) ([][]byte, error) {
	var images [][]byte

	for _, path := range paths {
		buf, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read texture: %w", err)
		}

		slog.Info("Texture loaded", slog.String("path", path), slog.Int("bytes", len(buf)))

		images = append(images, buf)
	}

	return images, nil
}
