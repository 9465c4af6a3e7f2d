// relic - fixed-point retro 3D model viewer for the terminal.
// Renders OBJ, GLB, and precompiled BSP scenes the way late-80s hardware
// did: 16.16 fixed-point math, painter's algorithm or BSP ordering, and a
// 16-color nibble-packed framebuffer shown with half-block cells.
//
// Controls:
//
//	Arrows      - Rotate view 10 degrees (horizontal/vertical)
//	w/x         - Roll screen left/right 10 degrees
//	a/z         - Step distance out/in by 10%
//	Space       - Toggle model info
//	c           - Toggle palette strip
//	b           - Toggle visibility strategy (sort/bsp)
//	n           - Next model
//	s           - Save screenshot (PNG)
//	h/?         - Toggle help
//	Esc         - Quit
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/relic/internal/config"
	"github.com/taigrr/relic/internal/logger"
)

var (
	flagConfig     string
	flagMode       string
	flagFPS        int
	flagScreenshot string
)

func main() {
	root := &cobra.Command{
		Use:   "relic [flags] <model.obj|model.glb|scene.bsp> ...",
		Short: "Fixed-point retro 3D model viewer for the terminal",
		Long: `relic renders low-poly flat-shaded models with deterministic 16.16
fixed-point arithmetic into a 16-color nibble-packed framebuffer,
presented in the terminal with half-block cells.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flagConfig)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("mode") {
				cfg.Render.Mode = flagMode
			}
			if cmd.Flags().Changed("fps") {
				cfg.Display.TargetFPS = flagFPS
			}
			if cfg.Render.Mode != "sort" && cfg.Render.Mode != "bsp" {
				return fmt.Errorf("unknown render mode %q (want sort or bsp)", cfg.Render.Mode)
			}

			logFile := cfg.Logging.LogFile
			if logFile == "" {
				// The viewer owns the terminal, so default logs to a file.
				logFile = filepath.Join(config.ConfigDir(), "relic.log")
			}
			if err := logger.Init(cfg.Logging.Level, logFile); err != nil {
				return err
			}
			defer logger.Sync()

			v, err := newViewer(cfg, args, flagScreenshot)
			if err != nil {
				return err
			}
			return v.Run(cmd.Context())
		},
	}

	root.Flags().StringVar(&flagConfig, "config", "", "path to config file")
	root.Flags().StringVar(&flagMode, "mode", "sort", "visibility strategy: sort or bsp")
	root.Flags().IntVar(&flagFPS, "fps", 30, "target frames per second")
	root.Flags().StringVar(&flagScreenshot, "screenshot-dir", ".", "directory for saved screenshots")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := fang.Execute(ctx, root); err != nil {
		os.Exit(1)
	}
}

// loadScene reads one model file by extension.
func loadScene(path string) (*scene, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj", ".txt":
		m, err := loadTextModel(path)
		if err != nil {
			return nil, err
		}
		return &scene{model: m}, nil
	case ".glb", ".gltf":
		m, err := loadGLBModel(path)
		if err != nil {
			return nil, err
		}
		return &scene{model: m}, nil
	case ".bsp":
		m, t, err := loadBSPScene(path)
		if err != nil {
			return nil, err
		}
		return &scene{model: m, tree: t}, nil
	default:
		return nil, fmt.Errorf("unsupported format %q (use .obj, .glb, or .bsp)", filepath.Ext(path))
	}
}

func logLoaded(s *scene, path string) {
	fields := []zap.Field{
		zap.String("file", filepath.Base(path)),
		zap.Int("vertices", s.model.VertexCount()),
		zap.Int("faces", s.model.FaceCount()),
	}
	if s.tree != nil {
		fields = append(fields, zap.Int("bsp_nodes", len(s.tree.Nodes)))
	}
	logger.Info("model loaded", fields...)
}

func screenshotName(dir string) string {
	return filepath.Join(dir, fmt.Sprintf("relic-%s.png", time.Now().Format("20060102-150405")))
}
