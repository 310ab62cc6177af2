package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"primitive-playground/internal/audio"
	"primitive-playground/internal/camera"
	"primitive-playground/internal/commands"
	"primitive-playground/internal/debug"
	"primitive-playground/internal/engineconfig"
	"primitive-playground/internal/graphics"
	"primitive-playground/internal/logger"
	"primitive-playground/internal/overlay"
	"primitive-playground/internal/primitives"
	"primitive-playground/internal/scene"
	"primitive-playground/internal/session"
	"primitive-playground/internal/ui"
)

func main() {
	reg := commands.NewRegistry()

	runFS := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := runFS.String("config", engineconfig.DefaultPath, "config file")
	verbose := runFS.Bool("debug", false, "log debug lines")
	reg.Register("run", "open the playground window (default)", runFS, func() error {
		return run(*configPath, *verbose)
	})

	writeFS := flag.NewFlagSet("write-config", flag.ExitOnError)
	out := writeFS.String("o", engineconfig.DefaultPath, "destination")
	reg.Register("write-config", "write the default config file", writeFS, func() error {
		return engineconfig.Save(*out, engineconfig.Default())
	})
	reg.SetDefault("run")

	if err := reg.Execute(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprint(os.Stderr, "commands:\n"+reg.Help())
		os.Exit(1)
	}
}

func run(configPath string, verbose bool) error {
	cfg, cfgErr := engineconfig.Load(configPath)
	log := logger.New(cfg.Log.File, cfg.Debug.Verbose || verbose)
	if cfgErr != nil {
		log.Warnf("%v; using defaults", cfgErr)
	}

	store, err := primitives.NewStore(cfg.Primitives)
	if err != nil {
		return err
	}

	doc := ui.NewDocument()
	doc.SetStylesheet(loadStylesheet(cfg.UI.Stylesheet, log))
	if err := buildControls(doc, cfg); err != nil {
		return err
	}
	var inspector *ui.Inspector
	if cfg.Debug.ShowInspector {
		if inspector, err = ui.NewInspector(doc); err != nil {
			return err
		}
	}

	fb := audio.NewFeedback(cfg.Audio.Volume)
	if cfg.Audio.Enabled {
		if err := fb.Init(); err != nil {
			log.Warnf("audio disabled: %v", err)
		}
	}

	var (
		scn  *scene.Scene
		sess *session.Session
		ov   *overlay.Overlay
	)
	dbg := debug.New()
	dbg.ShowFPS = cfg.Debug.ShowFPS
	dbg.ShowMemAlloc = cfg.Debug.ShowMemAlloc

	hooks := graphics.Hooks{
		Init: func() error {
			scn = scene.New(sceneConfig(cfg), log)
			scn.SetPointerFilter(doc.HitTest)

			sess = session.New(scn, doc, store, log)
			sess.SetBounce(session.Bounce{Amplitude: cfg.Bounce.Amplitude, Duration: cfg.Bounce.Duration})
			sess.SetFeedback(fb)
			if err := sess.Setup(); err != nil {
				return err
			}
			if err := sess.BindControls(doc); err != nil {
				log.Errorf("controls not bound: %v", err)
			}
			dbg.Status = func() string { return selectionStatus(sess) }
			ov = overlay.New(doc)
			log.Infof("scene ready with %d meshes", scn.Len())
			return nil
		},
		Update: func(dt float32) {
			scn.Update(dt)
			if inspector != nil {
				inspector.Update(inspect(sess, scn))
			}
		},
		Draw: func() {
			scn.Draw()
			ov.Draw()
			dbg.Draw()
		},
		Resize: func(w, h int32) {
			scn.Resize(w, h)
		},
		Close: func() {
			scn.Unload()
			fb.Close()
		},
	}

	err = graphics.Run(windowConfig(cfg), hooks)
	if errors.Is(err, graphics.ErrNoSurface) {
		log.Errorf("cannot open a window; aborting")
	}
	return err
}

func loadStylesheet(path string, log logger.Logger) *ui.Stylesheet {
	if path == "" {
		return ui.DefaultStylesheet()
	}
	sheet, err := ui.LoadCSS(path)
	if err != nil {
		log.Warnf("stylesheet %s: %v; using built-in", path, err)
		return ui.DefaultStylesheet()
	}
	return sheet
}

func windowConfig(cfg engineconfig.Config) graphics.Window {
	return graphics.Window{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Resizable:  cfg.Window.Resizable,
		MSAA:       cfg.Window.MSAA,
		TargetFPS:  cfg.Window.TargetFPS,
		Background: parseColor(cfg.Scene.Background, color.RGBA{51, 77, 102, 255}),
	}
}

func sceneConfig(cfg engineconfig.Config) scene.Config {
	sc := cfg.Scene
	return scene.Config{
		Camera:      camera.NewArcRotate(sc.CameraAlpha, sc.CameraBeta, sc.CameraRadius, mgl32.Vec3{}),
		LightDir:    mgl32.Vec3(sc.LightDir),
		SkyColor:    parseColor(sc.SkyColor, color.RGBA{255, 255, 255, 255}),
		GroundColor: parseColor(sc.GroundColor, color.RGBA{0, 0, 0, 255}),
		MeshColor:   parseColor(sc.MeshColor, color.RGBA{200, 200, 200, 255}),
		GridVisible: sc.GridVisible,
	}
}

func parseColor(s string, fallback color.RGBA) color.RGBA {
	if c, ok := ui.ParseHexColor(s); ok {
		return c
	}
	return fallback
}

func selectionStatus(sess *session.Session) string {
	h, ok := sess.Selected()
	if !ok {
		return "Click a shape to select it"
	}
	return "Selected: " + h.Kind.String()
}

// inspect describes the selected mesh for the inspector panel, or nil when nothing is selected.
func inspect(sess *session.Session, scn *scene.Scene) *ui.Selection {
	h, ok := sess.Selected()
	if !ok {
		return nil
	}
	pos, _ := scn.Position(h)
	scale, _ := scn.Scale(h)
	sel := &ui.Selection{Name: h.Kind.String(), Position: pos, Scale: scale}
	switch p := shapeOf(sess.Store(), h.Kind).(type) {
	case primitives.CylinderParams:
		sel.Params = []string{
			fmt.Sprintf("diameter=%.2f", p.Diameter),
			fmt.Sprintf("height=%.2f", p.Height),
			fmt.Sprintf("tessellation=%d", p.Tessellation),
		}
	case primitives.IcoSphereParams:
		sel.Params = []string{
			fmt.Sprintf("diameter=%.2f", p.Diameter),
			fmt.Sprintf("subdivisions=%d", p.Subdivisions),
		}
	}
	return sel
}

func shapeOf(store *primitives.Store, kind primitives.Kind) primitives.Shape {
	shape, err := store.Shape(kind)
	if err != nil {
		return nil
	}
	return shape
}
