package scene

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"primitive-playground/internal/animation"
	"primitive-playground/internal/camera"
	"primitive-playground/internal/logger"
	"primitive-playground/internal/primitives"
)

const (
	gridExtent     = 50
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
	gridY          = -1 // below the tallest default primitive
	// clickSlop is how far (pixels) the pointer may travel between press and release and still pick.
	clickSlop = 4
)

// Config is what the scene needs from the playground configuration.
type Config struct {
	Camera      *camera.ArcRotate
	LightDir    mgl32.Vec3
	SkyColor    rl.Color
	GroundColor rl.Color
	MeshColor   rl.Color
	GridVisible bool
}

// Scene owns every mesh, the arc-rotate camera, the light and the animation player. It is the
// rendering collaborator of the session: meshes are addressed by handle, picks are dispatched to
// one handler per primitive kind. New must be called after the window exists.
type Scene struct {
	Camera      *camera.ArcRotate
	GridVisible bool

	log       logger.Logger
	cam       rl.Camera3D
	light     *light
	material  rl.Material
	meshColor rl.Color

	meshes map[uuid.UUID]*entry
	order  []uuid.UUID
	picks  map[primitives.Kind]func(primitives.Handle)
	player *animation.Player

	overUI   func(x, y float32) bool
	pressAt  rl.Vector2
	pressed  bool
	dragging bool
}

// New returns an empty scene lit by a hemispheric light.
func New(cfg Config, log logger.Logger) *Scene {
	if log == nil {
		log = logger.NewNop()
	}
	if cfg.Camera == nil {
		cfg.Camera = camera.Default()
	}
	s := &Scene{
		Camera:      cfg.Camera,
		GridVisible: cfg.GridVisible,
		log:         log,
		meshColor:   cfg.MeshColor,
		meshes:      make(map[uuid.UUID]*entry),
		picks:       make(map[primitives.Kind]func(primitives.Handle)),
		player:      animation.NewPlayer(),
	}
	s.cam.Projection = rl.CameraPerspective
	s.syncCamera()

	s.light = loadLight(cfg.LightDir, cfg.SkyColor, cfg.GroundColor)
	s.material = rl.LoadMaterialDefault()
	if s.light.valid() {
		s.material.Shader = s.light.shader
	} else {
		log.Warnf("hemispheric light shader failed to compile; using default shading")
	}
	return s
}

// SetPointerFilter installs a check that reports whether the pointer is over UI. Presses that start
// over UI neither orbit the camera nor pick.
func (s *Scene) SetPointerFilter(overUI func(x, y float32) bool) {
	s.overUI = overUI
}

// CreatePrimitive builds a mesh for shape at the origin with unit scale.
func (s *Scene) CreatePrimitive(shape primitives.Shape) (primitives.Handle, error) {
	e, err := buildMesh(shape)
	if err != nil {
		return primitives.Handle{}, err
	}
	e.handle = primitives.NewHandle(shape.Kind())
	s.meshes[e.handle.ID] = e
	s.order = append(s.order, e.handle.ID)
	s.log.Debugf("mesh %s: %d vertices", e.handle, e.mesh.VertexCount)
	return e.handle, nil
}

// Dispose unloads the mesh and stops any animation still running on it. Unknown handles are ignored.
func (s *Scene) Dispose(h primitives.Handle) {
	e, ok := s.meshes[h.ID]
	if !ok {
		return
	}
	s.player.Stop(h.ID)
	rl.UnloadMesh(&e.mesh)
	delete(s.meshes, h.ID)
	for i, id := range s.order {
		if id == h.ID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *Scene) Position(h primitives.Handle) (mgl32.Vec3, bool) {
	e, ok := s.meshes[h.ID]
	if !ok {
		return mgl32.Vec3{}, false
	}
	return e.position, true
}

func (s *Scene) SetPosition(h primitives.Handle, p mgl32.Vec3) {
	if e, ok := s.meshes[h.ID]; ok {
		e.position = p
	}
}

func (s *Scene) Scale(h primitives.Handle) (mgl32.Vec3, bool) {
	e, ok := s.meshes[h.ID]
	if !ok {
		return mgl32.Vec3{}, false
	}
	return e.scale, true
}

func (s *Scene) SetScale(h primitives.Handle, v mgl32.Vec3) {
	if e, ok := s.meshes[h.ID]; ok {
		e.scale = v
	}
}

func (s *Scene) SetRotation(h primitives.Handle, q mgl32.Quat) {
	if e, ok := s.meshes[h.ID]; ok {
		e.rotation = q.Normalize()
	}
}

// OnPick registers fn for clicks on any mesh of kind, including meshes created later.
func (s *Scene) OnPick(kind primitives.Kind, fn func(primitives.Handle)) {
	s.picks[kind] = fn
}

// PlayAnimation starts anim on h without blocking; Update advances it. Any animation already
// running on h is replaced.
func (s *Scene) PlayAnimation(h primitives.Handle, anim *animation.Animation, from, to float32, loop bool) {
	if _, ok := s.meshes[h.ID]; !ok {
		return
	}
	if _, err := animation.ParseProperty(anim.Property); err != nil {
		s.log.Warnf("%s: %v", h, err)
		return
	}
	s.player.Begin(h.ID, from, to, loop, anim)
}

// Len returns the number of live meshes.
func (s *Scene) Len() int { return len(s.meshes) }

// Update handles camera input and picking, then advances animations by dt seconds.
func (s *Scene) Update(dt float32) {
	mouse := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		s.pressed = s.overUI == nil || !s.overUI(mouse.X, mouse.Y)
		s.pressAt = mouse
		s.dragging = false
	}
	if s.pressed && rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		if !s.dragging && distance(mouse, s.pressAt) > clickSlop {
			s.dragging = true
		}
		if s.dragging {
			d := rl.GetMouseDelta()
			s.Camera.Rotate(d.X, d.Y)
		}
	}
	if s.pressed && rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		if !s.dragging {
			s.pick(mouse)
		}
		s.pressed, s.dragging = false, false
	}
	if wheel := rl.GetMouseWheelMove(); wheel != 0 && (s.overUI == nil || !s.overUI(mouse.X, mouse.Y)) {
		s.Camera.Zoom(wheel)
	}
	s.syncCamera()

	s.player.Tick(dt, s.applyAnimated)
}

// pick casts a ray through the pointer and dispatches the nearest hit to its kind's handler.
func (s *Scene) pick(mouse rl.Vector2) {
	ray := rl.GetScreenToWorldRay(mouse, s.cam)
	var hit *entry
	nearest := float32(math.MaxFloat32)
	for _, id := range s.order {
		e := s.meshes[id]
		col := rl.GetRayCollisionMesh(ray, e.mesh, e.transform())
		if col.Hit && col.Distance < nearest {
			nearest = col.Distance
			hit = e
		}
	}
	if hit == nil {
		return
	}
	if fn, ok := s.picks[hit.handle.Kind]; ok {
		fn(hit.handle)
	}
}

func (s *Scene) applyAnimated(target uuid.UUID, property string, value float32) {
	e, ok := s.meshes[target]
	if !ok {
		return
	}
	p, err := animation.ParseProperty(property)
	if err != nil {
		return
	}
	switch p.Target {
	case animation.TargetPosition:
		e.position[p.Axis] = value
	case animation.TargetScaling:
		e.scale[p.Axis] = value
	}
}

func (s *Scene) syncCamera() {
	pos := s.Camera.Position()
	s.cam.Position = rl.NewVector3(pos[0], pos[1], pos[2])
	s.cam.Target = rl.NewVector3(s.Camera.Target[0], s.Camera.Target[1], s.Camera.Target[2])
	s.cam.Up = rl.NewVector3(s.Camera.Up[0], s.Camera.Up[1], s.Camera.Up[2])
	s.cam.Fovy = s.Camera.Fovy
}

// Resize is called when the framebuffer changes size. raylib derives the projection aspect from the
// current screen size on every BeginMode3D, so there is nothing to rebuild.
func (s *Scene) Resize(w, h int32) {
	s.log.Debugf("resized to %dx%d", w, h)
}

// Draw renders the grid and all meshes. Call after ClearBackground and before any 2D overlay.
func (s *Scene) Draw() {
	rl.BeginMode3D(s.cam)
	if s.GridVisible {
		drawEditorGrid()
	}
	s.light.apply(s.Camera.Position())
	if albedo := s.material.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = s.meshColor
	}
	for _, id := range s.order {
		e := s.meshes[id]
		rl.DrawMesh(e.mesh, s.material, e.transform())
	}
	rl.EndMode3D()
}

// Unload releases every mesh and the shader. Call before the window closes.
func (s *Scene) Unload() {
	for _, id := range append([]uuid.UUID(nil), s.order...) {
		s.Dispose(primitives.Handle{ID: id})
	}
	s.light.unload()
}

func distance(a, b rl.Vector2) float32 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return float32(math.Sqrt(float64(dx*dx + dy*dy)))
}

// drawEditorGrid draws a grid on the XZ plane with major/minor lines and axis lines.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawEditorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	for x := -gridExtent; x <= gridExtent; x += gridMinorStep {
		c := major
		if x%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(x), gridY, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(x), gridY, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
	}
	for z := -gridExtent; z <= gridExtent; z += gridMinorStep {
		c := major
		if z%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(-gridExtent), gridY, float32(z)
		end.X, end.Y, end.Z = float32(gridExtent), gridY, float32(z)
		rl.DrawLine3D(start, end, c)
	}

	start.X, start.Y, start.Z = float32(-gridExtent), gridY, 0
	end.X, end.Y, end.Z = float32(gridExtent), gridY, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Y, start.Z = 0, gridY, float32(-gridExtent)
	end.X, end.Y, end.Z = 0, gridY, float32(gridExtent)
	rl.DrawLine3D(start, end, axisZ)
}
