package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Hemispheric light: surfaces facing lightDir get skyColor, surfaces facing away get groundColor,
// blended by the half-Lambert term, plus a sky-coloured Blinn-Phong highlight.
const (
	hemiVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
uniform mat4 matNormal;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragNormal = normalize(vec3(matNormal * vec4(vertexNormal, 0.0)));
  gl_Position = matProjection * matView * worldPos;
}
`
	hemiFS = `#version 330
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec3 skyColor;
uniform vec3 groundColor;
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec3 N = normalize(fragNormal);
  if (!gl_FrontFacing) N = -N;
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float w = dot(N, L) * 0.5 + 0.5;
  vec3 light = mix(groundColor, skyColor, w);
  vec3 H = normalize(L + V);
  float spec = pow(max(dot(N, H), 0.0), specularPower) * specularStrength;
  finalColor = vec4(colDiffuse.rgb * light + skyColor * spec, colDiffuse.a);
}
`
)

const (
	specularPower    = float32(64)
	specularStrength = float32(0.25)
)

// light holds the hemispheric shader and its uniform locations.
type light struct {
	shader   rl.Shader
	dir      mgl32.Vec3
	sky      rl.Color
	ground   rl.Color
	viewLoc  int32
	dirLoc   int32
	skyLoc   int32
	gndLoc   int32
	powLoc   int32
	strenLoc int32
}

// loadLight compiles the shader. Without a valid shader meshes fall back to raylib's default.
func loadLight(dir mgl32.Vec3, sky, ground rl.Color) *light {
	l := &light{dir: dir.Normalize(), sky: sky, ground: ground}
	l.shader = rl.LoadShaderFromMemory(hemiVS, hemiFS)
	if !rl.IsShaderValid(l.shader) {
		return l
	}
	l.viewLoc = rl.GetShaderLocation(l.shader, "viewPos")
	l.dirLoc = rl.GetShaderLocation(l.shader, "lightDir")
	l.skyLoc = rl.GetShaderLocation(l.shader, "skyColor")
	l.gndLoc = rl.GetShaderLocation(l.shader, "groundColor")
	l.powLoc = rl.GetShaderLocation(l.shader, "specularPower")
	l.strenLoc = rl.GetShaderLocation(l.shader, "specularStrength")
	return l
}

func (l *light) valid() bool {
	return rl.IsShaderValid(l.shader)
}

// apply sets the per-frame uniforms (cgo-safe: local arrays).
func (l *light) apply(viewPos mgl32.Vec3) {
	if !l.valid() {
		return
	}
	view := [3]float32{viewPos[0], viewPos[1], viewPos[2]}
	dir := [3]float32{l.dir[0], l.dir[1], l.dir[2]}
	sky := colorVec(l.sky)
	ground := colorVec(l.ground)
	setVec3(l.shader, l.viewLoc, view)
	setVec3(l.shader, l.dirLoc, dir)
	setVec3(l.shader, l.skyLoc, sky)
	setVec3(l.shader, l.gndLoc, ground)
	if l.powLoc >= 0 {
		rl.SetShaderValue(l.shader, l.powLoc, []float32{specularPower}, rl.ShaderUniformFloat)
	}
	if l.strenLoc >= 0 {
		rl.SetShaderValue(l.shader, l.strenLoc, []float32{specularStrength}, rl.ShaderUniformFloat)
	}
}

func (l *light) unload() {
	if l.valid() {
		rl.UnloadShader(l.shader)
	}
}

func setVec3(shader rl.Shader, loc int32, v [3]float32) {
	if loc < 0 {
		return
	}
	rl.SetShaderValueV(shader, loc, v[:], rl.ShaderUniformVec3, 1)
}

func colorVec(c rl.Color) [3]float32 {
	return [3]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}
