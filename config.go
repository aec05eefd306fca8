package backdrop

import "math"

// Config controls the scene contents and loop behavior. Zero-valued numeric
// fields are replaced by their defaults when the engine is created.
type Config struct {
	// ParticleCount is the number of points in the particle field.
	ParticleCount int
	// ParticleExtent is the side length of the cube particles are sampled in.
	ParticleExtent float32
	// ParticleSize is the point size in world units (attenuated by depth).
	ParticleSize float64
	// ParticleOpacity is the particle material opacity.
	ParticleOpacity float64

	// WaveSize is the side length of the square wave surface.
	WaveSize float64
	// WaveSegments is the number of grid cells along each side. The mesh has
	// (WaveSegments+1)^2 vertices.
	WaveSegments int
	// WaveOpacity is the wireframe material opacity.
	WaveOpacity float64
	// WaveTilt is the rotation about the X axis applied to the surface, in radians.
	WaveTilt float64
	// WaveOffsetY is the vertical offset of the surface.
	WaveOffsetY float64

	// CameraFOV is the vertical field of view in degrees.
	CameraFOV float64
	// CameraNear and CameraFar bound the visible depth range.
	CameraNear, CameraFar float64
	// CameraZ is the camera distance from the origin along +Z.
	CameraZ float64

	// MaxPixelRatio caps the device pixel ratio used to size the render target.
	MaxPixelRatio float64

	// Light and Dark are the palettes used for each theme.
	Light, Dark ThemePalette

	// FadeIn is the duration in seconds of the intro opacity fade. Zero
	// disables the fade.
	FadeIn float64

	// Seed seeds the particle generator. Zero picks a random seed.
	Seed uint64

	// Debug enables lifecycle logging and periodic frame timing stats on stderr.
	Debug bool
}

const (
	defaultParticleCount   = 2000
	defaultParticleExtent  = 15
	defaultParticleSize    = 0.015
	defaultParticleOpacity = 0.6
	defaultWaveSize        = 20
	defaultWaveSegments    = 50
	defaultWaveOpacity     = 0.15
	defaultWaveOffsetY     = -2
	defaultCameraFOV       = 75
	defaultCameraNear      = 0.1
	defaultCameraFar       = 1000
	defaultCameraZ         = 5
	defaultMaxPixelRatio   = 2
	defaultFadeIn          = 0.8

	defaultWaveTilt = -math.Pi * 0.35
)

// DefaultConfig returns the configuration of the stock hero background,
// including the intro fade.
func DefaultConfig() Config {
	cfg := Config{FadeIn: defaultFadeIn}
	return cfg.withDefaults()
}

// withDefaults returns a copy of cfg with zero fields filled in.
func (cfg Config) withDefaults() Config {
	if cfg.ParticleCount <= 0 {
		cfg.ParticleCount = defaultParticleCount
	}
	if cfg.ParticleExtent <= 0 {
		cfg.ParticleExtent = defaultParticleExtent
	}
	if cfg.ParticleSize <= 0 {
		cfg.ParticleSize = defaultParticleSize
	}
	if cfg.ParticleOpacity <= 0 {
		cfg.ParticleOpacity = defaultParticleOpacity
	}
	if cfg.WaveSize <= 0 {
		cfg.WaveSize = defaultWaveSize
	}
	if cfg.WaveSegments <= 0 {
		cfg.WaveSegments = defaultWaveSegments
	}
	if cfg.WaveOpacity <= 0 {
		cfg.WaveOpacity = defaultWaveOpacity
	}
	if cfg.WaveTilt == 0 {
		cfg.WaveTilt = defaultWaveTilt
	}
	if cfg.WaveOffsetY == 0 {
		cfg.WaveOffsetY = defaultWaveOffsetY
	}
	if cfg.CameraFOV <= 0 {
		cfg.CameraFOV = defaultCameraFOV
	}
	if cfg.CameraNear <= 0 {
		cfg.CameraNear = defaultCameraNear
	}
	if cfg.CameraFar <= cfg.CameraNear {
		cfg.CameraFar = defaultCameraFar
	}
	if cfg.CameraZ == 0 {
		cfg.CameraZ = defaultCameraZ
	}
	if cfg.MaxPixelRatio <= 0 {
		cfg.MaxPixelRatio = defaultMaxPixelRatio
	}
	if cfg.Light == (ThemePalette{}) {
		cfg.Light = LightPalette
	}
	if cfg.Dark == (ThemePalette{}) {
		cfg.Dark = DarkPalette
	}
	if cfg.FadeIn < 0 {
		cfg.FadeIn = 0
	}
	return cfg
}
