// Package backdrop is an animated hero background: a rotating field of
// particles above a wireframe wave surface, seen through a perspective camera
// and steered by the pointer.
//
// The package owns the scene, the per-frame loop and its teardown. It draws
// nothing itself: each tick produces a [Frame] of point and line batches in
// pixel space which a [RenderTarget] rasterizes. Hosts supply the target and
// the page around it through [Host]:
//
//   - [Surface] creates the render target; see the window (Ebitengine),
//     raster (software, WebP/PNG) and term (tcell) packages.
//   - Hero is the element whose pointer events steer the particles.
//   - Window delivers resize events carrying the CSS size and pixel ratio.
//   - Theme is the observable dark-mode flag, usually an [AttributeSignal].
//   - Frames schedules one callback per display frame, usually a [FrameQueue]
//     the host runs once per frame.
//
// # Quick start
//
//	var frames backdrop.FrameQueue
//	hero := backdrop.NewDispatcher(backdrop.Rect{Width: 1280, Height: 720})
//	e, err := backdrop.NewEngine(backdrop.DefaultConfig(), backdrop.Host{
//		Surface:  raster.Surface{Supersample: 2},
//		Hero:     hero,
//		Window:   backdrop.NewDispatcher(backdrop.Rect{}),
//		Viewport: backdrop.Viewport{Width: 1280, Height: 720, PixelRatio: 1},
//		Theme:    backdrop.NewAttributeSignal(""),
//		Frames:   &frames,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	e.Start()
//	defer e.Stop()
//	for running {
//		frames.RunFrame()
//	}
//
// # Lifecycle
//
// An [Engine] goes from idle to running on Start and to stopped on Stop.
// Stop is idempotent and releases everything Start acquired: the pending
// frame, every listener, the theme subscription, geometry and materials, and
// the render target. Callbacks that fire after Stop do nothing.
//
// # Scripts
//
// A [Script] replays pointer, resize and theme events frame by frame from
// JSON, for demos and automated snapshots. Engine notifications can be
// forwarded to an ECS world through the [Donburi] adapter in backdrop/ecs.
//
// [Donburi]: https://github.com/yohamta/donburi
package backdrop
