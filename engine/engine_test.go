package engine

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/Carmen-Shannon/haunted-house/engine/camera"
	"github.com/Carmen-Shannon/haunted-house/engine/light"
	"github.com/Carmen-Shannon/haunted-house/engine/scene"
	"github.com/Carmen-Shannon/haunted-house/engine/viewport"
	"github.com/Carmen-Shannon/haunted-house/engine/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder logs the order of calls across the fakes.
type recorder struct {
	calls []string
}

type fakeClock struct {
	values []float64
	i      int
}

func (c *fakeClock) Elapsed() float64 {
	v := c.values[min(c.i, len(c.values)-1)]
	c.i++
	return v
}

type fakeAnimator struct {
	rec   *recorder
	times []float64
	panic bool
}

func (a *fakeAnimator) Update(t float64) {
	a.rec.calls = append(a.rec.calls, "lights")
	a.times = append(a.times, t)
	if a.panic {
		panic("broken light")
	}
}

type fakeCamera struct {
	rec     *recorder
	cam     camera.Camera
	resizes []viewport.State
	panic   bool
}

func (c *fakeCamera) Camera() camera.Camera { return c.cam }

func (c *fakeCamera) Update() bool {
	c.rec.calls = append(c.rec.calls, "camera")
	if c.panic {
		panic("broken camera")
	}
	return false
}

func (c *fakeCamera) Resize(s viewport.State) {
	c.rec.calls = append(c.rec.calls, "camera-resize")
	c.resizes = append(c.resizes, s)
}

type recordingSink struct {
	rec   *recorder
	draws int
	err   error
	sizes [][3]float64
}

func (s *recordingSink) Render(*scene.Graph, camera.Camera) error {
	s.rec.calls = append(s.rec.calls, "draw")
	s.draws++
	return s.err
}

func (s *recordingSink) SetOutputSize(width, height int, ratio float64) {
	s.rec.calls = append(s.rec.calls, "renderer-resize")
	s.sizes = append(s.sizes, [3]float64{float64(width), float64(height), ratio})
}

type fixture struct {
	rec      *recorder
	clock    *fakeClock
	animator *fakeAnimator
	camera   *fakeCamera
	sink     *recordingSink
	logs     *bytes.Buffer
	loop     RenderLoop
}

func newFixture(t *testing.T, times ...float64) *fixture {
	t.Helper()
	rec := &recorder{}
	f := &fixture{
		rec:      rec,
		clock:    &fakeClock{values: times},
		animator: &fakeAnimator{rec: rec},
		camera:   &fakeCamera{rec: rec, cam: camera.NewCamera()},
		sink:     &recordingSink{rec: rec},
		logs:     &bytes.Buffer{},
	}
	loop, err := NewRenderLoop(
		WithGraph(scene.NewGraph()),
		WithAnimator(f.animator),
		WithCameraRig(f.camera),
		WithRenderer(f.sink),
		WithClock(f.clock),
		WithScheduler(NewFixedScheduler(0, len(times))),
		WithLogger(slog.New(slog.NewTextHandler(f.logs, nil))),
	)
	require.NoError(t, err)
	f.loop = loop
	return f
}

func TestNewRenderLoopRequiresComponents(t *testing.T) {
	_, err := NewRenderLoop(WithGraph(scene.NewGraph()))
	require.ErrorIs(t, err, ErrIncomplete)
	assert.Contains(t, err.Error(), "camera")
	assert.Contains(t, err.Error(), "renderer")
}

func TestTickOrderAndState(t *testing.T) {
	f := newFixture(t, 0.5)
	assert.Equal(t, StateIdle, f.loop.State())

	f.loop.Tick()
	assert.Equal(t, StateRunning, f.loop.State())
	assert.Equal(t, []string{"lights", "camera", "draw"}, f.rec.calls)
	assert.Equal(t, []float64{0.5}, f.animator.times)
	assert.Equal(t, 0.5, f.loop.Elapsed())
	assert.Equal(t, uint64(1), f.loop.Frames())
}

func TestClockRegressionIsClamped(t *testing.T) {
	f := newFixture(t, 1, 2, 1.5, 3)
	require.NoError(t, f.loop.Run(context.Background()))
	assert.Equal(t, []float64{1, 2, 2, 3}, f.animator.times)
	assert.Equal(t, uint64(4), f.loop.Frames())
}

func TestAnimatorPanicStillDraws(t *testing.T) {
	f := newFixture(t, 0, 1, 2)
	f.animator.panic = true
	require.NoError(t, f.loop.Run(context.Background()))

	assert.Equal(t, 3, f.sink.draws)
	assert.Len(t, f.animator.times, 3)
	assert.Contains(t, f.logs.String(), "broken light")
}

func TestCameraPanicStillDraws(t *testing.T) {
	f := newFixture(t, 0, 1, 2)
	f.camera.panic = true
	require.NoError(t, f.loop.Run(context.Background()))

	assert.Equal(t, 3, f.sink.draws)
	assert.Equal(t, uint64(3), f.loop.Frames())
	assert.Equal(t, []string{
		"lights", "camera", "draw",
		"lights", "camera", "draw",
		"lights", "camera", "draw",
	}, f.rec.calls)
	assert.Contains(t, f.logs.String(), "broken camera")
	assert.Contains(t, f.logs.String(), `stage="camera update"`)
}

func TestDrawErrorsAreCountedAndLogged(t *testing.T) {
	f := newFixture(t, 0, 1)
	f.sink.err = errors.New("lost device")
	require.NoError(t, f.loop.Run(context.Background()))

	assert.Equal(t, uint64(2), f.loop.Frames())
	assert.Equal(t, uint64(2), f.loop.FailedFrames())
	assert.Contains(t, f.logs.String(), "lost device")
}

func TestRunStopsOnCancel(t *testing.T) {
	f := newFixture(t, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, f.loop.Run(ctx), context.Canceled)
	assert.Zero(t, f.sink.draws)
}

func TestAttachNotifiesCameraBeforeRenderer(t *testing.T) {
	f := newFixture(t, 0)
	v := viewport.New(800, 600, 1)
	f.loop.Attach(v)
	_, err := v.Resize(1024, 768, 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"camera-resize", "renderer-resize", "camera-resize", "renderer-resize"}, f.rec.calls)
	require.Len(t, f.sink.sizes, 2)
	assert.Equal(t, [3]float64{1024, 768, 2}, f.sink.sizes[1])
	assert.Equal(t, 1024, f.camera.resizes[1].Width)
}

func TestLightRigAnimatesThroughLoop(t *testing.T) {
	rig := light.NewRig()
	f := newFixture(t, 0)
	loop, err := NewRenderLoop(
		WithGraph(scene.NewGraph()),
		WithAnimator(rig),
		WithCameraRig(f.camera),
		WithRenderer(f.sink),
		WithClock(ClockFunc(func() float64 { return 0 })),
	)
	require.NoError(t, err)
	loop.Tick()

	p := rig.Ghost(0).Position()
	assert.InDelta(t, 4, p[0], 1e-6)
	assert.InDelta(t, 0, p[1], 1e-6)
	assert.InDelta(t, 0, p[2], 1e-6)
}

type fakeInput struct {
	resize    func(int, int, float64)
	scroll    func(float32)
	keyDown   func(int, bool)
	mouseDown func(window.MouseButton, float32, float32)
	mouseUp   func(window.MouseButton, float32, float32)
	mouseMove func(float32, float32)
}

func (i *fakeInput) SetResizeCallback(cb func(int, int, float64)) { i.resize = cb }
func (i *fakeInput) SetScrollCallback(cb func(float32)) { i.scroll = cb }
func (i *fakeInput) SetKeyDownCallback(cb func(int, bool)) { i.keyDown = cb }
func (i *fakeInput) SetMouseDownCallback(cb func(window.MouseButton, float32, float32)) { i.mouseDown = cb }
func (i *fakeInput) SetMouseUpCallback(cb func(window.MouseButton, float32, float32)) { i.mouseUp = cb }
func (i *fakeInput) SetMouseMoveCallback(cb func(float32, float32)) { i.mouseMove = cb }

type fakePointer struct {
	events []string
}

func (p *fakePointer) PointerDown(b camera.PointerButton, _, _ float32) {
	if b == camera.PointerPan {
		p.events = append(p.events, "pan")
		return
	}
	p.events = append(p.events, "rotate")
}
func (p *fakePointer) PointerMove(_, _ float32) { p.events = append(p.events, "move") }
func (p *fakePointer) PointerUp() { p.events = append(p.events, "up") }
func (p *fakePointer) Scroll(float32) { p.events = append(p.events, "scroll") }

type fakeKeys struct {
	pressed []int
}

func (k *fakeKeys) Press(key int, _ bool) bool {
	k.pressed = append(k.pressed, key)
	return true
}

func TestBindInputRoutesEvents(t *testing.T) {
	in := &fakeInput{}
	v := viewport.New(800, 600, 1)
	pointer := &fakePointer{}
	keys := &fakeKeys{}
	var logs bytes.Buffer
	BindInput(in, v, pointer, keys, slog.New(slog.NewTextHandler(&logs, nil)))

	in.mouseDown(window.MouseLeft, 1, 1)
	in.mouseMove(2, 2)
	in.mouseUp(window.MouseLeft, 2, 2)
	in.mouseDown(window.MouseRight, 0, 0)
	in.mouseUp(window.MouseRight, 0, 0)
	in.mouseDown(window.MouseMiddle, 0, 0)
	in.scroll(1)
	assert.Equal(t, []string{"rotate", "move", "up", "pan", "up", "scroll"}, pointer.events)

	in.keyDown(49, false)
	assert.Equal(t, []int{49}, keys.pressed)

	in.resize(640, 0, 1)
	assert.Equal(t, 1, v.State().Height)
	assert.Contains(t, logs.String(), "viewport clamped")
}
