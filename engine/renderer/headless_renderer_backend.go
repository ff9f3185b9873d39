package renderer

// headlessRendererBackend keeps the last frame and discards it. It exercises the whole
// frame preparation path without a GPU.
type headlessRendererBackend struct {
	width, height int
	presentMode   PresentMode
	last          *Frame
	draws         uint64
}

var _ rendererBackend = &headlessRendererBackend{}

func newHeadlessRendererBackend() *headlessRendererBackend {
	return &headlessRendererBackend{}
}

func (b *headlessRendererBackend) Configure(width, height int) {
	b.width, b.height = width, height
}

func (b *headlessRendererBackend) SetPresentMode(mode PresentMode) {
	b.presentMode = mode
}

func (b *headlessRendererBackend) Draw(f *Frame) error {
	b.last = f
	b.draws += uint64(len(f.Items))
	return nil
}

func (b *headlessRendererBackend) Release() {
	b.last = nil
}
