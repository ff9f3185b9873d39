package renderer

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/Carmen-Shannon/haunted-house/engine/geometry"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer/material"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/haunted-house/engine/resource"
	"github.com/Carmen-Shannon/haunted-house/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipelineVariant selects the fixed-function state a material needs.
type pipelineVariant struct {
	side        material.Side
	transparent bool
}

func (v pipelineVariant) key() string {
	k := fmt.Sprintf("scene/side-%d", v.side)
	if v.transparent {
		k += "/blend"
	}
	return k
}

// materialBinding tracks which channel textures a material's bind group was built with so
// the group is rebuilt when more of them finish loading.
type materialBinding struct {
	provider bind_group_provider.BindGroupProvider
	ready    uint32
	repeat   [2]float32
	sampler  common.SamplerStagingData
}

type wgpuRendererBackendImpl struct {
	logger *slog.Logger

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	surfaceFormat        wgpu.TextureFormat
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor
	configured           bool

	presentMode wgpu.PresentMode
	sampleCount MSAASampleCount

	pipelines map[pipelineVariant]pipeline.Pipeline
	frame     bind_group_provider.BindGroupProvider
	meshes    map[geometry.Geometry]bind_group_provider.BindGroupProvider
	materials map[material.Material]*materialBinding
	objects   map[*scene.Node]bind_group_provider.BindGroupProvider
	textures  map[resource.Handle]bind_group_provider.BindGroupProvider
	samplers  map[common.SamplerStagingData]*wgpu.Sampler
	white     bind_group_provider.BindGroupProvider
}

var _ rendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount, logger *slog.Logger) (*wgpuRendererBackendImpl, error) {
	runtime.LockOSThread()
	b := &wgpuRendererBackendImpl{
		logger:      logger,
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		sampleCount: sampleCount,
		pipelines:   make(map[pipelineVariant]pipeline.Pipeline),
		meshes:      make(map[geometry.Geometry]bind_group_provider.BindGroupProvider),
		materials:   make(map[material.Material]*materialBinding),
		objects:     make(map[*scene.Node]bind_group_provider.BindGroupProvider),
		textures:    make(map[resource.Handle]bind_group_provider.BindGroupProvider),
		samplers:    make(map[common.SamplerStagingData]*wgpu.Sampler),
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	b.device = d
	b.queue = d.GetQueue()

	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 {
		return nil, errors.New("surface reports no formats")
	}
	b.surfaceFormat = capabilities.Formats[0]

	b.white, err = b.uploadTexture("White Placeholder", common.TextureStagingData{
		Pixels: []byte{255, 255, 255, 255},
		Width:  1,
		Height: 1,
	}, wgpu.TextureFormatRGBA8Unorm)
	if err != nil {
		return nil, err
	}

	b.frame = bind_group_provider.NewBindGroupProvider("Frame")
	return b, nil
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) Configure(width, height int) {
	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseTargets()
	count := uint32(b.sampleCount)
	msaaEnabled := count > 1
	size := wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1}

	var err error
	if msaaEnabled {
		// The render pass draws into the MSAA texture and resolves into the swapchain view.
		b.msaaTexture, err = b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "MSAA Texture",
			Size:          size,
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err == nil {
			b.msaaTextureView, err = b.msaaTexture.CreateView(nil)
		}
		if err != nil {
			b.logger.Error("failed to create msaa target", "error", err)
			return
		}
	}

	// Depth texture sample count must match the color attachment.
	b.depthTexture, err = b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Texture",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err == nil {
		b.depthTextureView, err = b.depthTexture.CreateView(nil)
	}
	if err != nil {
		b.logger.Error("failed to create depth target", "error", err)
		return
	}

	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:    b.msaaTextureView, // nil when MSAA is off; set per frame
			LoadOp:  wgpu.LoadOpClear,
			StoreOp: storeOp,
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
	b.configured = true
}

func (b *wgpuRendererBackendImpl) releaseTargets() {
	for _, v := range []*wgpu.TextureView{b.msaaTextureView, b.depthTextureView} {
		if v != nil {
			v.Release()
		}
	}
	for _, t := range []*wgpu.Texture{b.msaaTexture, b.depthTexture} {
		if t != nil {
			t.Release()
		}
	}
	b.msaaTexture, b.msaaTextureView = nil, nil
	b.depthTexture, b.depthTextureView = nil, nil
	b.configured = false
}

func (b *wgpuRendererBackendImpl) Draw(f *Frame) error {
	if !b.configured {
		return errors.New("surface is not configured")
	}
	if f.Rebuilt {
		b.prune(f)
	}
	if err := b.writeFrameUniforms(f); err != nil {
		return err
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("failed to acquire surface texture: %w", err)
	}
	defer surfaceTexture.Release()
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	attachment := &b.renderPassDescriptor.ColorAttachments[0]
	if b.sampleCount > 1 {
		attachment.ResolveTarget = view
	} else {
		attachment.View = view
	}
	attachment.ClearValue = wgpu.Color{
		R: float64(f.Background[0]),
		G: float64(f.Background[1]),
		B: float64(f.Background[2]),
		A: 1,
	}

	pass := encoder.BeginRenderPass(b.renderPassDescriptor)
	var drawErr error
	for i := range f.Items {
		if err := b.drawItem(pass, &f.Items[i]); err != nil {
			drawErr = errors.Join(drawErr, fmt.Errorf("%s: %w", f.Items[i].Node.Name(), err))
		}
	}
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return errors.Join(drawErr, err)
	}
	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	b.surface.Present()
	return drawErr
}

func (b *wgpuRendererBackendImpl) drawItem(pass *wgpu.RenderPassEncoder, item *DrawItem) error {
	p, err := b.pipelineFor(item.Material)
	if err != nil {
		return err
	}
	mesh, err := b.meshFor(item.Geometry)
	if err != nil {
		return err
	}
	mat, err := b.materialFor(item.Material, p)
	if err != nil {
		return err
	}
	obj, err := b.objectFor(item, p)
	if err != nil {
		return err
	}

	pass.SetPipeline(p.RenderPipeline())
	pass.SetBindGroup(groupFrame, b.frame.BindGroup(), nil)
	pass.SetBindGroup(groupMaterial, mat.BindGroup(), nil)
	pass.SetBindGroup(groupObject, obj.BindGroup(), nil)
	pass.SetVertexBuffer(0, mesh.VertexBuffer(), 0, wgpu.WholeSize)
	pass.SetIndexBuffer(mesh.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	pass.DrawIndexed(uint32(mesh.IndexCount()), 1, 0, 0, 0)
	return nil
}

// pipelineFor returns the pipeline for a material's side and transparency, creating it on
// first use.
func (b *wgpuRendererBackendImpl) pipelineFor(m material.Material) (pipeline.Pipeline, error) {
	v := pipelineVariant{side: m.Side(), transparent: m.Transparent()}
	if p, ok := b.pipelines[v]; ok {
		return p, nil
	}

	cull := wgpu.CullModeBack
	switch v.side {
	case material.SideBack:
		cull = wgpu.CullModeFront
	case material.SideDouble:
		cull = wgpu.CullModeNone
	}
	p := pipeline.NewPipeline(v.key(), SceneShaderSource,
		pipeline.WithVertexLayouts(sceneVertexLayout),
		pipeline.WithBindGroupLayouts(sceneBindGroupLayouts()...),
		pipeline.WithCullMode(cull),
		pipeline.WithBlendEnabled(v.transparent),
		pipeline.WithDepthWriteEnabled(!v.transparent),
	)
	if err := b.registerRenderPipeline(p); err != nil {
		return nil, fmt.Errorf("failed to create pipeline %s: %w", v.key(), err)
	}
	b.pipelines[v] = p
	b.logger.Debug("created pipeline", "key", p.PipelineKey())
	return p, nil
}

func (b *wgpuRendererBackendImpl) registerRenderPipeline(p pipeline.Pipeline) error {
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: p.PipelineKey(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: p.Source(),
		},
	})
	if err != nil {
		return err
	}
	defer module.Release()

	descriptors := p.BindGroupLayoutDescriptors()
	layouts := make([]*wgpu.BindGroupLayout, len(descriptors))
	for g := range descriptors {
		layout, layoutErr := b.device.CreateBindGroupLayout(&descriptors[g])
		if layoutErr != nil {
			return fmt.Errorf("failed to create bind group layout for group %d: %w", g, layoutErr)
		}
		layouts[g] = layout
	}
	p.SetBindGroupLayouts(layouts)

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            p.PipelineKey(),
		BindGroupLayouts: layouts,
	})
	if err != nil {
		return err
	}
	defer pipelineLayout.Release()

	target := wgpu.ColorTargetState{
		Format:    b.surfaceFormat,
		WriteMask: p.WriteMask(),
	}
	if p.BlendEnabled() {
		target.Blend = p.BlendState()
	}
	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: p.VertexEntry(),
			Buffers:    p.VertexLayouts(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: p.FragmentEntry(),
			Targets:    []wgpu.ColorTargetState{target},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:              wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled:   p.DepthWriteEnabled(),
			DepthCompare:        wgpu.CompareFunctionLess,
			DepthBias:           p.DepthBias(),
			DepthBiasSlopeScale: p.DepthBiasSlopeScale(),
			StencilFront:        wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:         wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		},
	})
	if err != nil {
		return err
	}
	p.SetRenderPipeline(created)
	return nil
}

func (b *wgpuRendererBackendImpl) writeFrameUniforms(f *Frame) error {
	data := marshalFrameUniforms(f)
	if b.frame.BindGroup() == nil {
		// Any pipeline works for the shared frame layout; create the default one.
		p, err := b.pipelineFor(material.NewMaterial())
		if err != nil {
			return err
		}
		buf, err := b.createUniformBuffer(b.frame.Label(), len(data))
		if err != nil {
			return err
		}
		b.frame.SetBuffer(0, buf)
		bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:   "Frame Bind Group",
			Layout:  p.BindGroupLayout(groupFrame),
			Entries: []wgpu.BindGroupEntry{{Binding: 0, Buffer: buf, Size: wgpu.WholeSize}},
		})
		if err != nil {
			return err
		}
		b.frame.SetBindGroup(bg)
	}
	b.queue.WriteBuffer(b.frame.Buffer(0), 0, data)
	return nil
}

func (b *wgpuRendererBackendImpl) createUniformBuffer(label string, size int) (*wgpu.Buffer, error) {
	return b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Uniform Buffer",
		Size:  uint64(size),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
}

// meshFor uploads a geometry once. Shared geometry is uploaded once for all its nodes.
func (b *wgpuRendererBackendImpl) meshFor(g geometry.Geometry) (bind_group_provider.BindGroupProvider, error) {
	if m, ok := b.meshes[g]; ok {
		return m, nil
	}
	provider := bind_group_provider.NewBindGroupProvider(g.Descriptor().Shape.String())
	vertexData, indexData := marshalVertices(g), marshalIndices(g)

	vb, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: provider.Label() + " Vertex Buffer",
		Size:  uint64(len(vertexData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	b.queue.WriteBuffer(vb, 0, vertexData)

	ib, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: provider.Label() + " Index Buffer",
		Size:  uint64(len(indexData)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		vb.Release()
		return nil, err
	}
	b.queue.WriteBuffer(ib, 0, indexData)

	provider.SetMesh(vb, ib, len(g.Indices()))
	b.meshes[g] = provider
	return provider, nil
}

// materialFor keeps a material's bind group current. Channels whose textures are not ready
// are bound to the white placeholder; when more textures become ready the group is rebuilt.
func (b *wgpuRendererBackendImpl) materialFor(m material.Material, p pipeline.Pipeline) (bind_group_provider.BindGroupProvider, error) {
	binding, ok := b.materials[m]
	if !ok {
		label := "Material " + m.Name()
		buf, err := b.createUniformBuffer(label, materialUniformSize)
		if err != nil {
			return nil, err
		}
		binding = &materialBinding{
			provider: bind_group_provider.NewBindGroupProvider(label, bind_group_provider.WithBuffer(0, buf)),
			sampler:  common.DefaultSampler(),
			repeat:   [2]float32{1, 1},
		}
		b.materials[m] = binding
	}

	var ready uint32
	for _, c := range material.Channels() {
		h := m.Texture(c)
		if h == nil {
			continue
		}
		if _, err := b.textureFor(h, c); err != nil {
			b.logger.Warn("texture upload failed", "key", h.Key(), "error", err)
			continue
		}
		if ready == 0 {
			binding.sampler = h.Sampler()
			binding.repeat = common.Coalesce(h.Sampler().Repeat, [2]float32{1, 1})
		}
		ready |= 1 << uint(c)
	}

	if binding.provider.BindGroup() == nil || ready != binding.ready {
		sampler, err := b.samplerFor(binding.sampler)
		if err != nil {
			return nil, err
		}
		entries := []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: binding.provider.Buffer(0), Size: wgpu.WholeSize},
			{Binding: materialSamplerBinding, Sampler: sampler},
		}
		for _, c := range material.Channels() {
			view := b.white.TextureView(0)
			if ready&(1<<uint(c)) != 0 {
				view = b.textures[m.Texture(c)].TextureView(0)
			}
			entries = append(entries, wgpu.BindGroupEntry{
				Binding:     uint32(materialTextureBinding + int(c)),
				TextureView: view,
			})
		}
		bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:   binding.provider.Label() + " Bind Group",
			Layout:  p.BindGroupLayout(groupMaterial),
			Entries: entries,
		})
		if err != nil {
			return nil, err
		}
		binding.provider.SetBindGroup(bg)
		binding.ready = ready
	}

	b.queue.WriteBuffer(binding.provider.Buffer(0), 0, marshalMaterialUniforms(m, binding.repeat))
	return binding.provider, nil
}

func (b *wgpuRendererBackendImpl) textureFor(h resource.Handle, c material.Channel) (bind_group_provider.BindGroupProvider, error) {
	if t, ok := b.textures[h]; ok {
		return t, nil
	}
	format := wgpu.TextureFormatRGBA8Unorm
	if c == material.ChannelColor {
		format = wgpu.TextureFormatRGBA8UnormSrgb
	}
	t, err := b.uploadTexture(h.Key(), *h.Texture(), format)
	if err != nil {
		return nil, err
	}
	b.textures[h] = t
	return t, nil
}

// uploadTexture creates a sampled texture and stores it with its view at binding 0 of a new provider.
func (b *wgpuRendererBackendImpl) uploadTexture(label string, data common.TextureStagingData, format wgpu.TextureFormat) (bind_group_provider.BindGroupProvider, error) {
	size := wgpu.Extent3D{Width: data.Width, Height: data.Height, DepthOrArrayLayers: 1}
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		Size:          size,
		Format:        format,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, err
	}
	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		data.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  data.Width * 4,
			RowsPerImage: data.Height,
		},
		&size,
	)
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, err
	}
	provider := bind_group_provider.NewBindGroupProvider(label)
	provider.SetTexture(0, tex, view)
	return provider, nil
}

func (b *wgpuRendererBackendImpl) samplerFor(s common.SamplerStagingData) (*wgpu.Sampler, error) {
	if samp, ok := b.samplers[s]; ok {
		return samp, nil
	}
	samp, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Material Sampler",
		AddressModeU:  s.AddressModeU,
		AddressModeV:  s.AddressModeV,
		AddressModeW:  s.AddressModeW,
		MagFilter:     s.MagFilter,
		MinFilter:     s.MinFilter,
		MipmapFilter:  s.MipmapFilter,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, err
	}
	b.samplers[s] = samp
	return samp, nil
}

func (b *wgpuRendererBackendImpl) objectFor(item *DrawItem, p pipeline.Pipeline) (bind_group_provider.BindGroupProvider, error) {
	obj, ok := b.objects[item.Node]
	if !ok {
		buf, err := b.createUniformBuffer(item.Node.Name(), objectUniformSize)
		if err != nil {
			return nil, err
		}
		obj = bind_group_provider.NewBindGroupProvider(item.Node.Name(), bind_group_provider.WithBuffer(0, buf))
		bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:   obj.Label() + " Bind Group",
			Layout:  p.BindGroupLayout(groupObject),
			Entries: []wgpu.BindGroupEntry{{Binding: 0, Buffer: buf, Size: wgpu.WholeSize}},
		})
		if err != nil {
			obj.Release()
			return nil, err
		}
		obj.SetBindGroup(bg)
		b.objects[item.Node] = obj
	}
	b.queue.WriteBuffer(obj.Buffer(0), 0, marshalObjectUniforms(item.World))
	return obj, nil
}

// prune releases per-node resources for nodes that left the draw list.
func (b *wgpuRendererBackendImpl) prune(f *Frame) {
	live := make(map[*scene.Node]bool, len(f.Items))
	for _, item := range f.Items {
		live[item.Node] = true
	}
	for n, obj := range b.objects {
		if !live[n] {
			obj.Release()
			delete(b.objects, n)
		}
	}
}

func (b *wgpuRendererBackendImpl) Release() {
	for _, obj := range b.objects {
		obj.Release()
	}
	for _, m := range b.materials {
		m.provider.Release()
	}
	for _, m := range b.meshes {
		m.Release()
	}
	for _, t := range b.textures {
		t.Release()
	}
	for _, s := range b.samplers {
		s.Release()
	}
	for _, p := range b.pipelines {
		p.Release()
	}
	if b.white != nil {
		b.white.Release()
	}
	b.frame.Release()
	b.releaseTargets()
	b.surface.Release()
	b.device.Release()
	b.adapter.Release()
	b.instance.Release()
}
