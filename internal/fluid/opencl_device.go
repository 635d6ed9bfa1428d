//go:build opencl

package fluid

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"
)

type clSurface struct {
	format Format
	mem    *cl.MemObject
}

type clProgram struct {
	layout layout
	kernel *cl.Kernel
}

// openCLDevice executes stage programs on the first GPU (or CPU) exposed by
// an OpenCL platform. All commands go through one in-order queue.
type openCLDevice struct {
	context *cl.Context
	queue   *cl.CommandQueue
	program *cl.Program

	width, height int
	deviceName    string

	nextID   int
	surfaces map[int]clSurface
	programs []clProgram
}

// NewOpenCLDevice selects an OpenCL device and builds the stage programs for
// a width x height grid.
func NewOpenCLDevice(width, height int) (Device, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrInvalidConfig, width, height)
	}
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available; ensure a vendor driver is installed and detected by `clinfo`")
	}
	device := pickDevice(platforms, cl.DeviceTypeGPU)
	if device == nil {
		device = pickDevice(platforms, cl.DeviceTypeCPU)
	}
	if device == nil {
		return nil, errors.New("no suitable OpenCL devices found")
	}

	context, err := cl.CreateContext([]*cl.Device{device})
	if err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	queue, err := context.CreateCommandQueue(device, 0)
	if err != nil {
		context.Release()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	program, err := context.CreateProgramWithSource([]string{openCLKernelSource})
	if err != nil {
		queue.Release()
		context.Release()
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		program.Release()
		queue.Release()
		context.Release()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}

	return &openCLDevice{
		context:    context,
		queue:      queue,
		program:    program,
		width:      width,
		height:     height,
		deviceName: device.Name(),
		surfaces:   make(map[int]clSurface),
	}, nil
}

func pickDevice(platforms []*cl.Platform, kind cl.DeviceType) *cl.Device {
	for _, p := range platforms {
		devices, err := p.GetDevices(kind)
		if err != nil && err != cl.ErrDeviceNotFound {
			continue
		}
		if len(devices) > 0 {
			return devices[0]
		}
	}
	return nil
}

func (d *openCLDevice) Name() string { return "opencl:" + d.deviceName }

func (d *openCLDevice) cells() int { return d.width * d.height }

func (d *openCLDevice) NewSurface(f Format) (Surface, error) {
	if f < Scalar || f > RGB {
		return Surface{}, fmt.Errorf("unsupported surface format %d", f)
	}
	byteSize := d.cells() * int(f) * int(unsafe.Sizeof(float32(0)))
	mem, err := d.context.CreateEmptyBuffer(cl.MemReadWrite, byteSize)
	if err != nil {
		return Surface{}, fmt.Errorf("allocating %d byte buffer: %w", byteSize, err)
	}
	d.nextID++
	d.surfaces[d.nextID] = clSurface{format: f, mem: mem}
	return Surface{id: d.nextID, format: f}, nil
}

func (d *openCLDevice) lookup(s Surface) (clSurface, error) {
	cs, ok := d.surfaces[s.id]
	if !ok {
		return clSurface{}, fmt.Errorf("%w: %s", ErrUnknownSurface, s)
	}
	return cs, nil
}

func (d *openCLDevice) checkLen(s Surface, cs clSurface, n int) error {
	if want := d.cells() * int(cs.format); n != want {
		return fmt.Errorf("%w: %s has %d floats, got %d", ErrSurfaceSize, s, want, n)
	}
	return nil
}

// Upload blocks until the write completes so data may be reused at once.
func (d *openCLDevice) Upload(s Surface, data []float32) error {
	cs, err := d.lookup(s)
	if err != nil {
		return err
	}
	if err := d.checkLen(s, cs, len(data)); err != nil {
		return err
	}
	if _, err := d.queue.EnqueueWriteBufferFloat32(cs.mem, true, 0, data, nil); err != nil {
		return fmt.Errorf("writing %s: %w", s, err)
	}
	return nil
}

func (d *openCLDevice) Download(s Surface, dst []float32) error {
	cs, err := d.lookup(s)
	if err != nil {
		return err
	}
	if err := d.checkLen(s, cs, len(dst)); err != nil {
		return err
	}
	if _, err := d.queue.EnqueueReadBufferFloat32(cs.mem, true, 0, dst, nil); err != nil {
		return fmt.Errorf("reading %s: %w", s, err)
	}
	return nil
}

func (d *openCLDevice) Clear(s Surface) error {
	cs, err := d.lookup(s)
	if err != nil {
		return err
	}
	return withScratch(d.cells()*int(cs.format), func(zero []float32) error {
		return d.Upload(s, zero)
	})
}

func (d *openCLDevice) Compile(kernel string) (Program, error) {
	l, ok := layouts[kernel]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownProgram, kernel)
	}
	k, err := d.program.CreateKernel(kernel)
	if err != nil {
		return 0, fmt.Errorf("creating OpenCL kernel %s: %w", kernel, err)
	}
	d.programs = append(d.programs, clProgram{layout: l, kernel: k})
	return Program(len(d.programs)), nil
}

func (d *openCLDevice) Dispatch(p Program, args []any) error {
	if p <= 0 || int(p) > len(d.programs) {
		return fmt.Errorf("%w: %d", ErrUnknownProgram, p)
	}
	prog := d.programs[p-1]
	if len(args) != len(prog.layout.params) {
		return fmt.Errorf("%s: want %d arguments, got %d", prog.layout.kernel, len(prog.layout.params), len(args))
	}
	if err := checkAliasing(prog.layout, args); err != nil {
		return fmt.Errorf("%s: %w", prog.layout.kernel, err)
	}
	for i, v := range args {
		if err := d.setArg(prog.kernel, i, v); err != nil {
			return fmt.Errorf("%s: argument %s: %w", prog.layout.kernel, prog.layout.params[i], err)
		}
	}
	if _, err := d.queue.EnqueueNDRangeKernel(prog.kernel, nil, []int{d.cells()}, nil, nil); err != nil {
		return fmt.Errorf("enqueueing %s: %w", prog.layout.kernel, err)
	}
	return nil
}

// setArg binds one argument. float3 occupies 16 bytes on the device so
// [3]float32 is padded to a float4.
func (d *openCLDevice) setArg(k *cl.Kernel, i int, v any) error {
	switch v := v.(type) {
	case Surface:
		cs, err := d.lookup(v)
		if err != nil {
			return err
		}
		return k.SetArgBuffer(i, cs.mem)
	case float32:
		return k.SetArgFloat32(i, v)
	case [2]float32:
		return k.SetArgUnsafe(i, int(unsafe.Sizeof(v)), unsafe.Pointer(&v))
	case [3]float32:
		v4 := [4]float32{v[0], v[1], v[2], 0}
		return k.SetArgUnsafe(i, int(unsafe.Sizeof(v4)), unsafe.Pointer(&v4))
	case [2]int32:
		return k.SetArgUnsafe(i, int(unsafe.Sizeof(v)), unsafe.Pointer(&v))
	default:
		return fmt.Errorf("%w: %T", ErrArgType, v)
	}
}

func (d *openCLDevice) ReleaseSurface(s Surface) {
	cs, ok := d.surfaces[s.id]
	if !ok {
		return
	}
	cs.mem.Release()
	delete(d.surfaces, s.id)
}

// Close releases any surfaces still held, then kernels, program, queue and
// context in reverse order of creation.
func (d *openCLDevice) Close() {
	for id, cs := range d.surfaces {
		cs.mem.Release()
		delete(d.surfaces, id)
	}
	for i := len(d.programs) - 1; i >= 0; i-- {
		d.programs[i].kernel.Release()
	}
	d.programs = nil
	if d.program != nil {
		d.program.Release()
		d.program = nil
	}
	if d.queue != nil {
		d.queue.Release()
		d.queue = nil
	}
	if d.context != nil {
		d.context.Release()
		d.context = nil
	}
}
