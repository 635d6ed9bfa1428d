package fluid

import "fmt"

type cpuSurface struct {
	format Format
	data   []float32
}

// cpuDevice runs stage programs on the calling goroutine over host slices.
// It is the reference the OpenCL kernels are checked against and the
// device used when no GPU is available.
type cpuDevice struct {
	width, height int

	nextID   int
	surfaces map[int]*cpuSurface
	programs []cpuProgram
}

type cpuProgram struct {
	layout layout
	run    func(d *cpuDevice, a *kernelArgs)
}

var cpuKernels = map[string]cpuProgram{
	advectLayout.kernel:     {advectLayout, (*cpuDevice).advect},
	divergenceLayout.kernel: {divergenceLayout, (*cpuDevice).divergence},
	jacobiLayout.kernel:     {jacobiLayout, (*cpuDevice).jacobi},
	projectLayout.kernel:    {projectLayout, (*cpuDevice).project},
}

// NewCPUDevice returns a software device for a width x height grid.
func NewCPUDevice(width, height int) (Device, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: grid %dx%d", ErrInvalidConfig, width, height)
	}
	return &cpuDevice{
		width:    width,
		height:   height,
		surfaces: make(map[int]*cpuSurface),
	}, nil
}

func (d *cpuDevice) Name() string { return "cpu" }

func (d *cpuDevice) NewSurface(f Format) (Surface, error) {
	if f < Scalar || f > RGB {
		return Surface{}, fmt.Errorf("unsupported surface format %d", f)
	}
	d.nextID++
	d.surfaces[d.nextID] = &cpuSurface{
		format: f,
		data:   make([]float32, d.width*d.height*int(f)),
	}
	return Surface{id: d.nextID, format: f}, nil
}

func (d *cpuDevice) lookup(s Surface) (*cpuSurface, error) {
	cs, ok := d.surfaces[s.id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSurface, s)
	}
	return cs, nil
}

func (d *cpuDevice) Upload(s Surface, data []float32) error {
	cs, err := d.lookup(s)
	if err != nil {
		return err
	}
	if len(data) != len(cs.data) {
		return fmt.Errorf("%w: %s has %d floats, got %d", ErrSurfaceSize, s, len(cs.data), len(data))
	}
	copy(cs.data, data)
	return nil
}

func (d *cpuDevice) Download(s Surface, dst []float32) error {
	cs, err := d.lookup(s)
	if err != nil {
		return err
	}
	if len(dst) != len(cs.data) {
		return fmt.Errorf("%w: %s has %d floats, got %d", ErrSurfaceSize, s, len(cs.data), len(dst))
	}
	copy(dst, cs.data)
	return nil
}

func (d *cpuDevice) Clear(s Surface) error {
	cs, err := d.lookup(s)
	if err != nil {
		return err
	}
	clear(cs.data)
	return nil
}

func (d *cpuDevice) Compile(kernel string) (Program, error) {
	p, ok := cpuKernels[kernel]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownProgram, kernel)
	}
	d.programs = append(d.programs, p)
	return Program(len(d.programs)), nil
}

func (d *cpuDevice) Dispatch(p Program, args []any) error {
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
	a := &kernelArgs{dev: d, layout: prog.layout, args: args}
	prog.run(d, a)
	return a.err
}

func (d *cpuDevice) ReleaseSurface(s Surface) { delete(d.surfaces, s.id) }

func (d *cpuDevice) Close() { d.surfaces = map[int]*cpuSurface{} }

// kernelArgs resolves dispatch arguments by parameter name. The first
// resolution failure is kept in err and later lookups return zero values.
type kernelArgs struct {
	dev    *cpuDevice
	layout layout
	args   []any
	err    error
}

func (a *kernelArgs) value(p Param) any {
	for i, q := range a.layout.params {
		if q == p {
			return a.args[i]
		}
	}
	a.fail(fmt.Errorf("%s: no parameter %q", a.layout.kernel, p))
	return nil
}

func (a *kernelArgs) fail(err error) {
	if a.err == nil {
		a.err = err
	}
}

func (a *kernelArgs) surface(p Param, want Format) []float32 {
	s, ok := a.value(p).(Surface)
	if !ok {
		a.fail(fmt.Errorf("%w: %s is not a surface", ErrArgType, p))
		return nil
	}
	cs, err := a.dev.lookup(s)
	if err != nil {
		a.fail(err)
		return nil
	}
	if cs.format != want {
		a.fail(fmt.Errorf("%w: %s has format %d, want %d", ErrArgType, p, cs.format, want))
		return nil
	}
	return cs.data
}

func (a *kernelArgs) float(p Param) float32 {
	v, ok := a.value(p).(float32)
	if !ok {
		a.fail(fmt.Errorf("%w: %s is not float32", ErrArgType, p))
	}
	return v
}

func (a *kernelArgs) vec2(p Param) [2]float32 {
	v, ok := a.value(p).([2]float32)
	if !ok {
		a.fail(fmt.Errorf("%w: %s is not [2]float32", ErrArgType, p))
	}
	return v
}

func (a *kernelArgs) vec3(p Param) [3]float32 {
	v, ok := a.value(p).([3]float32)
	if !ok {
		a.fail(fmt.Errorf("%w: %s is not [3]float32", ErrArgType, p))
	}
	return v
}

func (a *kernelArgs) grid() (int, int) {
	v, ok := a.value(ParamGridSize).([2]int32)
	if !ok {
		a.fail(fmt.Errorf("%w: %s is not [2]int32", ErrArgType, ParamGridSize))
		return 0, 0
	}
	if int(v[0]) != a.dev.width || int(v[1]) != a.dev.height {
		a.fail(fmt.Errorf("grid %dx%d does not match device %dx%d", v[0], v[1], a.dev.width, a.dev.height))
	}
	return int(v[0]), int(v[1])
}
