package fluid

import "fmt"

// Param names a stage input or output independent of where a particular
// program expects it.
type Param string

const (
	ParamGridSize      Param = "grid_size"
	ParamTimestep      Param = "timestep"
	ParamPointer       Param = "pointer"
	ParamImpulse       Param = "impulse"
	ParamImpulseRadius Param = "impulse_radius"
	ParamImpulseTint   Param = "impulse_tint"
	ParamVelocity      Param = "velocity"
	ParamColour        Param = "colour"
	ParamDivergence    Param = "divergence"
	ParamPressure      Param = "pressure"
	ParamVelocityOut   Param = "velocity_out"
	ParamColourOut     Param = "colour_out"
	ParamDivergenceOut Param = "divergence_out"
	ParamPressureOut   Param = "pressure_out"
)

// layout is the ordered parameter list of a kernel. The index of a Param is
// its binding slot; device kernels are written against the same order.
type layout struct {
	kernel string
	params []Param
}

var (
	advectLayout = layout{"advect", []Param{
		ParamGridSize, ParamTimestep,
		ParamPointer, ParamImpulse, ParamImpulseRadius, ParamImpulseTint,
		ParamVelocity, ParamColour,
		ParamVelocityOut, ParamColourOut,
	}}
	divergenceLayout = layout{"divergence", []Param{
		ParamGridSize, ParamTimestep,
		ParamVelocity,
		ParamDivergenceOut,
	}}
	jacobiLayout = layout{"jacobi", []Param{
		ParamGridSize,
		ParamPressure, ParamDivergence,
		ParamPressureOut,
	}}
	projectLayout = layout{"project", []Param{
		ParamGridSize, ParamTimestep,
		ParamVelocity, ParamPressure,
		ParamVelocityOut,
	}}
)

var layouts = map[string]layout{
	advectLayout.kernel:     advectLayout,
	divergenceLayout.kernel: divergenceLayout,
	jacobiLayout.kernel:     jacobiLayout,
	projectLayout.kernel:    projectLayout,
}

func (l layout) slots() map[Param]int {
	m := make(map[Param]int, len(l.params))
	for i, p := range l.params {
		m[p] = i
	}
	return m
}

// Stage is a pipeline stage as plain data: a compiled program and the slot
// each semantic parameter binds to.
type Stage struct {
	Name    string
	Program Program
	Slots   map[Param]int
}

func newStage(dev Device, name string, l layout) (Stage, error) {
	prog, err := dev.Compile(l.kernel)
	if err != nil {
		return Stage{}, fmt.Errorf("compiling %s stage: %w", name, err)
	}
	return Stage{Name: name, Program: prog, Slots: l.slots()}, nil
}

// Bindings collects argument values for one dispatch of a Stage.
type Bindings struct {
	stage *Stage
	args  []any
	err   error
}

// Bind starts a new argument set for s.
func (s *Stage) Bind() *Bindings {
	return &Bindings{stage: s, args: make([]any, len(s.Slots))}
}

// Set places v in the slot bound to p. Unknown parameters are recorded and
// reported by Dispatch.
func (b *Bindings) Set(p Param, v any) *Bindings {
	slot, ok := b.stage.Slots[p]
	if !ok {
		if b.err == nil {
			b.err = fmt.Errorf("stage %s has no parameter %q", b.stage.Name, p)
		}
		return b
	}
	b.args[slot] = v
	return b
}

// Dispatch submits the stage with the collected bindings.
func (b *Bindings) Dispatch(dev Device) error {
	if b.err != nil {
		return b.err
	}
	for slot, v := range b.args {
		if v == nil {
			return fmt.Errorf("stage %s: slot %d unbound", b.stage.Name, slot)
		}
	}
	if err := dev.Dispatch(b.stage.Program, b.args); err != nil {
		return fmt.Errorf("dispatching %s: %w", b.stage.Name, err)
	}
	return nil
}

// stageSet holds every compiled stage of the pipeline.
type stageSet struct {
	advect     Stage
	divergence Stage
	jacobi     Stage
	project    Stage
}

func compileStages(dev Device) (stageSet, error) {
	var (
		set stageSet
		err error
	)
	if set.advect, err = newStage(dev, "advection", advectLayout); err != nil {
		return set, err
	}
	if set.divergence, err = newStage(dev, "divergence", divergenceLayout); err != nil {
		return set, err
	}
	if set.jacobi, err = newStage(dev, "pressure", jacobiLayout); err != nil {
		return set, err
	}
	if set.project, err = newStage(dev, "projection", projectLayout); err != nil {
		return set, err
	}
	return set, nil
}

// gridSize is the argument value for ParamGridSize.
func gridSize(c Config) [2]int32 { return [2]int32{int32(c.Width), int32(c.Height)} }
