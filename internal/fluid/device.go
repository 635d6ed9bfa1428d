package fluid

import (
	"errors"
	"fmt"
	"strings"
)

// Format is the number of float32 channels stored per grid cell.
type Format int

const (
	Scalar Format = 1
	Vec2   Format = 2
	RGB    Format = 3
)

// Surface is a device-owned grid of cells. The zero value is not a valid
// surface.
type Surface struct {
	id     int
	format Format
}

// Format reports the channel count of s.
func (s Surface) Format() Format { return s.format }

// Valid reports whether s was returned by a device.
func (s Surface) Valid() bool { return s.id > 0 }

func (s Surface) String() string { return fmt.Sprintf("surface#%d/%d", s.id, s.format) }

// Program is a compiled stage program on a device.
type Program int

var (
	ErrUnknownSurface = errors.New("unknown surface")
	ErrUnknownProgram = errors.New("unknown program")
	ErrSurfaceSize    = errors.New("host buffer does not match surface size")
	ErrArgType        = errors.New("unsupported argument type")

	// ErrAliasedSurface is returned when a dispatch would read and write the
	// same surface.
	ErrAliasedSurface = errors.New("surface bound as both input and output")

	// ErrOpenCLUnavailable is returned by NewOpenCLDevice in builds without
	// the opencl tag.
	ErrOpenCLUnavailable = errors.New("OpenCL support is not enabled; rebuild with -tags opencl")
)

// Device is the command interface the pipeline drives. Implementations
// execute commands in submission order; Download blocks until every command
// submitted before it has completed.
//
// Argument values passed to Dispatch are one of Surface, float32,
// [2]float32, [3]float32 or [2]int32, placed at the binding slot of the
// stage parameter they satisfy.
type Device interface {
	Name() string
	NewSurface(f Format) (Surface, error)
	Upload(s Surface, data []float32) error
	Download(s Surface, dst []float32) error
	Clear(s Surface) error
	Compile(kernel string) (Program, error)
	Dispatch(p Program, args []any) error
	ReleaseSurface(s Surface)
	Close()
}

func isOutput(p Param) bool { return strings.HasSuffix(string(p), "_out") }

// checkAliasing rejects argument sets where an output surface is also bound
// as an input.
func checkAliasing(l layout, args []any) error {
	inputs := make(map[int]Param)
	for i, p := range l.params {
		if s, ok := args[i].(Surface); ok && !isOutput(p) {
			inputs[s.id] = p
		}
	}
	for i, p := range l.params {
		s, ok := args[i].(Surface)
		if !ok || !isOutput(p) {
			continue
		}
		if in, dup := inputs[s.id]; dup {
			return fmt.Errorf("%w: %s is %s and %s", ErrAliasedSurface, s, in, p)
		}
	}
	return nil
}
