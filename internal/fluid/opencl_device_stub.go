//go:build !opencl

package fluid

func NewOpenCLDevice(width, height int) (Device, error) {
	return nil, ErrOpenCLUnavailable
}
