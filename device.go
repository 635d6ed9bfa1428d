package main

import (
	"fmt"

	"github.com/orglofch/gpu-fluid/internal/fluid"
	"go.uber.org/zap"
)

// openDevice returns the compute device named by kind. "auto" prefers
// OpenCL and falls back to the software device.
func openDevice(kind string, width, height int, log *zap.Logger) (fluid.Device, error) {
	switch kind {
	case "cpu":
		return fluid.NewCPUDevice(width, height)
	case "opencl":
		return fluid.NewOpenCLDevice(width, height)
	case "auto", "":
		dev, err := fluid.NewOpenCLDevice(width, height)
		if err == nil {
			return dev, nil
		}
		log.Warn("OpenCL unavailable, using software device", zap.Error(err))
		return fluid.NewCPUDevice(width, height)
	default:
		return nil, fmt.Errorf("unknown device %q (want auto, cpu or opencl)", kind)
	}
}
