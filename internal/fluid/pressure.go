package fluid

import "fmt"

// solvePressure relaxes the pressure Poisson equation from zero for a fixed
// number of Jacobi iterations. There is no convergence test.
func (s *Simulation) solvePressure() error {
	p := &s.fields.pressure
	if err := s.dev.Clear(p.Front()); err != nil {
		return fmt.Errorf("clearing pressure: %w", err)
	}
	b := s.stages.jacobi.Bind().
		Set(ParamGridSize, gridSize(s.cfg)).
		Set(ParamDivergence, s.fields.divergence)
	for i := 0; i < s.cfg.Iterations; i++ {
		err := b.Set(ParamPressure, p.Front()).
			Set(ParamPressureOut, p.Back()).
			Dispatch(s.dev)
		if err != nil {
			return fmt.Errorf("iteration %d: %w", i, err)
		}
		p.Flip()
	}
	return nil
}
