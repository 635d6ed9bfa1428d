package fluid

// project subtracts the pressure gradient so the velocity field becomes
// (approximately) divergence free.
func (s *Simulation) project() error {
	v := &s.fields.velocity
	err := s.stages.project.Bind().
		Set(ParamGridSize, gridSize(s.cfg)).
		Set(ParamTimestep, s.cfg.Timestep).
		Set(ParamVelocity, v.Front()).
		Set(ParamPressure, s.fields.pressure.Front()).
		Set(ParamVelocityOut, v.Back()).
		Dispatch(s.dev)
	if err != nil {
		return err
	}
	v.Flip()
	return nil
}
