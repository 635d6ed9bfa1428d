package fluid

func (s *Simulation) computeDivergence() error {
	return s.stages.divergence.Bind().
		Set(ParamGridSize, gridSize(s.cfg)).
		Set(ParamTimestep, s.cfg.Timestep).
		Set(ParamVelocity, s.fields.velocity.Front()).
		Set(ParamDivergenceOut, s.fields.divergence).
		Dispatch(s.dev)
}
