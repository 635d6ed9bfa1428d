package fluid

// advect moves velocity and colour along the velocity field, injects the
// pending impulse around the pointer and then clears it.
func (s *Simulation) advect() error {
	f := s.fields
	imp := s.impulse
	err := s.stages.advect.Bind().
		Set(ParamGridSize, gridSize(s.cfg)).
		Set(ParamTimestep, s.cfg.Timestep).
		Set(ParamPointer, imp.Position).
		Set(ParamImpulse, imp.Impulse).
		Set(ParamImpulseRadius, imp.Radius).
		Set(ParamImpulseTint, impulseTint(imp.Impulse)).
		Set(ParamVelocity, f.velocity.Front()).
		Set(ParamColour, f.colour.Front()).
		Set(ParamVelocityOut, f.velocity.Back()).
		Set(ParamColourOut, f.colour.Back()).
		Dispatch(s.dev)
	if err != nil {
		return err
	}
	f.velocity.Flip()
	f.colour.Flip()
	s.impulse.Impulse = [2]float32{}
	return nil
}
