package fluid

// ImpulseState is the pointer interaction carried into the next advection.
// Position and Impulse are in cells; Impulse is the accumulated pointer
// displacement since the last step, already scaled by the divisor.
type ImpulseState struct {
	Position [2]float32
	Impulse  [2]float32
	Radius   float32
}

// OverlayConfig selects which indicator glyphs are drawn and how far apart.
type OverlayConfig struct {
	Velocity bool
	Pressure bool
	Spacing  int
}

// IncreaseSpacing widens the glyph lattice by one pixel.
func (o *OverlayConfig) IncreaseSpacing() { o.Spacing++ }

// DecreaseSpacing narrows the glyph lattice, never below one pixel.
func (o *OverlayConfig) DecreaseSpacing() {
	if o.Spacing > 1 {
		o.Spacing--
	}
}

// Command is a discrete user action applied between steps.
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandToggleVelocity
	CommandTogglePressure
	CommandIncreaseSpacing
	CommandDecreaseSpacing
)

var commandNames = [...]string{
	CommandNone:            "none",
	CommandQuit:            "quit",
	CommandToggleVelocity:  "toggle-velocity",
	CommandTogglePressure:  "toggle-pressure",
	CommandIncreaseSpacing: "increase-spacing",
	CommandDecreaseSpacing: "decrease-spacing",
}

func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return "unknown"
	}
	return commandNames[c]
}

// Apply executes cmd and reports whether the application should quit.
func (s *Simulation) Apply(cmd Command) (quit bool) {
	switch cmd {
	case CommandQuit:
		return true
	case CommandToggleVelocity:
		s.overlay.Velocity = !s.overlay.Velocity
	case CommandTogglePressure:
		s.overlay.Pressure = !s.overlay.Pressure
	case CommandIncreaseSpacing:
		s.overlay.IncreaseSpacing()
	case CommandDecreaseSpacing:
		s.overlay.DecreaseSpacing()
	}
	return false
}

// PointerDown sets the reference position without adding an impulse.
func (s *Simulation) PointerDown(x, y float32) {
	s.impulse.Position = [2]float32{x, y}
}

// PointerMove accumulates the displacement from the last position, scaled
// by the configured divisor, and moves the reference position.
func (s *Simulation) PointerMove(x, y float32) {
	last := s.impulse.Position
	s.impulse.Impulse[0] += (x - last[0]) / s.cfg.ImpulseDivisor
	s.impulse.Impulse[1] += (y - last[1]) / s.cfg.ImpulseDivisor
	s.impulse.Position = [2]float32{x, y}
}

// Impulse returns the pending impulse state.
func (s *Simulation) Impulse() ImpulseState { return s.impulse }

// Overlay returns the current overlay selection.
func (s *Simulation) Overlay() OverlayConfig { return s.overlay }
