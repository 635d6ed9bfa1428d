package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/orglofch/gpu-fluid/internal/fluid"
)

// keyCommands maps keys to simulation commands.
var keyCommands = []struct {
	key ebiten.Key
	cmd fluid.Command
}{
	{ebiten.KeyQ, fluid.CommandQuit},
	{ebiten.KeyEscape, fluid.CommandQuit},
	{ebiten.KeyV, fluid.CommandToggleVelocity},
	{ebiten.KeyF, fluid.CommandTogglePressure},
	{ebiten.KeyB, fluid.CommandIncreaseSpacing},
	{ebiten.KeyC, fluid.CommandDecreaseSpacing},
}

// commandsFor returns the commands bound to the keys for which pressed
// reports true, in binding order.
func commandsFor(pressed func(ebiten.Key) bool) []fluid.Command {
	var cmds []fluid.Command
	for _, kc := range keyCommands {
		if pressed(kc.key) {
			cmds = append(cmds, kc.cmd)
		}
	}
	return cmds
}

// handleInput feeds keyboard and pointer input to the simulation and
// reports whether a quit was requested.
func (g *Game) handleInput() bool {
	for _, cmd := range commandsFor(inpututil.IsKeyJustPressed) {
		if g.sim.Apply(cmd) {
			return true
		}
	}

	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.sim.PointerDown(float32(x), float32(y))
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		g.sim.PointerMove(float32(x), float32(y))
	}
	return false
}

// handleDebugControls processes debug overlay hotkeys.
func (g *Game) handleDebugControls() {
	if !g.debug {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.adjustStepsCap(-stepsCapDelta)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.adjustStepsCap(stepsCapDelta)
	}
}
