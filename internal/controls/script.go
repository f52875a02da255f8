package controls

import (
	"fmt"
	"math"
	"os"

	"github.com/san-kum/discwalk/internal/driver"
	lua "github.com/yuin/gopher-lua"
)

// EntryPoint is the Lua function a controls script must define. It receives
// the 1-based read count and returns step, delta.
const EntryPoint = "controls"

// Script computes parameters with a Lua function, e.g.
//
//	function controls(tick)
//	  return base_step, 10 + (tick % 40)
//	end
type Script struct {
	L    *lua.LState
	fn   lua.LValue
	tick int
}

// NewScript compiles src and exposes base as the globals base_step and
// base_delta.
func NewScript(src string, base driver.Params) (*Script, error) {
	L := lua.NewState()
	L.SetGlobal("base_step", lua.LNumber(base.Step))
	L.SetGlobal("base_delta", lua.LNumber(base.Delta))

	if err := L.DoString(src); err != nil {
		L.Close()
		return nil, fmt.Errorf("failed to load controls script: %v", err)
	}
	fn := L.GetGlobal(EntryPoint)
	if fn.Type() != lua.LTFunction {
		L.Close()
		return nil, fmt.Errorf("controls script must define function %s(tick), got %s", EntryPoint, fn.Type())
	}
	return &Script{L: L, fn: fn}, nil
}

func LoadScript(path string, base driver.Params) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewScript(string(data), base)
}

func (s *Script) Params() (driver.Params, error) {
	s.tick++
	if err := s.L.CallByParam(lua.P{Fn: s.fn, NRet: 2, Protect: true}, lua.LNumber(s.tick)); err != nil {
		return driver.Params{}, fmt.Errorf("%w: script: %v", driver.ErrConfigurationMissing, err)
	}
	rawStep, rawDelta := s.L.Get(-2), s.L.Get(-1)
	s.L.Pop(2)

	step, ok := rawStep.(lua.LNumber)
	if !ok {
		return driver.Params{}, fmt.Errorf("%w: script step is %s, not a number", driver.ErrConfigurationMissing, rawStep.Type())
	}
	delta, ok := rawDelta.(lua.LNumber)
	if !ok {
		return driver.Params{}, fmt.Errorf("%w: script delta is %s, not a number", driver.ErrConfigurationMissing, rawDelta.Type())
	}
	if d := float64(delta); d < 0 || d > math.MaxUint8 || math.IsNaN(d) {
		return driver.Params{}, fmt.Errorf("%w: script delta %v out of range", driver.ErrConfigurationMissing, d)
	}

	p := driver.Params{Step: float64(step), Delta: uint8(math.Floor(float64(delta)))}
	if err := validate(p); err != nil {
		return driver.Params{}, err
	}
	return p, nil
}

func (s *Script) Close() {
	if s.L != nil {
		s.L.Close()
	}
}
