package control

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/ardentmouse/firmware/logging"
)

// pid is a PID controller with output saturation and anti-windup clamping
// on the integral term.
type pid struct {
	name  string
	input string

	kp, ki, kd float64

	limitUp, limitLo         float64
	intSatLimUp, intSatLimLo float64

	error float64
	int   float64
	sat   int // +1 saturated high, -1 saturated low, 0 not saturated

	y []Signal
}

func newPID(cfg BlockConfig, logger *logging.Logger) (Block, error) {
	p := &pid{name: cfg.Name}
	if err := p.configure(cfg); err != nil {
		return nil, err
	}
	return p, nil
}

func attrFloat(attr map[string]interface{}, key string, def float64) float64 {
	if v, ok := attr[key]; ok {
		if f, ok := v.(float64); ok {
			return f
		}
	}
	return def
}

func (p *pid) configure(cfg BlockConfig) error {
	if len(cfg.DependsOn) != 1 {
		return errors.Errorf("pid block %s should have 1 input got %d", cfg.Name, len(cfg.DependsOn))
	}
	_, hasKd := cfg.Attribute["Kd"]
	_, hasKp := cfg.Attribute["Kp"]
	_, hasKi := cfg.Attribute["Ki"]
	if !hasKd && !hasKp && !hasKi {
		return errors.Errorf("pid block %s should have at least one Ki, Kp or Kd field", cfg.Name)
	}
	p.input = cfg.DependsOn[0]
	p.kp = attrFloat(cfg.Attribute, "Kp", 0)
	p.ki = attrFloat(cfg.Attribute, "Ki", 0)
	p.kd = attrFloat(cfg.Attribute, "Kd", 0)
	p.limitUp = attrFloat(cfg.Attribute, "LimitUp", 0)
	p.limitLo = attrFloat(cfg.Attribute, "LimitLo", 0)
	p.intSatLimUp = attrFloat(cfg.Attribute, "IntSatLimUp", 0)
	p.intSatLimLo = attrFloat(cfg.Attribute, "IntSatLimLo", 0)
	p.y = []Signal{MakeSignal(cfg.Name, 1)}
	return nil
}

func (p *pid) Next(ctx context.Context, inputs []Signal, dt time.Duration) ([]Signal, bool) {
	in, ok := findSignal(inputs, p.input)
	if !ok {
		return nil, false
	}
	errVal := in.GetSignalValueAt(0)
	dtSec := dt.Seconds()

	derivative := 0.0
	if dtSec > 0 {
		derivative = (errVal - p.error) / dtSec
	}

	// Anti-windup: only accumulate the integral while not saturated, or
	// while the new error would pull the output back off the rail.
	if p.sat == 0 || (p.sat > 0 && errVal < 0) || (p.sat < 0 && errVal > 0) {
		p.int += errVal * dtSec
	}
	if p.intSatLimUp != 0 || p.intSatLimLo != 0 {
		if p.int > p.intSatLimUp {
			p.int = p.intSatLimUp
		}
		if p.int < p.intSatLimLo {
			p.int = p.intSatLimLo
		}
	}

	out := p.kp*errVal + p.ki*p.int + p.kd*derivative

	p.sat = 0
	if p.limitUp != 0 || p.limitLo != 0 {
		if out > p.limitUp {
			out = p.limitUp
			p.sat = 1
		} else if out < p.limitLo {
			out = p.limitLo
			p.sat = -1
		}
	}

	p.error = errVal
	p.y[0].SetSignalValueAt(0, out)
	return p.y, true
}

func (p *pid) Reset() {
	p.error = 0
	p.int = 0
	p.sat = 0
}
