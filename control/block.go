package control

import (
	"github.com/pkg/errors"

	"github.com/ardentmouse/firmware/logging"
)

// New constructs the Block named by cfg.Type, analogous to rdk's
// component registry: callers outside this package assemble a control loop
// purely from BlockConfig values without depending on the concrete block
// types.
func New(cfg BlockConfig, logger *logging.Logger) (Block, error) {
	switch cfg.Type {
	case "gain":
		return newGain(cfg, logger)
	case "sum":
		return newSum(cfg, logger)
	case "pid":
		return newPID(cfg, logger)
	case "constant":
		return newConstant(cfg, logger)
	case "derivative":
		return newDerivative(cfg, logger)
	case "low_pass":
		return newLowPass(cfg, logger)
	default:
		return nil, errors.Errorf("unknown control block type %s", cfg.Type)
	}
}
