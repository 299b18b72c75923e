package main

import (
	"context"
	"fmt"
	"math"

	"github.com/urfave/cli/v2"

	"github.com/ardentmouse/firmware/estimator"
	"github.com/ardentmouse/firmware/geometry"
	"github.com/ardentmouse/firmware/logging"
	"github.com/ardentmouse/firmware/maze"
	"github.com/ardentmouse/firmware/mouseconfig"
	"github.com/ardentmouse/firmware/operator"
	"github.com/ardentmouse/firmware/sensors"
	"github.com/ardentmouse/firmware/sensors/fake"
	"github.com/ardentmouse/firmware/tracker"
)

var simCommand = &cli.Command{
	Name:  "sim",
	Usage: "wire fake sensors and an operator together and run them",
	Subcommands: []*cli.Command{
		{
			Name:  "run",
			Usage: "run a full search-to-fast-run simulation against a maze file",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "maze", Required: true},
				&cli.IntFlag{Name: "width", Value: 16},
				&cli.StringFlag{Name: "start", Value: "0,0,top"},
				&cli.StringFlag{Name: "goal", Value: "7,7,top"},
				&cli.IntFlag{Name: "max-ticks", Value: 200000},
			},
			Action: runSim,
		},
	},
}

// simMotorConstant converts applied voltage directly to wheel linear
// velocity for the purposes of this simulation; it stands in for the
// plant dynamics a physical motor/gearbox would otherwise supply.
const simMotorConstant = 0.05 // m/s per volt
const simWheelInterval = 0.080
const simWheelRadius = 0.016

func runSim(c *cli.Context) error {
	width := c.Int("width")
	trueMaze, err := loadMaze(c.String("maze"), width)
	if err != nil {
		return err
	}
	start, err := parseCoord(width, c.String("start"))
	if err != nil {
		return err
	}
	goal, err := parseCoord(width, c.String("goal"))
	if err != nil {
		return err
	}

	cfg := simConfig()
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.NewLogger("micromousectl-sim")
	initial := geometry.NewPose(cfg.SquareWidth/2, cfg.SquareWidth/2, 0)

	est := estimator.New(cfg, initial, logger)
	trk, err := tracker.New(cfg, logger)
	if err != nil {
		return err
	}

	exploredStore := maze.NewStore(width)
	leftEncoder := &fake.Encoder{}
	rightEncoder := &fake.Encoder{}
	imu := &fake.IMU{}
	distanceSensor := fake.NewDistanceSensor(0, 0, 0)
	leftMotor := fake.NewMotor(6.0)
	rightMotor := fake.NewMotor(6.0)

	op := operator.New(cfg, exploredStore, start, goal, simWheelRadius,
		leftEncoder, rightEncoder, imu, []sensors.DistanceSensor{distanceSensor},
		leftMotor, rightMotor, est, trk, logger)

	op.Command(operator.Search)

	truePose := initial
	lastMode := op.Mode()
	ticks := 0
	for ; ticks < c.Int("max-ticks"); ticks++ {
		dLeft := leftMotor.Voltage() * simMotorConstant * cfg.Period
		dRight := rightMotor.Voltage() * simMotorConstant * cfg.Period
		forward := (dLeft + dRight) / 2
		dtheta := (dRight - dLeft) / simWheelInterval

		truePose.X += forward * math.Cos(truePose.Theta)
		truePose.Y += forward * math.Sin(truePose.Theta)
		truePose.Theta = geometry.NormalizeAngle(truePose.Theta + dtheta)

		leftEncoder.SetAngle(dLeft / simWheelRadius)
		rightEncoder.SetAngle(dRight / simWheelRadius)
		imu.SetAngularVelocity(dtheta / cfg.Period)
		distanceSensor.SetDistance(rayCastAhead(trueMaze, truePose, cfg.SquareWidth))

		ctx := context.Background()
		if err := op.Tick(ctx); err != nil {
			return err
		}
		if err := op.Run(ctx); err != nil {
			return err
		}

		if op.Mode() != lastMode {
			fmt.Printf("tick %d: %s -> %s\n", ticks, lastMode, op.Mode())
			lastMode = op.Mode()
		}
		if op.Mode() == operator.Idle && ticks > 0 {
			break
		}
	}
	fmt.Printf("stopped after %d ticks in mode %s\n", ticks, op.Mode())
	return nil
}

// rayCastAhead reports the true distance from pose to the wall of its
// current cell directly ahead when that wall is present, and twice the
// square width otherwise (wall absent or off the grid), matching the
// single-cell horizon interpretObservation assumes.
func rayCastAhead(store *maze.Store, pose geometry.Pose, squareWidth float64) float64 {
	x := int(math.Floor(pose.X / squareWidth))
	y := int(math.Floor(pose.Y / squareWidth))
	offsetX := math.Mod(pose.X, squareWidth)
	offsetY := math.Mod(pose.Y, squareWidth)

	cardinal := nearestCardinalHeading(pose.Theta)
	var coord maze.Coord
	var remaining float64
	switch cardinal {
	case 0: // East
		coord = maze.Coord{X: x, Y: y, IsTop: false}
		remaining = squareWidth - offsetX
	case 1: // North
		coord = maze.Coord{X: x, Y: y, IsTop: true}
		remaining = squareWidth - offsetY
	case 2: // West
		coord = maze.Coord{X: x - 1, Y: y, IsTop: false}
		remaining = offsetX
	default: // South
		coord = maze.Coord{X: x, Y: y - 1, IsTop: true}
		remaining = offsetY
	}

	if coord.X < 0 || coord.X >= store.Width() || coord.Y < 0 || coord.Y >= store.Width() {
		return squareWidth * 2
	}
	if store.WallState(coord) == maze.CheckedPresent {
		return remaining
	}
	return squareWidth * 2
}

func nearestCardinalHeading(theta float64) int {
	const quarterTurn = math.Pi / 2
	steps := math.Round(theta / quarterTurn)
	return int(math.Mod(steps+4, 4))
}

func simConfig() mouseconfig.Config {
	wheelInterval := simWheelInterval
	return mouseconfig.Config{
		SquareWidth:               0.18,
		Period:                    0.01,
		KX:                        10,
		KDX:                       1,
		KY:                        10,
		KDY:                       1,
		TranslationalKP:           5,
		RotationalKP:              5,
		ValidControlLowerBound:    0.05,
		FailSafeDistance:          1.0,
		LowZeta:                   1.0,
		LowB:                      1.0,
		MaxVelocity:               1.0,
		MaxAcceleration:           4.0,
		MaxJerk:                   40.0,
		SpinAngularVelocity:       10.0,
		SpinAngularAcceleration:   40.0,
		SpinAngularJerk:           400.0,
		SearchVelocity:            0.3,
		RunSlalomVelocity:         0.5,
		EstimatorCutOffFrequency:  50,
		EstimatorCorrectionWeight: 0.2,
		WheelInterval:             &wheelInterval,
		SlipAngleConst:            1000, // effectively disables slip correction in sim
	}
}
