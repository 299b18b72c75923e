package mouseconfig

// Config enumerates every option the firmware recognizes.
// Units are plain SI floats (meters, radians, seconds, Hz) — unit-of-measure
// wrapper types are explicitly out of scope.
type Config struct {
	// Geometry. Defaults are given beside each field.
	SquareWidth float64 `mapstructure:"square_width"` // meters, default 0.090
	WallWidth   float64 `mapstructure:"wall_width"`    // meters, default 0.006
	FrontOffset float64 `mapstructure:"front_offset"`  // meters, default 0

	// Control period. Required, no default.
	Period float64 `mapstructure:"period"` // seconds

	// Tracker outer-loop gains. Required.
	KX  float64 `mapstructure:"k_x"`
	KDX float64 `mapstructure:"k_dx"`
	KY  float64 `mapstructure:"k_y"`
	KDY float64 `mapstructure:"k_dy"`

	// Tracker inner-loop PID gains. Validate requires the two KP gains; the
	// KI and KD gains are not checked and may be left at zero.
	TranslationalKP float64 `mapstructure:"translational_kp"`
	TranslationalKI float64 `mapstructure:"translational_ki"`
	TranslationalKD float64 `mapstructure:"translational_kd"`
	RotationalKP    float64 `mapstructure:"rotational_kp"`
	RotationalKI    float64 `mapstructure:"rotational_ki"`
	RotationalKD    float64 `mapstructure:"rotational_kd"`

	// xi_threshold: the high/low velocity branch switch point. Required.
	ValidControlLowerBound float64 `mapstructure:"valid_control_lower_bound"`

	// Tracker fail-safe radius. Required.
	FailSafeDistance float64 `mapstructure:"fail_safe_distance"`

	// Kanayama low-velocity gains. Required.
	LowZeta float64 `mapstructure:"low_zeta"`
	LowB    float64 `mapstructure:"low_b"`

	// Straight-line jerk-limited profile limits. Required.
	MaxVelocity     float64 `mapstructure:"max_velocity"`
	MaxAcceleration float64 `mapstructure:"max_acceleration"`
	MaxJerk         float64 `mapstructure:"max_jerk"`

	// Spin-in-place jerk-limited angular profile limits. Required.
	SpinAngularVelocity     float64 `mapstructure:"spin_angular_velocity"`
	SpinAngularAcceleration float64 `mapstructure:"spin_angular_acceleration"`
	SpinAngularJerk         float64 `mapstructure:"spin_angular_jerk"`

	// Exploration and fast-run reference speeds. Required.
	SearchVelocity    float64 `mapstructure:"search_velocity"`
	RunSlalomVelocity float64 `mapstructure:"run_slalom_velocity"`

	// Estimator. CutOffFrequency required; CorrectionWeight defaults to 0
	// (distance-sensor corrections disabled).
	EstimatorCutOffFrequency  float64 `mapstructure:"estimator_cut_off_frequency"`
	EstimatorCorrectionWeight float64 `mapstructure:"estimator_correction_weight"` // in [0, 1], default 0

	// WheelInterval enables two-wheel pose correction when non-nil (no
	// default — absent means the feature is disabled).
	WheelInterval *float64 `mapstructure:"wheel_interval"`

	// Slip model constant. Required.
	SlipAngleConst float64 `mapstructure:"slip_angle_const"`

	// Distance-sensor observation rejection. Defaults below.
	IgnoreRadiusFromPillar float64 `mapstructure:"ignore_radius_from_pillar"` // meters, default 0.010
	IgnoreLengthFromWall   float64 `mapstructure:"ignore_length_from_wall"`   // meters, default 0.008
}

// ApplyDefaults sets every optional field still at its zero value to its
// documented default. Required fields are left untouched; Validate reports
// them missing if they are still zero afterward.
func (c *Config) ApplyDefaults() {
	if c.SquareWidth == 0 {
		c.SquareWidth = 0.090
	}
	if c.WallWidth == 0 {
		c.WallWidth = 0.006
	}
	if c.IgnoreRadiusFromPillar == 0 {
		c.IgnoreRadiusFromPillar = 0.010
	}
	if c.IgnoreLengthFromWall == 0 {
		c.IgnoreLengthFromWall = 0.008
	}
	// FrontOffset and EstimatorCorrectionWeight default to zero already.
}

// Validate reports the first required field still left at its zero value.
// Call ApplyDefaults first so optional fields don't spuriously fail.
func (c *Config) Validate() error {
	type requirement struct {
		name string
		val  float64
	}
	for _, r := range []requirement{
		{"period", c.Period},
		{"k_x", c.KX},
		{"k_dx", c.KDX},
		{"k_y", c.KY},
		{"k_dy", c.KDY},
		{"translational_kp", c.TranslationalKP},
		{"rotational_kp", c.RotationalKP},
		{"valid_control_lower_bound", c.ValidControlLowerBound},
		{"fail_safe_distance", c.FailSafeDistance},
		{"low_zeta", c.LowZeta},
		{"low_b", c.LowB},
		{"max_velocity", c.MaxVelocity},
		{"max_acceleration", c.MaxAcceleration},
		{"max_jerk", c.MaxJerk},
		{"spin_angular_velocity", c.SpinAngularVelocity},
		{"spin_angular_acceleration", c.SpinAngularAcceleration},
		{"spin_angular_jerk", c.SpinAngularJerk},
		{"search_velocity", c.SearchVelocity},
		{"run_slalom_velocity", c.RunSlalomVelocity},
		{"estimator_cut_off_frequency", c.EstimatorCutOffFrequency},
		{"slip_angle_const", c.SlipAngleConst},
	} {
		if r.val == 0 {
			return NewFieldRequiredError(r.name)
		}
	}
	return nil
}
