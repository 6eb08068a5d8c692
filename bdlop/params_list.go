package bdlop

var (
	// ParamsLogN9LogQ32 is a default parameter set with N = 512 and an
	// approximately 32-bit modulus. Dimensions and bounds follow Table 2
	// of the paper, targeting 128-bit security.
	ParamsLogN9LogQ32 = ParametersLiteral{
		RingDegree: 1 << 9,
		LogModulus: 32,

		Rows:   1,
		Width:  3,
		MsgDim: 1,

		RandBound: 1,
		MsgBound:  1 << 30,

		Kappa: 36,
	}

	// ParamsLogN10LogQ32 is a parameter set with N = 1024 and an
	// approximately 32-bit modulus.
	ParamsLogN10LogQ32 = ParametersLiteral{
		RingDegree: 1 << 10,
		LogModulus: 32,

		Rows:   1,
		Width:  3,
		MsgDim: 1,

		RandBound: 1,
		MsgBound:  1 << 30,

		Kappa: 36,
	}

	// ParamsLogN9LogQ32MsgDim2 is a parameter set with N = 512 and a
	// two-dimensional message space.
	ParamsLogN9LogQ32MsgDim2 = ParametersLiteral{
		RingDegree: 1 << 9,
		LogModulus: 32,

		Rows:   2,
		Width:  5,
		MsgDim: 2,

		RandBound: 1,
		MsgBound:  1 << 30,

		Kappa: 36,
	}
)
