package lighting

type (
	// Flicker varies a light's intensity.
	//
	//scriptmeta:script name="Flicker"
	//scriptmeta:param key=color label="Color" type=ColorRgba default="(1, 0.8, 0.2, 1)"
	//scriptmeta:param key=rate label="Rate (Hz)" type=I64 default=12
	//scriptmeta:param key=tag label="Tag" type=String
	Flicker struct{}

	unrelated int
)
