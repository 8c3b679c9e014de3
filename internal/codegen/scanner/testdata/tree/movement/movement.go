package movement

// Walker moves an entity along the ground.
//
//scriptmeta:script
//scriptmeta:param key=speed label="Speed" type=F64 default="4.5"
//scriptmeta:param key=jump label="Can Jump" type=bool
type Walker struct {
	Speed float64
	Jump  bool
}

// Spin rotates forever.
//
//scriptmeta:script name="Spin Forever"
//scriptmeta:param key=axis type=Vec3 default="(0, 1, 0)"
func Spin(axis [3]float64) {}

// Step is not a script.
func (w *Walker) Step() {}
