package tools

// Nudge pushes an object along a direction.
//
//scriptmeta:script
//scriptmeta:param key=dir label="Direction" type=Vec3 default="(1.0, 0.0, 0.0)"
//scriptmeta:param key=force type=F64
func Nudge() {}
