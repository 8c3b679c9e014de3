package hidden

//scriptmeta:script
func Hidden() {}
