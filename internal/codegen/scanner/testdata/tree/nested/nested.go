package nested

//scriptmeta:script
func Nested() {}
