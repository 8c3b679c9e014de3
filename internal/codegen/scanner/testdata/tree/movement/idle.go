package movement

//scriptmeta:script
type Idle struct{}
