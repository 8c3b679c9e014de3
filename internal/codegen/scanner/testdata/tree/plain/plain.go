package plain

// Helper has no directives.
func Helper() {}
