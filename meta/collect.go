package meta

// CollectSchema copies every registered script into an owned Schema, in
// Inventory order.
func CollectSchema() Schema {
	return collect(inventory.snapshot())
}

func collect(entries []ScriptInventory) Schema {
	scripts := make([]ScriptMeta, 0, len(entries))
	for _, e := range entries {
		scripts = append(scripts, e.Script.Owned())
	}
	return Schema{Scripts: scripts}
}
