// Package meta describes scripts and their parameters, and collects the
// descriptors registered by linked packages into an exportable Schema.
//
// Packages contribute scripts through generated init functions (see the
// scriptmeta gen command) that call Submit with a statically initialized
// ScriptMetaStatic. Once initialization has finished the registry is never
// written again, so CollectSchema and Inventory are safe to call from any
// goroutine.
package meta
