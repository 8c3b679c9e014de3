// Package registry links every package that registers scripts. Importing it
// for side effects fills the meta registry before main runs.
package registry

//go:generate go run github.com/Alia5/scriptmeta/cmd/scriptmeta gen --root ../.. --include examples/** --registry internal/registry/scripts.go
