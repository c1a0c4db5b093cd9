// Package services implements the driving port interfaces.
// Services contain the core routing pipeline and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no external dependencies beyond the
// standard library.
package services
