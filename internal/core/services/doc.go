// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Optional driven ports may be nil; services skip the work they would
// have delegated.
package services
