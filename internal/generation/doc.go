// Package generation defines the boundary to external AI services that
// propose new chores for a room. The Gemini adapter lives in
// internal/platform/gemini; the task service only sees the Suggester interface.
package generation
