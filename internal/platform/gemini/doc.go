// Package gemini provides an implementation of generation.Suggester backed by
// Google's Gemini API.
//
// A prompt template (embedded by default, overridable from a file) is rendered
// with the room and its existing chores, the model is asked for a JSON reply,
// and the reply is validated into generation.Suggestion values. Transient API
// failures are retried with exponential backoff and jitter; safety blocks and
// malformed replies are not retried.
package gemini
