package storage

import "fmt"

// EngineError is the single error kind a Store surfaces. It wraps the
// underlying engine's diagnostic message; the trie engine decides whether a
// failure aborts the current operation. Absence of a key is never reported
// through this type.
type EngineError struct {
	Reason string
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("storage engine failure: %s", e.Reason)
}

// WrapEngineError converts an engine error into an *EngineError, passing nil
// through unchanged.
func WrapEngineError(err error) error {
	if err == nil {
		return nil
	}
	return &EngineError{Reason: err.Error()}
}
