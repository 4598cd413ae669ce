package appstate

import "fmt"

// StorageParseError reports a persisted slot that could not be read back.
// The slot's default is used in its place and startup continues.
type StorageParseError struct {
	Key string
	Err error
}

func (e *StorageParseError) Error() string {
	return fmt.Sprintf("stored %s is unreadable, using default: %v", e.Key, e.Err)
}

func (e *StorageParseError) Unwrap() error { return e.Err }
