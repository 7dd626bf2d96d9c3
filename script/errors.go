package script

import "fmt"

// OpenFailedError indicates the peripheral rejected the open-for-write
// command. Response carries the peripheral's text.
type OpenFailedError struct {
	FileName string
	Response string
}

func (e *OpenFailedError) Error() string {
	return fmt.Sprintf("open %q rejected: %q", e.FileName, e.Response)
}

// WriteFailedError indicates the peripheral rejected a write command.
// Offset is the cursor position of the failed chunk in the escaped payload.
type WriteFailedError struct {
	Offset   int
	Response string
}

func (e *WriteFailedError) Error() string {
	return fmt.Sprintf("write at offset %d rejected: %q", e.Offset, e.Response)
}

// CloseFailedError indicates the peripheral rejected the close command.
type CloseFailedError struct {
	FileName string
	Response string
}

func (e *CloseFailedError) Error() string {
	return fmt.Sprintf("close %q rejected: %q", e.FileName, e.Response)
}
