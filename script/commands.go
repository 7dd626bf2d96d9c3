package script

import "fmt"

// Command wrappers for the peripheral's file interpreter. Arguments must
// already be escaped. The longest wrapper ("file.write('')", 14 bytes) stays
// within CommandOverhead.

func openCommand(escapedName string) string {
	return fmt.Sprintf("file.open('%s','w')", escapedName)
}

func writeCommand(escapedChunk string) string {
	return fmt.Sprintf("file.write('%s')", escapedChunk)
}

func closeCommand() string {
	return "file.close()"
}
