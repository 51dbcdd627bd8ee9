package board

// This file contains some sample positions, used solely for testing.

import "strings"

// SamplePosition is a position in the 65-character string format.
type SamplePosition string

var (
	// ForcedPass has Black to move with no legal move. White's only move
	// afterwards is (1,3).
	ForcedPass = SamplePosition("B" + "OX" + strings.Repeat("E", 62))

	// TwoEmpties has White to move with only (4,8) and (5,8) empty. White
	// can play either.
	TwoEmpties = SamplePosition("W" + strings.Repeat("O", 24) + "OXXXXXXE" + "OXXXXXXE" +
		strings.Repeat("O", 24))

	// Wipeout is a finished game: White has every disc on the board.
	Wipeout = SamplePosition("B" + strings.Repeat("O", 10) + strings.Repeat("E", 54))
)

// Position decodes the sample. It panics on a malformed sample.
func (s SamplePosition) Position() Position {
	p, err := FromString(string(s))
	if err != nil {
		panic(err)
	}
	return p
}
