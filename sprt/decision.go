// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package sprt

// Decision is the state of a sequential test.
type Decision int

const (
	Undecided  Decision = iota // no threshold crossed yet
	AcceptNull                 // likelihood ratio fell to the lower threshold
	RejectNull                 // likelihood ratio rose to the upper threshold
)

func (d Decision) String() string {
	switch d {
	case AcceptNull:
		return "accept"
	case RejectNull:
		return "reject"
	default:
		return "undecided"
	}
}

// Code is the tabular encoding of the decision: 0 for accepting the null,
// 1 for rejecting it and None while undecided.
func (d Decision) Code() string {
	switch d {
	case AcceptNull:
		return "0"
	case RejectNull:
		return "1"
	default:
		return "None"
	}
}

// Terminal reports whether the decision is final.
func (d Decision) Terminal() bool {
	return d != Undecided
}
