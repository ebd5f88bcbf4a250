package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// TownRefKind distinguishes the states a resident's town field can be in
type TownRefKind int

const (
	// TownUnrecorded means the field, or the whole resident, is absent
	TownUnrecorded TownRefKind = iota
	// TownExplicitlyNone means the field is stored as null
	TownExplicitlyNone
	// TownDefaultZero means the field is stored as 0, or as a string that reads as 0
	TownDefaultZero
	// TownNamed means the field names a town
	TownNamed
)

// TownRef is a resident's town field.
// Unrecorded and DefaultZero both act as the sentinel 0 when compared.
type TownRef struct {
	Kind   TownRefKind
	Name   string
	// Quoted marks a sentinel decoded from a string; Name keeps its text
	Quoted bool
}

// NamedTown returns a reference to the named town
func NamedTown(name string) TownRef {
	return TownRef{Kind: TownNamed, Name: name}
}

// NoTown returns the explicit null reference
func NoTown() TownRef {
	return TownRef{Kind: TownExplicitlyNone}
}

// ZeroTown returns the literal 0 reference
func ZeroTown() TownRef {
	return TownRef{Kind: TownDefaultZero}
}

// IsZero reports whether the reference is the sentinel 0
func (t TownRef) IsZero() bool {
	return t.Kind == TownUnrecorded || t.Kind == TownDefaultZero
}

// IsNone reports whether the reference is an explicit null
func (t TownRef) IsNone() bool {
	return t.Kind == TownExplicitlyNone
}

// Equal compares two references the way the persisted values compare:
// all sentinel forms are equal, null equals null, names compare exactly.
func (t TownRef) Equal(other TownRef) bool {
	switch {
	case t.IsZero() || other.IsZero():
		return t.IsZero() && other.IsZero()
	case t.IsNone() || other.IsNone():
		return t.IsNone() && other.IsNone()
	default:
		return t.Name == other.Name
	}
}

// String renders the reference as it appears in narrative lines
func (t TownRef) String() string {
	switch {
	case t.Kind == TownNamed, t.Quoted:
		return t.Name
	case t.Kind == TownExplicitlyNone:
		return "null"
	default:
		return "0"
	}
}

// UnmarshalJSON decodes null, numbers and strings into the matching kind
func (t *TownRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = NoTown()
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return fmt.Errorf("failed to decode town name: %w", err)
		}
		if zeroText(name) {
			*t = TownRef{Kind: TownDefaultZero, Name: name, Quoted: true}
			return nil
		}
		*t = NamedTown(name)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("failed to decode town reference %s: %w", string(data), err)
	}
	if f, err := number.Float64(); err == nil && f == 0 {
		*t = ZeroTown()
		return nil
	}
	*t = NamedTown(number.String())
	return nil
}

// zeroText reports whether a stored string compares loosely equal to 0:
// blank, or numeric with value zero.
func zeroText(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && f == 0
}

// MarshalJSON encodes the reference back to its persisted form
func (t TownRef) MarshalJSON() ([]byte, error) {
	switch {
	case t.Kind == TownNamed, t.Quoted:
		return json.Marshal(t.Name)
	case t.Kind == TownExplicitlyNone:
		return []byte("null"), nil
	default:
		return []byte("0"), nil
	}
}
