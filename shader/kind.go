package shader

import (
	"fmt"
	"strings"
)

// Kind names a shading variant.
type Kind uint8

// Shading variants. KindStellar is the only emissive one.
const (
	KindTerran Kind = iota
	KindDesert
	KindVolcanic
	KindFrozen
	KindLunar
	KindJovian
	KindSaturnian
	KindNeptunian
	KindStellar

	kindCount
)

var kindNames = [kindCount]string{
	KindTerran:    "terran",
	KindDesert:    "desert",
	KindVolcanic:  "volcanic",
	KindFrozen:    "frozen",
	KindLunar:     "lunar",
	KindJovian:    "jovian",
	KindSaturnian: "saturnian",
	KindNeptunian: "neptunian",
	KindStellar:   "stellar",
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k < kindCount
}

// Emissive reports whether the kind ignores lighting and glows.
func (k Kind) Emissive() bool {
	return k == KindStellar
}

// ParseKind resolves a kind name, ignoring case and surrounding spaces.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("shader: unknown kind %q", s)
}

// Kinds returns every defined kind in declaration order.
func Kinds() []Kind {
	ks := make([]Kind, kindCount)
	for i := range ks {
		ks[i] = Kind(i)
	}
	return ks
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("shader: invalid kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
