package types

import (
	"fmt"
	"strings"
)

// BCKIND is the boundary treatment configured for one domain edge
type BCKIND uint8

const (
	BC_None BCKIND = iota // Unset, never valid after configuration
	BC_Periodic
	BC_Open
	BC_User
)

var bcKindNames = [...]string{"None", "Periodic", "Open", "UserDefined"}

func (bk BCKIND) String() string {
	if int(bk) < len(bcKindNames) {
		return bcKindNames[bk]
	}
	return fmt.Sprintf("BCKIND(%d)", uint8(bk))
}

// Valid reports whether the kind is one the boundary manager can act on
func (bk BCKIND) Valid() bool {
	switch bk {
	case BC_Periodic, BC_Open, BC_User:
		return true
	}
	return false
}

var BCNameMap = map[string]BCKIND{
	"periodic":     BC_Periodic,
	"open":         BC_Open,
	"external":     BC_Open,
	"user":         BC_User,
	"userdefined":  BC_User,
	"user_defined": BC_User,
	"wall":         BC_User,
}

// NewBCKind converts a name from an input file into a BCKIND, case insensitive
func NewBCKind(name string) (bk BCKIND, err error) {
	var ok bool
	if bk, ok = BCNameMap[strings.ToLower(strings.TrimSpace(name))]; !ok {
		err = fmt.Errorf("unknown boundary condition kind: [%s]", name)
	}
	return
}
