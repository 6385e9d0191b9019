package msc

// Nameable is anything the catalog can put a display name on.
type Nameable interface {
	Name() string
}

// Type is the command_format byte of an MSC frame: the class of show
// equipment a command is addressed to.
type Type uint8

const (
	TypeUnknown   Type = 0x00
	TypeLighting  Type = 0x01
	TypeSound     Type = 0x10
	TypeFireworks Type = 0x61
	TypeAll       Type = 0x7F
)

// ParseType maps a command_format byte to a Type. Anything outside the four
// supported formats is TypeUnknown.
func ParseType(b byte) Type {
	switch Type(b) {
	case TypeLighting, TypeSound, TypeFireworks, TypeAll:
		return Type(b)
	default:
		return TypeUnknown
	}
}

func (t Type) Name() string {
	switch t {
	case TypeLighting:
		return "LIGHTING"
	case TypeSound:
		return "SOUND"
	case TypeFireworks:
		return "FIREWORKS"
	case TypeAll:
		return "ALL"
	case TypeUnknown:
		return "UNKNOWN"
	default:
		return "UNKNOWN"
	}
}

func (t Type) String() string { return t.Name() }

// Code is an MSC command byte.
type Code uint8

const (
	CodeInvalid       Code = 0x00
	CodeGo            Code = 0x01
	CodeStop          Code = 0x02
	CodeResume        Code = 0x03
	CodeTimedGo       Code = 0x04
	CodeLoad          Code = 0x05
	CodeSet           Code = 0x06
	CodeFire          Code = 0x07
	CodeAllOff        Code = 0x08
	CodeRestore       Code = 0x09
	CodeReset         Code = 0x0A
	CodeGoOff         Code = 0x0B
	CodeStandbyPlus   Code = 0x11
	CodeStandbyMinus  Code = 0x12
	CodeSequencePlus  Code = 0x13
	CodeSequenceMinus Code = 0x14
)

// entry describes one catalog slot. skip is the number of fixed data bytes
// that precede the cue/list fields (TIMED_GO carries a 5 byte time code).
type entry struct {
	name  string
	valid bool
	cue   bool
	list  bool
	skip  int
}

const invalidName = "INVALID"

var invalid = entry{name: invalidName}

// commands is indexed by command byte. Unassigned slots stay invalid.
var commands = [...]entry{
	CodeInvalid:       invalid,
	CodeGo:            {name: "GO", valid: true, cue: true, list: true},
	CodeStop:          {name: "STOP", valid: true, cue: true, list: true},
	CodeResume:        {name: "RESUME", valid: true, cue: true, list: true},
	CodeTimedGo:       {name: "TIMED GO", valid: true, cue: true, list: true, skip: 5},
	CodeLoad:          {name: "LOAD", valid: true, cue: true, list: true},
	CodeSet:           {name: "SET", valid: true},
	CodeFire:          {name: "FIRE", valid: true},
	CodeAllOff:        {name: "ALL OFF", valid: true},
	CodeRestore:       {name: "RESTORE", valid: true},
	CodeReset:         {name: "RESET", valid: true},
	CodeGoOff:         {name: "GO-OFF", valid: true, cue: true, list: true},
	0x0C:              invalid,
	0x0D:              invalid,
	0x0E:              invalid,
	0x0F:              invalid,
	0x10:              invalid,
	CodeStandbyPlus:   {name: "STANDBY+", valid: true, list: true},
	CodeStandbyMinus:  {name: "STANDBY-", valid: true, list: true},
	CodeSequencePlus:  {name: "SEQUENCE+", valid: true, list: true},
	CodeSequenceMinus: {name: "SEQUENCE-", valid: true, list: true},
}

// CatalogSize is the number of slots in the command table.
const CatalogSize = len(commands)

func lookup(c Code) entry {
	if int(c) >= len(commands) {
		return invalid
	}
	return commands[c]
}

// ParseCode maps a command byte to a Code. Bytes outside the table, and
// unassigned slots inside it, become CodeInvalid.
func ParseCode(b byte) Code {
	if !lookup(Code(b)).valid {
		return CodeInvalid
	}
	return Code(b)
}

// Name returns the display name of the command, "INVALID" for anything the
// catalog does not know.
func (c Code) Name() string {
	return lookup(c).name
}

func (c Code) String() string { return c.Name() }

// Valid reports whether c names a cataloged command.
func (c Code) Valid() bool {
	return lookup(c).valid
}

// HasCue reports whether frames carrying c include a Q_number field.
func (c Code) HasCue() bool { return lookup(c).cue }

// HasList reports whether frames carrying c include a Q_list field.
func (c Code) HasList() bool { return lookup(c).list }

// Codes returns every valid command in catalog order.
func Codes() []Code {
	out := make([]Code, 0, len(commands))
	for i, e := range commands {
		if e.valid {
			out = append(out, Code(i))
		}
	}
	return out
}

// CodeByName finds a command by its display name or a loose variant of it
// ("timed_go", "standby+", "go-off").
func CodeByName(name string) (Code, bool) {
	want := normalizeName(name)
	for i, e := range commands {
		if e.valid && normalizeName(e.name) == want {
			return Code(i), true
		}
	}
	return CodeInvalid, false
}

// TypeByName finds a command format by name ("sound", "light", "pyro", "all").
func TypeByName(name string) (Type, bool) {
	switch normalizeName(name) {
	case "LIGHTING", "LIGHT":
		return TypeLighting, true
	case "SOUND":
		return TypeSound, true
	case "FIREWORKS", "PYRO":
		return TypeFireworks, true
	case "ALL":
		return TypeAll, true
	}
	return TypeUnknown, false
}

func normalizeName(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case b >= 'a' && b <= 'z':
			out = append(out, b-'a'+'A')
		case b == ' ' || b == '_' || b == '-':
			// separators are not significant
		default:
			out = append(out, b)
		}
	}
	return string(out)
}
