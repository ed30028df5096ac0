package descriptor

import (
	"strings"
)

// Kind identifies the shape a descriptor resolves to
type Kind uint8

const (
	// Invalid is the zero Kind and never produced by Parse
	Invalid Kind = iota
	// String passes a JSON string through
	String
	// Integer passes a JSON number through as an int64 when integral
	Integer
	// Float passes a JSON number through as a float64
	Float
	// Boolean passes a JSON boolean through
	Boolean
	// DateTime parses an ISO-8601 string into a time.Time
	DateTime
	// Object returns the parsed value verbatim
	Object
	// File persists the raw body to disk
	File
	// Array resolves every element against Elem
	Array
	// Map resolves every value of a string-keyed mapping against Elem
	Map
	// Model hydrates a registered model type named by Name
	Model
)

// String returns the grammar token for the kind
func (k Kind) String() string {
	switch k {
	case String:
		return "String"
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case Boolean:
		return "BOOLEAN"
	case DateTime:
		return "DateTime"
	case Object:
		return "Object"
	case File:
		return "File"
	case Array:
		return "Array"
	case Map:
		return "Hash"
	case Model:
		return "Model"
	default:
		return "Invalid"
	}
}

// IsPrimitive reports whether the kind is a scalar passthrough
func (k Kind) IsPrimitive() bool {
	return k == String || k == Integer || k == Float || k == Boolean
}

// Descriptor is the parsed form of a return type string.
//
// Elem is set for Array and Map, Name for Model.
type Descriptor struct {
	Kind Kind
	Elem *Descriptor
	Name string
}

// String renders the descriptor in its canonical grammar form
func (d Descriptor) String() string {
	switch d.Kind {
	case Array:
		return "Array<" + d.elemString() + ">"
	case Map:
		return "Hash<String, " + d.elemString() + ">"
	case Model:
		return d.Name
	default:
		return d.Kind.String()
	}
}

func (d Descriptor) elemString() string {
	if d.Elem == nil {
		return "?"
	}
	return d.Elem.String()
}

// Equal reports whether two descriptors describe the same shape
func (d Descriptor) Equal(other Descriptor) bool {
	if d.Kind != other.Kind || d.Name != other.Name {
		return false
	}
	if d.Elem == nil || other.Elem == nil {
		return d.Elem == other.Elem
	}
	return d.Elem.Equal(*other.Elem)
}

// ArrayOf builds an Array descriptor
func ArrayOf(elem Descriptor) Descriptor {
	return Descriptor{Kind: Array, Elem: &elem}
}

// MapOf builds a Hash<String, T> descriptor
func MapOf(elem Descriptor) Descriptor {
	return Descriptor{Kind: Map, Elem: &elem}
}

// ModelNamed builds a Model descriptor
func ModelNamed(name string) Descriptor {
	return Descriptor{Kind: Model, Name: name}
}

// Of builds a descriptor for a non-container kind
func Of(kind Kind) Descriptor {
	return Descriptor{Kind: kind}
}

var tokens = map[string]Kind{
	"String":   String,
	"Integer":  Integer,
	"Float":    Float,
	"BOOLEAN":  Boolean,
	"DateTime": DateTime,
	"Object":   Object,
	"File":     File,
}

// Parse parses a return type string such as "Array<Hash<String, Pet>>"
func Parse(s string) (Descriptor, error) {
	return parse(s, strings.TrimSpace(s), 0)
}

// MustParse is like Parse but panics on malformed input. Intended for
// package-level descriptors in generated API code.
func MustParse(s string) Descriptor {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

func parse(input, s string, offset int) (Descriptor, error) {
	if s == "" {
		return Descriptor{}, &ParseError{Input: input, Position: offset, Reason: "empty type"}
	}

	if kind, ok := tokens[s]; ok {
		return Descriptor{Kind: kind}, nil
	}

	if inner, ok := unwrap(s, "Array<"); ok {
		elem, err := parse(input, strings.TrimSpace(inner), offset+len("Array<"))
		if err != nil {
			return Descriptor{}, err
		}
		return ArrayOf(elem), nil
	}

	if inner, ok := unwrap(s, "Hash<"); ok {
		key, value, found := strings.Cut(inner, ",")
		if !found {
			return Descriptor{}, &ParseError{Input: input, Position: offset, Reason: "hash requires key and value types"}
		}
		if strings.TrimSpace(key) != "String" {
			return Descriptor{}, &ParseError{Input: input, Position: offset + len("Hash<"), Reason: "hash keys must be String"}
		}
		elem, err := parse(input, strings.TrimSpace(value), offset+len("Hash<")+len(key)+1)
		if err != nil {
			return Descriptor{}, err
		}
		return MapOf(elem), nil
	}

	if strings.ContainsAny(s, "<>,") {
		return Descriptor{}, &ParseError{Input: input, Position: offset, Reason: "unbalanced or unknown generic type"}
	}
	if !isIdentifier(s) {
		return Descriptor{}, &ParseError{Input: input, Position: offset, Reason: "invalid model name"}
	}

	return ModelNamed(s), nil
}

// unwrap strips prefix and the matching trailing '>' when the brackets balance
func unwrap(s, prefix string) (string, bool) {
	if !strings.HasPrefix(s, prefix) || !strings.HasSuffix(s, ">") {
		return "", false
	}
	inner := s[len(prefix) : len(s)-1]

	depth := 0
	for _, r := range inner {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
			if depth < 0 {
				return "", false
			}
		}
	}
	return inner, depth == 0
}

func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		case r == '.' && i > 0:
			// namespaced models, e.g. "v1.Pet"
		default:
			return false
		}
	}
	return true
}
