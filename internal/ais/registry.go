package ais

import (
	"fmt"
	"sort"
)

// Schema binds a message type discriminant to its decode handler and any
// post-processing of embedded composite strings.
type Schema struct {
	// decode performs structural extraction of the per-type payload from
	// the raw JSON object into the message.
	decode func(raw []byte, m *Message) error

	// post runs after a successful structural decode. It resolves embedded
	// composite strings (UTC timestamp, ETA) into split numeric fields.
	// Nil for schemas with no secondary parse.
	post func(m *Message)

	// opaque marks schemas whose binary application payload is carried
	// through undecoded (types 6, 8, 17).
	opaque bool
}

// schemas is the closed dispatch table, one handler per discriminant,
// built once at process start and read-only thereafter.
var schemas = buildSchemas()

// addSchema registers one schema for the given discriminants. It panics on
// a duplicate so a shadowed handler cannot ship.
func addSchema(reg map[int]*Schema, s *Schema, types ...int) {
	for _, t := range types {
		if _, dup := reg[t]; dup {
			panic(fmt.Sprintf("ais: duplicate schema for type %d", t))
		}
		reg[t] = s
	}
}

// buildSchemas constructs the dispatch table.
func buildSchemas() map[int]*Schema {
	reg := make(map[int]*Schema)
	add := func(s *Schema, types ...int) { addSchema(reg, s, types...) }

	add(&Schema{decode: decodePosition}, 1, 2, 3)
	add(&Schema{decode: decodeBaseStation, post: postTimestamp}, 4, 11)
	add(&Schema{decode: decodeStaticVoyage, post: postETA}, 5)
	add(&Schema{decode: decodeAddressedBinary, opaque: true}, 6)
	add(&Schema{decode: decodeAcknowledge}, 7, 13)
	add(&Schema{decode: decodeBroadcastBinary, opaque: true}, 8)
	add(&Schema{decode: decodeSARAircraft}, 9)
	add(&Schema{decode: decodeUTCInquiry}, 10)
	add(&Schema{decode: decodeSafetyAddressed}, 12)
	add(&Schema{decode: decodeSafetyBroadcast}, 14)
	add(&Schema{decode: decodeInterrogation}, 15)
	add(&Schema{decode: decodeAssignment}, 16)
	add(&Schema{decode: decodeGNSSBroadcast, opaque: true}, 17)
	add(&Schema{decode: decodeClassBPosition}, 18)
	add(&Schema{decode: decodeClassBExtended}, 19)
	add(&Schema{decode: decodeLinkManagement}, 20)
	add(&Schema{decode: decodeAidToNavigation}, 21)
	add(&Schema{decode: decodeChannelMgmt}, 22)
	add(&Schema{decode: decodeStaticData}, 24)

	return reg
}

// SupportedTypes returns the sorted list of message types the registry can
// decode.
func SupportedTypes() []int {
	types := make([]int, 0, len(schemas))
	for t := range schemas {
		types = append(types, t)
	}
	sort.Ints(types)
	return types
}

// Supported reports whether the given type discriminant has a schema.
func Supported(msgType int) bool {
	_, ok := schemas[msgType]
	return ok
}
