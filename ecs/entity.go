package ecs

import "strconv"

// Entity is an opaque handle: the low 32 bits index a slot, the high 32 bits
// carry the slot's generation at the time the handle was issued.
type Entity uint64

// NoEntity is never issued by a World.
const NoEntity Entity = 0

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

func (e Entity) Valid() bool {
	return e > 0
}

// Ref returns the handle as a plain integer for components that keep weak
// references to other entities.
func (e Entity) Ref() uint64 {
	return uint64(e)
}
