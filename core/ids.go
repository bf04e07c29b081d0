package core

import "strconv"

// NullTypeID is the reserved type id of the null entity.
// The local id of a null entity carries no information and is never compared.
const NullTypeID int32 = -1

// NullID is the null entity id.
var NullID = EntityID{TypeID: NullTypeID}

// EntityID identifies one entity instance: a small type id plus a local id
// unique within that type.
type EntityID struct {
	TypeID  int32
	LocalID int64
}

// NewEntityID returns the id (typeID, localID).
func NewEntityID(typeID int32, localID int64) EntityID {
	return EntityID{TypeID: typeID, LocalID: localID}
}

// IsNull reports whether id is the null entity.
func (id EntityID) IsNull() bool {
	return id.TypeID == NullTypeID
}

// Compare orders ids by type id, then local id. The null id sorts first.
func (id EntityID) Compare(other EntityID) int {
	switch {
	case id.IsNull() && other.IsNull():
		return 0
	case id.IsNull():
		return -1
	case other.IsNull():
		return 1
	case id.TypeID != other.TypeID:
		if id.TypeID < other.TypeID {
			return -1
		}
		return 1
	case id.LocalID < other.LocalID:
		return -1
	case id.LocalID > other.LocalID:
		return 1
	}
	return 0
}

func (id EntityID) String() string {
	if id.IsNull() {
		return "null"
	}
	return strconv.FormatInt(int64(id.TypeID), 10) + "-" + strconv.FormatInt(id.LocalID, 10)
}
