package mapping

// Entity describes how one storage table is exposed publicly: the column set,
// the storage→public name dictionary and which columns a list may sort on.
// The dictionaries are static; handlers never translate names by hand.
type Entity struct {
	// Name is the public resource name (e.g. "members").
	Name string
	// Table is the storage table (e.g. "membros").
	Table string
	// Columns is the ordered storage column list used to build SELECTs.
	Columns []string
	// Fields maps storage column -> public field name. The mapping is total on
	// publicly exposed fields; columns without an entry pass through unchanged
	// on the way out and are rejected on the way in.
	Fields map[string]string
	// Relations maps a joined storage key to the entity used to translate the
	// nested record (e.g. doacoes row carrying its "membro").
	Relations map[string]*Entity
	// Internal lists audit columns that must never be written from public
	// input even when a Fields entry exists for them.
	Internal map[string]bool
	// DefaultSort is the storage column used when no sort is requested.
	DefaultSort string
	// Sortable lists storage columns a caller may sort on.
	Sortable map[string]bool

	inverse map[string]string
}

func (e *Entity) inverseFields() map[string]string {
	if e.inverse == nil {
		e.inverse = make(map[string]string, len(e.Fields))
		for storage, public := range e.Fields {
			e.inverse[public] = storage
		}
	}
	return e.inverse
}

// ToPublic translates a storage record into its public shape. Columns without
// a dictionary entry pass through unchanged. Joined relations are translated
// with their own entity mapping; a nil relation stays nil instead of blowing
// up the response.
func (e *Entity) ToPublic(record map[string]any) map[string]any {
	if record == nil {
		return nil
	}
	out := make(map[string]any, len(record))
	for key, value := range record {
		name := key
		if public, ok := e.Fields[key]; ok {
			name = public
		}
		if related, ok := e.Relations[key]; ok {
			switch nested := value.(type) {
			case map[string]any:
				out[name] = related.ToPublic(nested)
			default:
				out[name] = nil
			}
			continue
		}
		out[name] = value
	}
	return out
}

// ToStorage translates public input into a partial storage record. Only keys
// present in the input and known to the dictionary are kept, so a partial
// update never clobbers unrelated columns. Unknown keys and internal audit
// columns are dropped, never passed through.
func (e *Entity) ToStorage(input map[string]any) map[string]any {
	out := make(map[string]any, len(input))
	inv := e.inverseFields()
	for key, value := range input {
		storage, ok := inv[key]
		if !ok {
			continue
		}
		if e.Internal[storage] {
			continue
		}
		if _, related := e.Relations[storage]; related {
			continue
		}
		out[storage] = value
	}
	return out
}

// SortColumn resolves a requested public sort field to a storage column,
// falling back to the entity default when the field is unknown or not
// sortable.
func (e *Entity) SortColumn(publicField string) string {
	if publicField == "" {
		return e.DefaultSort
	}
	storage, ok := e.inverseFields()[publicField]
	if !ok {
		storage = publicField
	}
	if e.Sortable[storage] {
		return storage
	}
	return e.DefaultSort
}
