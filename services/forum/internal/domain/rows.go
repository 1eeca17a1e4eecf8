package domain

// Storage rows carry the soft-delete marker under one of these column names.
var deletedFlagKeys = [...]string{"is_delete", "isDelete"}

// DeletedFlag resolves the deleted marker of a raw row to a single boolean.
// The first present key wins; a row with neither key is treated as active.
// A present but non-boolean value is a data type violation for entity.
func DeletedFlag(entity string, p Payload) (bool, error) {
	for _, key := range deletedFlagKeys {
		v, ok := p[key]
		if !ok || v == nil {
			continue
		}
		b, ok := v.(bool)
		if !ok {
			return false, &ValidationError{Entity: entity, Kind: KindDataType, Field: key}
		}
		return b, nil
	}
	return false, nil
}
