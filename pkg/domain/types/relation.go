package types

// RelationKind represents the kind of cause-effect relationship between
// two risks. The set is open: kinds outside the known constants are kept
// as-is and treated as RelationOther by consumers that need a closed set.
type RelationKind string

const (
	RelationTriggers  RelationKind = "triggers"
	RelationAmplifies RelationKind = "amplifies"
	RelationCauses    RelationKind = "causes"
	RelationDependsOn RelationKind = "depends_on"
	RelationOther     RelationKind = "other"
)

// KnownRelationKinds returns the documented relation kinds
func KnownRelationKinds() []RelationKind {
	return []RelationKind{
		RelationTriggers,
		RelationAmplifies,
		RelationCauses,
		RelationDependsOn,
	}
}

// IsKnown checks if the relation kind is one of the documented kinds
func (k RelationKind) IsKnown() bool {
	switch k {
	case RelationTriggers, RelationAmplifies, RelationCauses, RelationDependsOn:
		return true
	default:
		return false
	}
}

// Normalize maps unknown kinds to RelationOther and keeps known kinds
// unchanged, so downstream consumers never pattern-match arbitrary strings.
func (k RelationKind) Normalize() RelationKind {
	if k.IsKnown() {
		return k
	}
	return RelationOther
}

// String returns the string representation of the relation kind
func (k RelationKind) String() string {
	return string(k)
}
