package accessor

import (
	"git.weirdcat.su/weirdcat/vogen/internal/types"
)

// EligibleField is a field with its matched accessor pair
type EligibleField struct {
	Name   string
	Type   string
	Getter string
	Setter string
}

// Key identifies the entry by name and type
func (f EligibleField) Key() string {
	return f.Name + ":" + f.Type
}

// Rejection explains why a field was left out
type Rejection struct {
	Field         types.FieldDescriptor
	Getter        string
	Setter        string
	MissingGetter bool
	MissingSetter bool
}

// Result holds the outcome of filtering one class
type Result struct {
	Eligible []EligibleField
	Rejected []Rejection
}

// FilterEligible applies Match to every field of class in declaration order.
// Entries are keyed by name:type; a repeated key replaces the earlier entry in
// place, so the output order is that of first occurrence.
func FilterEligible(class types.ClassDescriptor) Result {
	result := Result{Eligible: []EligibleField{}}
	index := make(map[string]int)

	for _, field := range class.Fields {
		getter := GetterName(field)
		setter := SetterName(field)
		hasGetter := HasGetter(class, getter, field.Type)
		hasSetter := HasSetter(class, setter, field.Type)

		if !hasGetter || !hasSetter {
			result.Rejected = append(result.Rejected, Rejection{
				Field:         field,
				Getter:        getter,
				Setter:        setter,
				MissingGetter: !hasGetter,
				MissingSetter: !hasSetter,
			})
			continue
		}

		entry := EligibleField{
			Name:   field.Name,
			Type:   field.Type,
			Getter: getter,
			Setter: setter,
		}

		if i, exists := index[entry.Key()]; exists {
			result.Eligible[i] = entry
			continue
		}
		index[entry.Key()] = len(result.Eligible)
		result.Eligible = append(result.Eligible, entry)
	}

	return result
}
