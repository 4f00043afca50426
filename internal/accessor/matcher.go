// Package accessor decides which struct fields have a complete getter/setter pair.
//
// Types are compared as written in source. No alias or import resolution takes
// place, so a field of type int never matches an accessor declared with int64.
package accessor

import (
	"unicode"
	"unicode/utf8"

	"git.weirdcat.su/weirdcat/vogen/internal/types"
)

// BoolType is the field type that switches the getter prefix from Get to Is
const BoolType = "bool"

// Capitalize upper-cases the first rune of s
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// GetterName returns the expected getter for a field
func GetterName(field types.FieldDescriptor) string {
	if field.Type == BoolType {
		return "Is" + Capitalize(field.Name)
	}
	return "Get" + Capitalize(field.Name)
}

// SetterName returns the expected setter for a field
func SetterName(field types.FieldDescriptor) string {
	return "Set" + Capitalize(field.Name)
}

// HasGetter reports whether class declares a method named getter that takes
// no parameters and returns exactly fieldType
func HasGetter(class types.ClassDescriptor, getter, fieldType string) bool {
	return hasMethod(class, getter, fieldType, nil)
}

// HasSetter reports whether class declares a method named setter with a single
// parameter of fieldType and no results
func HasSetter(class types.ClassDescriptor, setter, fieldType string) bool {
	return hasMethod(class, setter, "", &fieldType)
}

// Match looks up the accessor pair of field. ok is false unless both exist.
func Match(class types.ClassDescriptor, field types.FieldDescriptor) (getter, setter string, ok bool) {
	getter = GetterName(field)
	setter = SetterName(field)
	ok = HasGetter(class, getter, field.Type) && HasSetter(class, setter, field.Type)
	return getter, setter, ok
}

// hasMethod scans the methods of class linearly. A nil paramType means the
// method must take no parameters.
func hasMethod(class types.ClassDescriptor, name, returnType string, paramType *string) bool {
	for _, method := range class.Methods {
		if method.Name != name {
			continue
		}

		// check return type, "" asks for a method without results
		if returnType == "" {
			if !method.IsVoid() {
				continue
			}
		} else if method.ReturnType != returnType {
			continue
		}

		// check param type
		if paramType == nil && len(method.ParamTypes) == 0 {
			return true
		}
		if paramType != nil && len(method.ParamTypes) == 1 && method.ParamTypes[0] == *paramType {
			return true
		}
	}
	return false
}
