package types

// SourceFile is the structural view of one parsed Go source file
type SourceFile struct {
	Path      string
	GoPackage string
	Imports   []ImportSpec
	Types     []ClassDescriptor
}

// ImportSpec is a single import declaration. Name is empty unless the import is aliased.
type ImportSpec struct {
	Name string
	Path string
}

// ClassDescriptor represents a top-level struct together with the methods
// declared on it in the same file
type ClassDescriptor struct {
	Name    string
	Package string
	Fields  []FieldDescriptor
	Methods []MethodSignature
}

// QualifiedName returns the dotted package followed by the type name
func (c ClassDescriptor) QualifiedName() string {
	if c.Package == "" {
		return c.Name
	}
	return c.Package + "." + c.Name
}

// FieldDescriptor is one named struct field with its type as written
type FieldDescriptor struct {
	Name string
	Type string
}

// Key identifies a field by name and type
func (f FieldDescriptor) Key() string {
	return f.Name + ":" + f.Type
}

// MethodSignature describes a method. An empty ReturnType means no results.
type MethodSignature struct {
	Name       string
	ReturnType string
	ParamTypes []string
}

// IsVoid reports whether the method declares no results
func (m MethodSignature) IsVoid() bool {
	return m.ReturnType == ""
}
