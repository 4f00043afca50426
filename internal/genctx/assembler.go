package genctx

import (
	"go/token"

	"gopkg.in/yaml.v3"

	"git.weirdcat.su/weirdcat/vogen/internal/accessor"
	"git.weirdcat.su/weirdcat/vogen/internal/logger"
	"git.weirdcat.su/weirdcat/vogen/internal/types"
)

// Assembler turns parsed source files into class contexts. Everything it
// reports is advisory; it never fails.
type Assembler struct {
	log      logger.Sink
	resolver *ImportResolver
	// allow restricts generation to these struct names when non-empty
	allow map[string]bool
}

// NewAssembler creates an Assembler. classes optionally limits which struct
// names are assembled.
func NewAssembler(log logger.Sink, resolver *ImportResolver, classes []string) *Assembler {
	a := &Assembler{log: log, resolver: resolver}
	if len(classes) > 0 {
		a.allow = make(map[string]bool, len(classes))
		for _, name := range classes {
			a.allow[name] = true
		}
	}
	return a
}

// AddFile assembles the first struct of sf into pc. It reports false when the
// file produced no class context.
func (a *Assembler) AddFile(pc *PackageContext, sf *types.SourceFile) (ClassContext, bool) {
	if len(sf.Types) == 0 {
		a.log.Debug("No types in %s, skipping", sf.Path)
		return ClassContext{}, false
	}
	if len(sf.Types) > 1 {
		a.log.Warn("Unable to handle %d types in %s", len(sf.Types), sf.Path)
	}

	class := sf.Types[0]
	if a.allow != nil && !a.allow[class.Name] {
		a.log.Debug("Skipping %s: not in classes list", class.QualifiedName())
		return ClassContext{}, false
	}

	if !token.IsExported(class.Name) {
		a.log.Warn("Skipping %s: unexported types cannot be converted outside their package", class.QualifiedName())
		return ClassContext{}, false
	}

	a.log.Info("Parsed %s", class.QualifiedName())

	result := accessor.FilterEligible(class)
	if a.log.IsDebugEnabled() {
		for _, r := range result.Rejected {
			a.log.Debug("  Dropping %s.%s (%s): getter %s found=%t, setter %s found=%t",
				class.Name, r.Field.Name, r.Field.Type, r.Getter, !r.MissingGetter, r.Setter, !r.MissingSetter)
		}
	}
	if len(result.Eligible) == 0 {
		a.log.Info("%s has no fields with a getter/setter pair", class.QualifiedName())
	}

	ctx := NewClassContext(class, sf.GoPackage, result.Eligible, sf.Imports, a.resolver)
	pc.Put(ctx)
	return ctx, true
}

// Dump renders pc as YAML for debug output
func Dump(pc *PackageContext) string {
	type field struct {
		Type   string `yaml:"type"`
		Getter string `yaml:"getter"`
		Setter string `yaml:"setter"`
	}
	type class struct {
		Name       string           `yaml:"name"`
		Package    string           `yaml:"packageName"`
		NewName    string           `yaml:"newName"`
		NewPackage string           `yaml:"newPackage"`
		NewFile    string           `yaml:"newFileName"`
		Fields     map[string]field `yaml:"fields"`
	}

	out := struct {
		DefaultPackage string  `yaml:"defaultPackage"`
		Classes        []class `yaml:"classes"`
	}{DefaultPackage: pc.DefaultPackage}

	for _, c := range pc.Classes() {
		entry := class{
			Name:       c.OriginalName,
			Package:    c.OriginalPackage,
			NewName:    c.DerivedName,
			NewPackage: c.DerivedPackage,
			NewFile:    c.DerivedFileName,
			Fields:     make(map[string]field, len(c.Fields)),
		}
		for _, f := range c.Fields {
			entry.Fields[f.Key()] = field{Type: f.Type, Getter: f.Getter, Setter: f.Setter}
		}
		out.Classes = append(out.Classes, entry)
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return err.Error()
	}
	return string(data)
}
