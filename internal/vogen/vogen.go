// Package vogen runs a generation pass: walk each configured package, parse
// its files, assemble the value objects and write them out.
package vogen

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"git.weirdcat.su/weirdcat/vogen/internal/config"
	"git.weirdcat.su/weirdcat/vogen/internal/emitter"
	"git.weirdcat.su/weirdcat/vogen/internal/failure"
	"git.weirdcat.su/weirdcat/vogen/internal/genctx"
	"git.weirdcat.su/weirdcat/vogen/internal/generator"
	"git.weirdcat.su/weirdcat/vogen/internal/logger"
	"git.weirdcat.su/weirdcat/vogen/internal/parser"
	"git.weirdcat.su/weirdcat/vogen/internal/render"
	"git.weirdcat.su/weirdcat/vogen/internal/walker"
)

type options struct {
	fs       afero.Fs
	log      logger.Sink
	renderer render.Renderer
}

// Option customizes a pass
type Option func(*options)

// WithFs runs the pass against fs instead of the OS filesystem
func WithFs(fs afero.Fs) Option {
	return func(o *options) { o.fs = fs }
}

// WithLogger sends diagnostics to log
func WithLogger(log logger.Sink) Option {
	return func(o *options) { o.log = log }
}

// WithRenderer replaces the renderer selected by the config strategy
func WithRenderer(r render.Renderer) Option {
	return func(o *options) { o.renderer = r }
}

// Generate performs one full regeneration described by cfg. Any failure is
// returned as a *failure.GenerationError.
func Generate(cfg *config.Config, opts ...Option) error {
	o := options{fs: afero.NewOsFs(), log: logger.Discard()}
	for _, opt := range opts {
		opt(&o)
	}

	if cfg == nil {
		return &failure.GenerationError{Err: errors.New("no configuration")}
	}
	if err := cfg.Validate(); err != nil {
		return &failure.GenerationError{Err: err}
	}

	p, err := newPass(cfg, o)
	if err != nil {
		return &failure.GenerationError{Err: err}
	}
	return p.run()
}

// pass owns everything built for one call to Generate
type pass struct {
	cfg       *config.Config
	fs        afero.Fs
	log       logger.Sink
	emitter   *emitter.Emitter
	assembler *genctx.Assembler
	resolver  *genctx.ImportResolver
	prefixes  map[string]string
}

func newPass(cfg *config.Config, o options) (*pass, error) {
	renderer := o.renderer
	if renderer == nil {
		var err error
		if renderer, err = newRenderer(cfg, o.fs); err != nil {
			return nil, err
		}
	}

	resolver, err := genctx.NewImportResolver(o.fs, cfg.SourceRoot, cfg.OutputRoot, cfg.SourceImportPrefix, cfg.OutputImportPrefix)
	if err != nil {
		return nil, fmt.Errorf("resolving import paths: %w", err)
	}

	return &pass{
		cfg:       cfg,
		fs:        o.fs,
		log:       o.log,
		emitter:   emitter.New(o.fs, cfg.OutputRoot, renderer),
		assembler: genctx.NewAssembler(o.log, resolver, cfg.Classes),
		resolver:  resolver,
		prefixes:  genctx.FuncPrefixes(cfg.Packages),
	}, nil
}

func newRenderer(cfg *config.Config, fs afero.Fs) (render.Renderer, error) {
	switch cfg.Strategy {
	case config.StrategyJennifer:
		return generator.New(), nil
	default:
		return render.NewTemplateEngine(render.TemplateOptions{Dir: cfg.TemplateDir, Fs: fs})
	}
}

func (p *pass) run() error {
	p.log.Info("testOption: %s", p.cfg.TestOption)

	if err := p.emitter.Clean(); err != nil {
		return &failure.GenerationError{Err: err}
	}

	total := 0
	for _, pkg := range p.cfg.Packages {
		n, err := p.generatePackage(pkg)
		if err != nil {
			p.log.Error("Generation failed for %s: %v", pkg, err)
			return &failure.GenerationError{Package: pkg, Err: err}
		}
		total += n
	}

	p.log.Info("Generated %d value objects in %s", total, p.cfg.OutputRoot)
	return nil
}

// generatePackage assembles every class of pkg before writing anything, then
// writes the value objects followed by the converter file
func (p *pass) generatePackage(pkg string) (int, error) {
	p.log.Info("src: %s", walker.PackageDir(p.cfg.SourceRoot, pkg))

	files, err := walker.ListSourceFiles(p.fs, p.cfg.SourceRoot, pkg, walker.Options{Exclude: p.cfg.Exclude})
	if err != nil {
		return 0, err
	}

	fileName := genctx.ConverterFileName(p.cfg.ConverterFile, pkg, len(p.cfg.Packages) > 1)
	pc := genctx.NewPackageContext(pkg, p.cfg.DefaultPackage, fileName, p.resolver)
	pc.FuncPrefix = p.prefixes[pkg]

	for _, path := range files {
		sf, err := parser.ParseFile(p.fs, path, pkg)
		if err != nil {
			return 0, err
		}
		p.assembler.AddFile(pc, sf)
	}

	if p.log.IsDebugEnabled() {
		p.log.Debug("Context for %s:\n%s", pkg, genctx.Dump(pc))
	}

	for _, c := range pc.Classes() {
		written, err := p.emitter.EmitClass(c)
		if err != nil {
			return 0, err
		}
		p.log.Debug("Wrote %s", written)
	}

	written, err := p.emitter.EmitPackage(pc)
	if err != nil {
		return 0, err
	}
	p.log.Debug("Wrote %s", written)

	return pc.Len(), nil
}
