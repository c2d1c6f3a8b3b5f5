package runtime

import (
	"go.uber.org/zap"

	clipsruntime "github.com/neutronhq/clips-runtime"
	"github.com/neutronhq/clips-runtime/convert"
	"github.com/neutronhq/clips-runtime/data"
	"github.com/neutronhq/clips-runtime/engine"
	"github.com/neutronhq/clips-runtime/errors"
	"github.com/neutronhq/clips-runtime/extaddr"
)

// Environment wraps one engine instance behind the convenience API. An
// owned environment (from New) destroys the instance on Close; a wrapped
// one (from Wrap) borrows it and leaves it running.
type Environment struct {
	eng      clipsruntime.Engine
	registry *extaddr.Registry
	codec    convert.Codec
	log      *zap.Logger
	owned    bool
	closed   bool
}

type config struct {
	log      *zap.Logger
	registry *extaddr.Registry
}

// Option configures an Environment at construction time.
type Option func(*config) error

// WithLogger routes environment and engine logging through log.
func WithLogger(log *zap.Logger) Option {
	return func(c *config) error {
		if log == nil {
			return errors.Misuse(errors.OpCreate, "nil logger")
		}
		c.log = log
		return nil
	}
}

// WithRegistry shares an external-address type registry across
// environments instead of giving this one its own.
func WithRegistry(reg *extaddr.Registry) Option {
	return func(c *config) error {
		if reg == nil {
			return errors.Misuse(errors.OpCreate, "nil registry")
		}
		c.registry = reg
		return nil
	}
}

func buildConfig(opts []Option) (config, error) {
	cfg := config{
		log:      zap.NewNop(),
		registry: extaddr.NewRegistry(),
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}
	return cfg, nil
}

// New creates an environment around a fresh engine instance that it owns.
func New(opts ...Option) (*Environment, error) {
	cfg, err := buildConfig(opts)
	if err != nil {
		return nil, errors.EngineCreate(err, "invalid environment option")
	}
	eng, err := engine.New(
		engine.WithLogger(cfg.log),
		engine.WithRegistry(cfg.registry),
	)
	if err != nil {
		return nil, err
	}
	env := newEnvironment(eng, cfg, true)
	env.log.Debug("environment created", zap.String("id", eng.ID()), zap.Bool("owned", true))
	return env, nil
}

// Wrap creates an environment around an instance created elsewhere. The
// environment drives the instance but never destroys it.
func Wrap(eng clipsruntime.Engine, opts ...Option) (*Environment, error) {
	if eng == nil {
		return nil, errors.Misuse(errors.OpCreate, "nil engine")
	}
	cfg, err := buildConfig(opts)
	if err != nil {
		return nil, errors.EngineCreate(err, "invalid environment option")
	}
	env := newEnvironment(eng, cfg, false)
	env.log.Debug("environment created", zap.String("id", eng.ID()), zap.Bool("owned", false))
	return env, nil
}

func newEnvironment(eng clipsruntime.Engine, cfg config, owned bool) *Environment {
	return &Environment{
		eng:      eng,
		registry: cfg.registry,
		codec:    convert.NewCodec(eng.FalseSymbol()),
		log:      cfg.log,
		owned:    owned,
	}
}

// Close tears the environment down. An owned instance is destroyed, and a
// destroy failure is returned rather than swallowed: the instance is in
// an unrecoverable state and the caller must know. A borrowed instance
// keeps running, registrations included. Closing twice is a no-op.
func (env *Environment) Close() error {
	if env.closed {
		return nil
	}
	env.closed = true
	id := env.eng.ID()
	if env.owned {
		if err := env.eng.Close(); err != nil {
			env.log.Error("engine destroy failed", zap.String("id", id), zap.Error(err))
			return errors.EngineDestroy(err)
		}
		env.registry.Forget(id)
	}
	env.log.Debug("environment closed", zap.String("id", id), zap.Bool("owned", env.owned))
	return nil
}

// MustClose closes the environment and panics on teardown failure. Meant
// for defer in programs where a destroy failure has no recovery path.
func (env *Environment) MustClose() {
	if err := env.Close(); err != nil {
		panic(err)
	}
}

// Engine exposes the wrapped instance for advanced use.
func (env *Environment) Engine() clipsruntime.Engine { return env.eng }

// Registry exposes the external-address type registry bound to this
// environment.
func (env *Environment) Registry() *extaddr.Registry { return env.registry }

// Codec exposes the result decoder bound to this instance's FALSE symbol.
func (env *Environment) Codec() convert.Codec { return env.codec }

// ID returns the wrapped instance's identifier.
func (env *Environment) ID() string { return env.eng.ID() }

// Intern returns the instance's unique symbol atom for text.
func (env *Environment) Intern(text string) *data.Symbol {
	return env.eng.InternSymbol(text)
}

// InternInt returns the instance's unique integer atom for n.
func (env *Environment) InternInt(n int64) *data.Integer {
	return env.eng.InternInteger(n)
}

// InternFloat returns the instance's unique float atom for x.
func (env *Environment) InternFloat(x float64) *data.Float {
	return env.eng.InternFloat(x)
}

// True returns the instance's canonical TRUE symbol.
func (env *Environment) True() *data.Symbol { return env.eng.TrueSymbol() }

// False returns the instance's canonical FALSE symbol.
func (env *Environment) False() *data.Symbol { return env.eng.FalseSymbol() }

// RegisterFunction defines a user function on the instance.
func (env *Environment) RegisterFunction(fn clipsruntime.Function) error {
	return env.eng.DefineFunction(fn)
}

// Functions lists every function callable on the instance, builtins
// included, sorted by name.
func (env *Environment) Functions() []clipsruntime.Function {
	return env.eng.Functions()
}

// Run fires activations on the instance's agenda, up to limit (-1 for no
// limit), and reports how many fired.
func (env *Environment) Run(limit int64) int64 { return env.eng.Run(limit) }

// Reset restores the instance to its initial working state.
func (env *Environment) Reset() { env.eng.Reset() }
