package engine

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	clipsruntime "github.com/neutronhq/clips-runtime"
	"github.com/neutronhq/clips-runtime/data"
	"github.com/neutronhq/clips-runtime/errors"
	"github.com/neutronhq/clips-runtime/extaddr"
	"github.com/neutronhq/clips-runtime/resource"
)

// Local is the in-process Engine implementation. One Local owns the atom
// tables, the installed-expression accounting, the function tables and the
// entity table of a single instance.
type Local struct {
	id  string
	log *zap.Logger

	// mu is the instance lock: one logical thread drives the instance at
	// a time. Handlers run outside it so they can call back in.
	mu sync.Mutex

	symbols  map[string]*data.Symbol
	integers map[int64]*data.Integer
	floats   map[float64]*data.Float
	truthy   *data.Symbol
	falsy    *data.Symbol

	builtins map[string]*clipsruntime.Function
	userFns  map[string]*clipsruntime.Function

	entities *resource.Table
	extTypes []clipsruntime.ExternalType
	registry *extaddr.Registry

	installed int
	gensym    uint64
	closed    bool
}

var _ clipsruntime.Engine = (*Local)(nil)

type config struct {
	id       string
	log      *zap.Logger
	registry *extaddr.Registry
}

// Option configures an instance at creation.
type Option func(*config) error

// WithLogger routes the instance's logging through log instead of the
// package's fallback logger.
func WithLogger(log *zap.Logger) Option {
	return func(cfg *config) error {
		if log == nil {
			return errors.Misuse(errors.OpCreate, "nil logger")
		}
		cfg.log = log
		return nil
	}
}

// WithID pins the instance identifier instead of issuing a random one.
// Useful when instances must correlate with identifiers assigned
// elsewhere.
func WithID(id string) Option {
	return func(cfg *config) error {
		if id == "" {
			return errors.Misuse(errors.OpCreate, "empty instance id")
		}
		cfg.id = id
		return nil
	}
}

// WithRegistry attaches the external-address registry the instance's
// registrations live in, so destroying the instance drops them too.
func WithRegistry(reg *extaddr.Registry) Option {
	return func(cfg *config) error {
		if reg == nil {
			return errors.Misuse(errors.OpCreate, "nil registry")
		}
		cfg.registry = reg
		return nil
	}
}

// New creates a fresh engine instance with its boolean atoms interned and
// the builtin function table installed.
func New(opts ...Option) (*Local, error) {
	cfg := config{log: Logger()}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, errors.EngineCreate(err, "invalid engine option")
		}
	}
	if cfg.id == "" {
		cfg.id = uuid.NewString()
	}

	l := &Local{
		id:       cfg.id,
		log:      cfg.log,
		symbols:  make(map[string]*data.Symbol),
		integers: make(map[int64]*data.Integer),
		floats:   make(map[float64]*data.Float),
		builtins: make(map[string]*clipsruntime.Function, len(builtins)),
		userFns:  make(map[string]*clipsruntime.Function),
		entities: resource.NewTable(),
		registry: cfg.registry,
	}

	// The boolean atoms stay interned for the instance's lifetime.
	l.truthy = l.internSymbol("TRUE")
	l.falsy = l.internSymbol("FALSE")
	l.truthy.Retain()
	l.falsy.Retain()

	for i := range builtins {
		fn := builtins[i]
		l.builtins[fn.Name] = &fn
	}

	l.log.Info("engine instance created",
		zap.String("id", l.id),
		zap.Int("builtins", len(l.builtins)))
	return l, nil
}

// ID returns the stable instance identifier issued at creation.
func (l *Local) ID() string { return l.id }

// Close destroys the instance: entity discard hooks run oldest-first and
// the atom and function tables are dropped. Close fails if the instance
// was already destroyed or if expression nodes remain installed, since a
// live argument list means some caller still holds engine-owned memory.
func (l *Local) Close() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return errors.New(errors.OpDestroy, errors.KindEngineFailure).
			Detail("engine instance already destroyed").Build()
	}
	if l.installed != 0 {
		n := l.installed
		l.mu.Unlock()
		l.log.Error("destroy refused, expressions still installed",
			zap.String("id", l.id),
			zap.Int("installed", n))
		return errors.New(errors.OpDestroy, errors.KindEngineFailure).
			Detail("%d expression node(s) still installed", n).Build()
	}
	l.closed = true
	l.symbols = make(map[string]*data.Symbol)
	l.integers = make(map[int64]*data.Integer)
	l.floats = make(map[float64]*data.Float)
	l.userFns = make(map[string]*clipsruntime.Function)
	l.mu.Unlock()

	// Discard hooks are user code; run them outside the instance lock.
	released := l.entities.Close()
	if l.registry != nil {
		l.registry.Forget(l.id)
	}

	l.log.Info("engine instance destroyed",
		zap.String("id", l.id),
		zap.Int("entities_released", released))
	return nil
}

// Run executes pending rule activations, up to limit when limit >= 0. The
// in-process engine keeps no agenda, so the count fired is always zero.
func (l *Local) Run(limit int64) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return 0
	}
	l.log.Debug("run requested", zap.String("id", l.id), zap.Int64("limit", limit))
	return 0
}

// Reset reinitializes working memory: tracked entities are released,
// discard hooks run, and the gensym counter restarts.
func (l *Local) Reset() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.gensym = 0
	l.mu.Unlock()

	released := l.entities.Drain()
	l.log.Debug("instance reset",
		zap.String("id", l.id),
		zap.Int("entities_released", released))
}

// InstalledExpressions reports how many expression nodes are currently
// installed. A caller that built and released argument lists in balance
// sees zero here.
func (l *Local) InstalledExpressions() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.installed
}

// TrackedEntities reports how many engine-owned entities are live.
func (l *Local) TrackedEntities() int {
	return l.entities.Len()
}
