package authcore

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/washhub/authcore/jwt"
	"github.com/washhub/authcore/notify"
	"github.com/washhub/authcore/otp"
	"github.com/washhub/authcore/password"
)

// Builder assembles an [Engine]. Construction is allocation-only; the one
// exception is Build when constant-time login is enabled, which precomputes
// the synthetic hash.
type Builder struct {
	config  Config
	store   UserStore
	sender  notify.MessageSender
	logger  *zap.Logger
	metrics *Metrics
	otpGen  otp.Generator
	clock   func() time.Time
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{}
}

// WithConfig sets the engine configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithStore sets the user store. Required.
func (b *Builder) WithStore(store UserStore) *Builder {
	b.store = store
	return b
}

// WithSender sets the outbound message sender. Required.
func (b *Builder) WithSender(sender notify.MessageSender) *Builder {
	b.sender = sender
	return b
}

// WithLogger sets the structured logger. Defaults to a no-op logger.
func (b *Builder) WithLogger(logger *zap.Logger) *Builder {
	b.logger = logger
	return b
}

// WithMetrics attaches operation counters. Optional.
func (b *Builder) WithMetrics(m *Metrics) *Builder {
	b.metrics = m
	return b
}

// WithOTPGenerator overrides the reset-code source. Intended for tests; the
// default is the uniform random generator and production wirings should not
// touch this.
func (b *Builder) WithOTPGenerator(g otp.Generator) *Builder {
	b.otpGen = g
	return b
}

// WithClock overrides the engine clock. Intended for tests.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.clock = now
	return b
}

// Build validates the wiring and returns a ready Engine.
func (b *Builder) Build() (*Engine, error) {
	cfg := b.config
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if b.store == nil {
		return nil, errors.New("user store is required")
	}
	if b.sender == nil {
		return nil, errors.New("message sender is required")
	}

	logger := b.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := b.clock
	if clock == nil {
		clock = time.Now
	}

	tokens, err := jwt.NewManager(jwt.Config{
		AccessSecret:  cfg.JWT.AccessSecret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		AccessTTL:     cfg.JWT.AccessTTL,
		RefreshTTL:    cfg.JWT.RefreshTTL,
		TimeFunc:      clock,
	})
	if err != nil {
		return nil, err
	}

	hasher, err := password.NewHasher(cfg.Password.Cost)
	if err != nil {
		return nil, err
	}

	otpGen := b.otpGen
	if otpGen == nil {
		otpGen = otp.NewGenerator()
	}

	e := &Engine{
		config:     cfg,
		store:      b.store,
		dispatcher: notify.NewDispatcher(b.sender, cfg.Notify.DeliveryPolicy, cfg.Notify.DefaultCountryCode, logger),
		tokens:     tokens,
		hasher:     hasher,
		otpGen:     otpGen,
		metrics:    b.metrics,
		logger:     logger,
		now:        clock,
	}

	if cfg.Hardening.ConstantTimeLogin {
		e.syntheticHash, err = hasher.SyntheticHash()
		if err != nil {
			return nil, err
		}
	}
	return e, nil
}
