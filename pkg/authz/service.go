package authz

import (
	"context"
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"
	"github.com/sirupsen/logrus"

	"github.com/stonedesk/stonedesk/pkg/configuration"
	"github.com/stonedesk/stonedesk/pkg/serrors"
)

type Config struct {
	ModelPath  string
	PolicyPath string
	Mode       string
	Logger     *logrus.Logger
}

func (c Config) validate() error {
	if c.Mode == ModeDisabled {
		return nil
	}
	if c.ModelPath == "" {
		return fmt.Errorf("authz: model path is required")
	}
	if c.PolicyPath == "" {
		return fmt.Errorf("authz: policy path is required")
	}
	return nil
}

// Service enforces role-based authorization decisions via casbin.
type Service struct {
	cfg      Config
	enforcer *casbin.Enforcer
	logger   *logrus.Entry
	mu       sync.RWMutex
}

func NewService(cfg Config) (*Service, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	var logger *logrus.Entry
	if cfg.Logger != nil {
		logger = cfg.Logger.WithField("component", "authz")
	} else {
		logger = logrus.WithField("component", "authz")
	}

	svc := &Service{cfg: cfg, logger: logger}
	if cfg.Mode == ModeDisabled {
		return svc, nil
	}

	enf, err := casbin.NewEnforcer(cfg.ModelPath, fileadapter.NewAdapter(cfg.PolicyPath))
	if err != nil {
		return nil, fmt.Errorf("authz: failed to initialize enforcer: %w", err)
	}
	if err := enf.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("authz: failed to load policies: %w", err)
	}
	svc.enforcer = enf
	return svc, nil
}

func forbiddenError(req Request) *serrors.BaseError {
	return serrors.NewError(
		"AUTHZ_FORBIDDEN",
		fmt.Sprintf("%s is not allowed to %s %s", req.Subject, req.Action, req.Object),
	)
}

// Authorize returns an error if the request is denied.
func (s *Service) Authorize(ctx context.Context, req Request) error {
	switch s.cfg.Mode {
	case ModeDisabled:
		return nil
	case ModeEnforce:
		allowed, err := s.Check(ctx, req)
		if err != nil {
			return err
		}
		if !allowed {
			s.logger.WithContext(ctx).WithFields(logrus.Fields{
				"subject": req.Subject,
				"object":  req.Object,
				"action":  req.Action,
				"mode":    ModeEnforce,
			}).Warn("authz denied request")
			return forbiddenError(req)
		}
		return nil
	default: // shadow
		allowed, err := s.Check(ctx, req)
		if err != nil {
			return err
		}
		if !allowed {
			s.logger.WithContext(ctx).WithFields(logrus.Fields{
				"subject": req.Subject,
				"object":  req.Object,
				"action":  req.Action,
				"mode":    ModeShadow,
			}).Warn("authz shadow deny")
		}
		return nil
	}
}

// Check evaluates a request without returning an authorization error.
func (s *Service) Check(ctx context.Context, req Request) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.enforcer == nil {
		return true, nil
	}
	res, err := s.enforcer.Enforce(req.Subject, req.Object, req.Action)
	if err != nil {
		return false, fmt.Errorf("authz: enforce failed: %w", err)
	}
	return res, nil
}

// ReloadPolicy reloads policy data from disk.
func (s *Service) ReloadPolicy(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.enforcer == nil {
		return nil
	}
	if err := s.enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("authz: reload policy failed: %w", err)
	}
	s.logger.WithContext(ctx).Info("authz policy reloaded")
	return nil
}

var (
	defaultServiceOnce sync.Once
	defaultService     *Service
	defaultServiceErr  error
)

// Use returns a singleton Service configured from the environment.
func Use() *Service {
	defaultServiceOnce.Do(func() {
		conf := configuration.Use()
		defaultService, defaultServiceErr = NewService(Config{
			ModelPath:  conf.Authz.ModelPath,
			PolicyPath: conf.Authz.PolicyPath,
			Mode:       conf.Authz.Mode,
			Logger:     conf.Logger(),
		})
		if defaultServiceErr != nil {
			panic(defaultServiceErr)
		}
	})
	return defaultService
}
