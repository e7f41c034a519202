package campusalert

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/campusalert/campusalert/pkg/config"
	"github.com/campusalert/campusalert/pkg/deliverylog"
	"github.com/campusalert/campusalert/pkg/email"
	"github.com/campusalert/campusalert/pkg/logger"
	"github.com/campusalert/campusalert/pkg/redis"
	"github.com/campusalert/campusalert/pkg/translate"
)

// NewFromEnv builds an engine from environment configuration. It picks the
// email transport from the Postmark/SMTP settings (falling back to the file
// based development sender), the delivery log backend from
// DELIVERY_LOG_BACKEND, and an optional translation catalog from
// TRANSLATION_CATALOG. Explicit options win over anything derived from the
// environment.
func NewFromEnv(ctx context.Context, opts ...Option) (*Engine, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, fmt.Errorf("load engine config: %w", err)
	}

	var logCfg logger.Config
	if err := config.Load(&logCfg); err != nil {
		return nil, fmt.Errorf("load logger config: %w", err)
	}
	log := logger.New(
		logger.WithConfig(logCfg),
		logger.WithAttr(slog.String("service", "campusalert")),
	)

	base := []Option{WithLogger(log)}

	var mailCfg email.Config
	if err := config.Load(&mailCfg); err != nil {
		return nil, fmt.Errorf("load email config: %w", err)
	}
	switch {
	case mailCfg.PostmarkServerToken != "":
		sender, err := email.NewPostmarkSender(mailCfg)
		if err != nil {
			return nil, fmt.Errorf("build postmark sender: %w", err)
		}
		base = append(base, WithEmailSender(sender))
	case mailCfg.SMTPHost != "":
		sender, err := email.NewSMTPSender(mailCfg)
		if err != nil {
			return nil, fmt.Errorf("build smtp sender: %w", err)
		}
		base = append(base, WithEmailSender(sender))
	}

	if strings.EqualFold(cfg.DeliveryLogBackend, "redis") {
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return nil, fmt.Errorf("load redis config: %w", err)
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		base = append(base, WithDeliveryStore(deliverylog.NewRedisStorage(client)))
	}

	if cfg.CatalogPath != "" {
		adapter, err := catalogAdapterFor(cfg.CatalogPath)
		if err != nil {
			return nil, err
		}
		base = append(base, WithCatalogAdapter(adapter))
	}

	return New(ctx, cfg, append(base, opts...)...)
}

// catalogAdapterFor picks a catalog parser from the file extension.
func catalogAdapterFor(path string) (translate.CatalogAdapter, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return translate.NewFileAdapter(translate.NewJSONParser(), path), nil
	case ".yaml", ".yml":
		return translate.NewFileAdapter(translate.NewYAMLParser(), path), nil
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", filepath.Ext(path))
	}
}
