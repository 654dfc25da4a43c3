package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/felixgeelhaar/weekplan/internal/infrastructure/config"
	"github.com/felixgeelhaar/weekplan/internal/infrastructure/wiring"
)

func cliActor() string {
	actor := os.Getenv("USER")
	if actor == "" {
		actor = "unknown-human"
	}
	return actor
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func loadServices() (*wiring.Services, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return loadServicesWith(cfg)
}

func loadServicesWith(cfg *config.Config) (*wiring.Services, error) {
	services, err := wiring.BuildServices(cfg, cliActor())
	if err != nil {
		return nil, fmt.Errorf("failed to build services: %w", err)
	}
	return services, nil
}

// datetimeLayouts are tried in order when parsing date flags.
var datetimeLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	time.RFC3339,
	"2006-01-02",
}

func parseDatetime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("cannot parse date %q (expected e.g. '2026-01-20' or '2026-01-20 10:00')", value)
}

func splitCommaList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
