package geo

import (
	"context"
	"fmt"
	"net/netip"
	"strings"
	"time"

	"linkpulse/internal/model"
	"linkpulse/pkg/util"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
)

const (
	defaultTimeout  = 2 * time.Second
	defaultCacheTTL = 24 * time.Hour
	maxCityLength   = 255
)

// Backend resolves one public address
type Backend interface {
	Name() string
	Lookup(ctx context.Context, addr netip.Addr) (model.Location, error)
	Close() error
}

// Cache is a shared cache of resolved locations, e.g. Redis
type Cache interface {
	GetLocation(ctx context.Context, ip string) (model.Location, bool, error)
	SaveLocation(ctx context.Context, ip string, loc model.Location, ttl time.Duration) error
}

// Config controls the lookup service
type Config struct {
	DatabasePath string
	APIURL       string
	Timeout      time.Duration
	CacheTTL     time.Duration
}

// Service enriches click IPs with country and city. Lookups never fail:
// anything that goes wrong yields an empty Location.
type Service struct {
	backend Backend
	local   *cache.Cache
	shared  Cache
	timeout time.Duration
	ttl     time.Duration
}

// NewService picks a backend: the MaxMind database when a path is configured
// and readable, otherwise the HTTP API when a URL is configured. shared may be nil.
func NewService(cfg Config, shared Cache) *Service {
	var backend Backend

	if cfg.DatabasePath != "" {
		mm, err := NewMaxMindBackend(cfg.DatabasePath)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.DatabasePath).Msg("GeoIP database unavailable, falling back to API")
		} else {
			backend = mm
		}
	}
	if backend == nil && cfg.APIURL != "" {
		backend = NewAPIBackend(cfg.APIURL, cfg.Timeout)
	}

	return NewServiceWithBackend(backend, shared, cfg.Timeout, cfg.CacheTTL)
}

// NewServiceWithBackend builds a service around an explicit backend. backend may be nil.
func NewServiceWithBackend(backend Backend, shared Cache, timeout, ttl time.Duration) *Service {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	if backend != nil {
		log.Info().Str("backend", backend.Name()).Msg("Geo enrichment enabled")
	} else {
		log.Info().Msg("Geo enrichment disabled")
	}

	return &Service{
		backend: backend,
		local:   cache.New(ttl, 2*ttl),
		shared:  shared,
		timeout: timeout,
		ttl:     ttl,
	}
}

// Lookup returns the location of ip. Private, loopback, link-local and
// malformed addresses resolve to an empty Location without external calls.
func (s *Service) Lookup(ctx context.Context, ip string) model.Location {
	addr, ok := publicAddr(ip)
	if !ok || s.backend == nil {
		return model.Location{}
	}
	key := addr.String()

	if v, found := s.local.Get(key); found {
		return v.(model.Location)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if s.shared != nil {
		loc, found, err := s.shared.GetLocation(ctx, key)
		if err != nil {
			log.Debug().Err(err).Str("ip", key).Msg("Geo cache read failed")
		} else if found {
			s.local.SetDefault(key, loc)
			return loc
		}
	}

	loc, err := s.resolve(ctx, addr)
	if err != nil {
		log.Debug().Err(err).Str("ip", key).Str("backend", s.backend.Name()).Msg("Geo lookup failed")
		return model.Location{}
	}

	s.local.SetDefault(key, loc)
	if s.shared != nil {
		if err := s.shared.SaveLocation(ctx, key, loc, s.ttl); err != nil {
			log.Debug().Err(err).Str("ip", key).Msg("Geo cache write failed")
		}
	}

	return loc
}

func (s *Service) resolve(ctx context.Context, addr netip.Addr) (loc model.Location, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("backend panic: %v", r)
		}
	}()

	loc, err = s.backend.Lookup(ctx, addr)
	if err != nil {
		return model.Location{}, err
	}
	return normalize(loc), nil
}

// Close releases the backend
func (s *Service) Close() error {
	if s == nil || s.backend == nil {
		return nil
	}
	return s.backend.Close()
}

func publicAddr(ip string) (netip.Addr, bool) {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		return netip.Addr{}, false
	}

	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return netip.Addr{}, false
	}
	addr = addr.Unmap().WithZone("")

	if addr.IsPrivate() || addr.IsLoopback() || addr.IsLinkLocalUnicast() ||
		addr.IsLinkLocalMulticast() || addr.IsMulticast() || addr.IsUnspecified() {
		return netip.Addr{}, false
	}
	return addr, true
}

func normalize(loc model.Location) model.Location {
	country := strings.ToUpper(strings.TrimSpace(loc.Country))
	if len(country) != 2 {
		country = ""
	}
	return model.Location{
		Country: country,
		City:    util.Truncate(strings.TrimSpace(loc.City), maxCityLength),
	}
}
