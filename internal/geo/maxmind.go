package geo

import (
	"context"
	"net"
	"net/netip"

	"linkpulse/internal/model"

	"github.com/oschwald/geoip2-golang"
)

// MaxMindBackend reads a GeoIP2 or GeoLite2 City database
type MaxMindBackend struct {
	db *geoip2.Reader
}

// NewMaxMindBackend opens the database at path
func NewMaxMindBackend(path string) (*MaxMindBackend, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, err
	}
	return &MaxMindBackend{db: db}, nil
}

// Name implements Backend
func (b *MaxMindBackend) Name() string { return "maxmind" }

// Lookup implements Backend
func (b *MaxMindBackend) Lookup(ctx context.Context, addr netip.Addr) (model.Location, error) {
	record, err := b.db.City(net.IP(addr.AsSlice()))
	if err != nil {
		return model.Location{}, err
	}

	return model.Location{
		Country: record.Country.IsoCode,
		City:    record.City.Names["en"],
	}, nil
}

// Close closes the database reader
func (b *MaxMindBackend) Close() error {
	return b.db.Close()
}
