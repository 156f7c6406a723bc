package providers

import (
	"context"
	"log/slog"
	"time"
)

// Resolver orchestrates the upstream civic data providers to turn an address
// or ZIP code into a list of elected officials.
type Resolver struct {
	census        *CensusClient
	zippopotam    *ZippopotamClient
	legislators   *LegislatorsClient
	openStates    *OpenStatesClient
	useOpenStates bool

	// now is stubbed in tests for deterministic term-end filtering
	now func() time.Time
}

// ResolverConfig holds the provider clients and feature flags for a Resolver
type ResolverConfig struct {
	Census        *CensusClient
	Zippopotam    *ZippopotamClient
	Legislators   *LegislatorsClient
	OpenStates    *OpenStatesClient
	UseOpenStates bool
}

// NewResolver creates a new provider resolver
func NewResolver(cfg ResolverConfig) *Resolver {
	return &Resolver{
		census:        cfg.Census,
		zippopotam:    cfg.Zippopotam,
		legislators:   cfg.Legislators,
		openStates:    cfg.OpenStates,
		useOpenStates: cfg.UseOpenStates && cfg.OpenStates != nil,
		now:           time.Now,
	}
}

// Officials resolves the officials for an address. When OpenStates is enabled
// it is tried first and any failure soft-falls back to the free federal path.
func (r *Resolver) Officials(ctx context.Context, address string) ([]Official, error) {
	if r.useOpenStates {
		officials, err := r.openStatesOfficials(ctx, address)
		if err == nil {
			return officials, nil
		}
		slog.Warn("OpenStates lookup failed, falling back to federal path", "error", err)
	}
	return r.federalOfficials(ctx, address)
}

// federalOfficials resolves US Senators and the House Representative using
// only no-auth data sources (Zippopotam, Census geocoder, congress-legislators).
func (r *Resolver) federalOfficials(ctx context.Context, address string) ([]Official, error) {
	var state string
	var district int

	if IsZIPCode(address) {
		lat, lon, _, err := r.zippopotam.LookupZIP(ctx, address)
		if err != nil {
			return nil, err
		}
		state, district, err = r.census.ReverseDistrict(ctx, lat, lon)
		if err != nil {
			return nil, err
		}
	} else {
		var err error
		state, district, err = r.census.GeocodeAddress(ctx, address)
		if err != nil {
			return nil, err
		}
	}

	legislators, err := r.legislators.Load(ctx)
	if err != nil {
		return nil, err
	}

	return FederalOfficials(legislators, state, district, r.now())
}

// openStatesOfficials resolves officials via the OpenStates people.geo API,
// geocoding the address to coordinates first.
func (r *Resolver) openStatesOfficials(ctx context.Context, address string) ([]Official, error) {
	var lat, lon float64
	var err error

	if IsZIPCode(address) {
		lat, lon, _, err = r.zippopotam.LookupZIP(ctx, address)
	} else {
		lat, lon, err = r.census.GeocodeAddressCoordinates(ctx, address)
	}
	if err != nil {
		return nil, err
	}

	return r.openStates.PeopleGeo(ctx, lat, lon)
}
