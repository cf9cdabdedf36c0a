package service

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"plateau-gateway/internal/meshcode"
	"plateau-gateway/internal/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// maxCatalogLookups bounds concurrent catalog requests for one call.
const maxCatalogLookups = 4

// CatalogAPI is the part of the PLATEAU client the catalog service uses
type CatalogAPI interface {
	CityGMLCatalog(ctx context.Context, conditions string) (*models.CatalogResponse, error)
	Attributes(ctx context.Context, fileURL, id string, skipCodeListFetch bool) (json.RawMessage, error)
	Features(ctx context.Context, fileURL, sid string) (json.RawMessage, error)
	SpatialIDAttributes(ctx context.Context, sid, featureType string, skipCodeListFetch bool) (json.RawMessage, error)
}

// CatalogService looks up CityGML files and their attributes
type CatalogService struct {
	api CatalogAPI
}

// NewCatalogService creates a new catalog service
func NewCatalogService(api CatalogAPI) *CatalogService {
	return &CatalogService{api: api}
}

// ConditionForPoint returns the third-level mesh condition containing the point.
func (s *CatalogService) ConditionForPoint(lat, lon float64) (string, error) {
	code, err := meshcode.Encode(lat, lon, 3)
	if err != nil {
		return "", fmt.Errorf("service: failed to encode mesh code: %w", err)
	}
	return meshcode.CatalogCondition(code)
}

// ListCityGML returns the URLs of every file of the feature types published
// for the conditions. Conditions are looked up concurrently and each
// response is filtered for every requested type. URLs keep the order of the
// types, then of the conditions; duplicates are dropped.
func (s *CatalogService) ListCityGML(ctx context.Context, conditions, featureTypes []string) (*models.CatalogURLs, error) {
	if len(conditions) == 0 {
		return nil, fmt.Errorf("%w: at least one condition is required", ErrInvalidInput)
	}
	for _, c := range conditions {
		if strings.TrimSpace(c) == "" {
			return nil, fmt.Errorf("%w: conditions cannot be empty", ErrInvalidInput)
		}
	}
	types, err := uniqueFeatureTypes(featureTypes)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.CatalogResponse, len(conditions))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxCatalogLookups)
	for i, cond := range conditions {
		g.Go(func() error {
			resp, err := s.api.CityGMLCatalog(gctx, cond)
			if err != nil {
				return fmt.Errorf("service: catalog lookup for %q failed: %w", cond, err)
			}
			responses[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &models.CatalogURLs{
		Conditions:   conditions,
		FeatureTypes: types,
		URLs:         []string{},
		ByType:       make(map[string][]string, len(types)),
	}
	seen := make(map[string]struct{})
	for _, ft := range types {
		perType := []string{}
		seenType := make(map[string]struct{})
		for _, resp := range responses {
			for _, u := range filterURLs(resp, ft) {
				if _, ok := seenType[u]; ok {
					continue
				}
				seenType[u] = struct{}{}
				perType = append(perType, u)

				if _, ok := seen[u]; !ok {
					seen[u] = struct{}{}
					result.URLs = append(result.URLs, u)
				}
			}
		}
		result.ByType[ft] = perType
	}

	if len(result.URLs) == 0 {
		log.Warn().
			Strs("conditions", conditions).
			Strs("feature_types", types).
			Msg("no CityGML files found for the conditions")
	}

	return result, nil
}

// uniqueFeatureTypes validates the requested types and drops repeats.
func uniqueFeatureTypes(featureTypes []string) ([]string, error) {
	if len(featureTypes) == 0 {
		return nil, fmt.Errorf("%w: at least one feature type is required", ErrInvalidInput)
	}
	types := make([]string, 0, len(featureTypes))
	for _, ft := range featureTypes {
		if !models.IsFeatureType(ft) {
			return nil, fmt.Errorf("%w: unknown feature type %q", ErrInvalidInput, ft)
		}
		if !slices.Contains(types, ft) {
			types = append(types, ft)
		}
	}
	return types, nil
}

func filterURLs(resp *models.CatalogResponse, featureType string) []string {
	if resp == nil {
		return nil
	}
	var urls []string
	for _, city := range resp.Cities {
		for _, f := range city.Files[featureType] {
			if f.URL != "" {
				urls = append(urls, f.URL)
			}
		}
	}
	return urls
}

// Attributes returns the attributes of one feature
func (s *CatalogService) Attributes(ctx context.Context, fileURL, id string, skipCodeListFetch bool) (json.RawMessage, error) {
	if fileURL == "" || id == "" {
		return nil, fmt.Errorf("%w: url and id are required", ErrInvalidInput)
	}
	out, err := s.api.Attributes(ctx, fileURL, id, skipCodeListFetch)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get attributes: %w", err)
	}
	return out, nil
}

// Features returns the feature IDs of a file inside a spatial ID
func (s *CatalogService) Features(ctx context.Context, fileURL, sid string) (json.RawMessage, error) {
	if fileURL == "" || sid == "" {
		return nil, fmt.Errorf("%w: url and sid are required", ErrInvalidInput)
	}
	out, err := s.api.Features(ctx, fileURL, sid)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get features: %w", err)
	}
	return out, nil
}

// SpatialIDAttributes returns the attributes of features of one type per spatial ID
func (s *CatalogService) SpatialIDAttributes(ctx context.Context, sid, featureType string, skipCodeListFetch bool) (json.RawMessage, error) {
	if sid == "" || featureType == "" {
		return nil, fmt.Errorf("%w: sid and type are required", ErrInvalidInput)
	}
	out, err := s.api.SpatialIDAttributes(ctx, sid, featureType, skipCodeListFetch)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get spatial id attributes: %w", err)
	}
	return out, nil
}
