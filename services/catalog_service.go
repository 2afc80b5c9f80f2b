package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/CruzAprc/nutri-testes-wl-sub001/models"
)

// Catalog is the external food/exercise reference service the engine
// consumes. The engine never writes to it.
type Catalog interface {
	FindByNameSubstring(query string, limit int) ([]models.FoodItem, error)
	GetNutrientProfile(foodID string) (models.NutrientProfile, error)
	GetUnitMetadata(foodID string) (*models.UnitMetadata, error)
}

// resolveFoodByName matches a name-based food reference against the
// catalog: exact normalized-name match first, else the closest hit.
// Returns nil for an orphan name (the catalog has no foreign keys back
// to plans, so orphans are an expected state, not an error).
func resolveFoodByName(catalog Catalog, name string) (*models.FoodItem, error) {
	items, err := catalog.FindByNameSubstring(name, 5)
	if err != nil {
		return nil, &ExternalServiceError{Op: "fetch catalog data", Err: err}
	}
	want := NormalizeName(name)
	for i := range items {
		if NormalizeName(items[i].Name) == want {
			return &items[i], nil
		}
	}
	if len(items) > 0 {
		return &items[0], nil
	}
	return nil, nil
}

type CatalogService struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewCatalogService reads CATALOG_API_URL / CATALOG_API_KEY from the
// environment.
func NewCatalogService() *CatalogService {
	return &CatalogService{
		baseURL: os.Getenv("CATALOG_API_URL"),
		apiKey:  os.Getenv("CATALOG_API_KEY"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type catalogSearchResponse struct {
	Foods []models.FoodItem `json:"foods"`
}

func (s *CatalogService) FindByNameSubstring(query string, limit int) ([]models.FoodItem, error) {
	u := fmt.Sprintf("%s/foods?q=%s&limit=%d&key=%s",
		s.baseURL, url.QueryEscape(query), limit, s.apiKey)

	resp, err := s.client.Get(u)
	if err != nil {
		return nil, &ExternalServiceError{Op: "catalog search", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ExternalServiceError{Op: "catalog search", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ExternalServiceError{
			Op:  "catalog search",
			Err: fmt.Errorf("catalog API error %d: %s", resp.StatusCode, string(body)),
		}
	}

	var sr catalogSearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, &ExternalServiceError{Op: "catalog search", Err: fmt.Errorf("failed to parse catalog JSON: %w", err)}
	}
	return sr.Foods, nil
}

func (s *CatalogService) getFood(foodID string) (*models.FoodItem, error) {
	u := fmt.Sprintf("%s/foods/%s?key=%s", s.baseURL, url.PathEscape(foodID), s.apiKey)

	resp, err := s.client.Get(u)
	if err != nil {
		return nil, &ExternalServiceError{Op: "catalog lookup", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ExternalServiceError{Op: "catalog lookup", Err: err}
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("food %s: %w", foodID, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ExternalServiceError{
			Op:  "catalog lookup",
			Err: fmt.Errorf("catalog API error %d: %s", resp.StatusCode, string(body)),
		}
	}

	var f models.FoodItem
	if err := json.Unmarshal(body, &f); err != nil {
		return nil, &ExternalServiceError{Op: "catalog lookup", Err: fmt.Errorf("failed to parse catalog JSON: %w", err)}
	}
	return &f, nil
}

func (s *CatalogService) GetNutrientProfile(foodID string) (models.NutrientProfile, error) {
	f, err := s.getFood(foodID)
	if err != nil {
		return models.NutrientProfile{}, err
	}
	return f.Profile(), nil
}

// GetUnitMetadata returns nil (and no error) for a food with no
// semantic unit defined.
func (s *CatalogService) GetUnitMetadata(foodID string) (*models.UnitMetadata, error) {
	f, err := s.getFood(foodID)
	if err != nil {
		return nil, err
	}
	return f.Units(), nil
}
