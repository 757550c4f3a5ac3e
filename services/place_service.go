package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/ammiagames/sonder-sub002/config"
	"github.com/ammiagames/sonder-sub002/models"
)

// PlaceService talks to the places/geocoding provider and keeps a local
// catalog of every place a log has referenced, so screens render names and
// addresses without a network round trip.
type PlaceService struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewPlaceService() *PlaceService {
	base := os.Getenv("PLACES_API_URL")
	if base == "" {
		base = "https://nominatim.openstreetmap.org"
	}
	return &PlaceService{
		baseURL: base,
		apiKey:  os.Getenv("PLACES_API_KEY"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// provider response shape (Nominatim-style search)
type placeSearchResult struct {
	PlaceID     json.Number `json:"place_id"`
	DisplayName string      `json:"display_name"`
	Name        string      `json:"name"`
	Lat         string      `json:"lat"`
	Lon         string      `json:"lon"`
	Address     struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		Country string `json:"country"`
	} `json:"address"`
}

// Search queries the provider and upserts each hit into the local catalog.
func (s *PlaceService) Search(query string) ([]models.Place, error) {
	u := fmt.Sprintf(
		"%s/search?q=%s&format=jsonv2&addressdetails=1&limit=10",
		s.baseURL, url.QueryEscape(query),
	)
	if s.apiKey != "" {
		u += "&key=" + url.QueryEscape(s.apiKey)
	}

	resp, err := s.client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("failed to call places API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read places response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places API error %d: %s", resp.StatusCode, string(body))
	}

	var hits []placeSearchResult
	if err := json.Unmarshal(body, &hits); err != nil {
		return nil, fmt.Errorf("failed to parse places JSON: %w", err)
	}

	results := make([]models.Place, 0, len(hits))
	for _, h := range hits {
		lat, _ := strconv.ParseFloat(h.Lat, 64)
		lng, _ := strconv.ParseFloat(h.Lon, 64)
		city := h.Address.City
		if city == "" {
			city = h.Address.Town
		}
		if city == "" {
			city = h.Address.Village
		}
		name := h.Name
		if name == "" {
			name = h.DisplayName
		}
		p := models.Place{
			ID:      h.PlaceID.String(),
			Name:    name,
			Address: h.DisplayName,
			City:    city,
			Country: h.Address.Country,
			Lat:     lat,
			Lng:     lng,
		}
		// cache upsert; a stale name is fine, the next search refreshes it
		_ = config.DB.Where("id = ?", p.ID).Assign(p).FirstOrCreate(&models.Place{}).Error
		results = append(results, p)
	}
	return results, nil
}

// Get returns a catalog place, by provider id.
func (s *PlaceService) Get(placeID string) (*models.Place, error) {
	var p models.Place
	if err := config.DB.First(&p, "id = ?", placeID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// GetMany loads catalog places keyed by id, for batch rendering.
func (s *PlaceService) GetMany(placeIDs []string) (map[string]models.Place, error) {
	var rows []models.Place
	if err := config.DB.Where("id IN ?", placeIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]models.Place, len(rows))
	for _, p := range rows {
		out[p.ID] = p
	}
	return out, nil
}
