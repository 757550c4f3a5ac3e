package services

import (
	"sort"
	"time"

	"github.com/ammiagames/sonder-sub002/config"
	"github.com/ammiagames/sonder-sub002/models"
	"github.com/ammiagames/sonder-sub002/utils"
)

// CardSpacing is the vertical gap added after every masonry card, in
// points. It participates in column balancing, so changing it reshuffles
// layouts.
const CardSpacing = 12.0

// GalleryService assembles the three gallery presentations the app renders:
// masonry grid, boarding-pass cards and the Polaroid feed. All three sit on
// the same grouping contract (GroupLogsByTrip); per-view differences are
// parameters here, not forked grouping logic.
type GalleryService struct {
	trips *TripService
}

func NewGalleryService(trips *TripService) *GalleryService {
	return &GalleryService{trips: trips}
}

// ---------- Masonry ----------

type MasonryCard struct {
	Trip       models.Trip `json:"trip"`
	Index      int         `json:"index"` // chronological position, trail order
	Column     int         `json:"column"`
	LogCount   int         `json:"log_count"`
	LatestLog  *time.Time  `json:"latest_log,omitempty"`
	CoverPhoto string      `json:"cover_photo,omitempty"`
}

type MasonryView struct {
	Columns    [2][]MasonryCard `json:"columns"`
	Trail      []string         `json:"trail"` // trip ids in chronological order
	Unassigned []models.Log     `json:"unassigned,omitempty"`
}

// Masonry builds the two-column grid: group logs by trip, order trips by
// latest activity, then balance columns greedily. Trail carries the
// chronological trip order so the client can draw the connector line
// through cards regardless of which column they landed in.
func (s *GalleryService) Masonry(userID uint) (*MasonryView, error) {
	groups, err := s.loadGroups(userID)
	if err != nil {
		return nil, err
	}

	var ordered []models.Trip
	latest := map[string]time.Time{}
	count := map[string]int{}
	var unassigned []models.Log
	for _, g := range groups {
		if g.Unassigned() {
			unassigned = g.Logs
			continue
		}
		ordered = append(ordered, *g.Trip)
		count[g.Trip.ID] = len(g.Logs)
		if len(g.Logs) > 0 {
			latest[g.Trip.ID] = g.Logs[0].CreatedAt
			for _, l := range g.Logs {
				if l.CreatedAt.After(latest[g.Trip.ID]) {
					latest[g.Trip.ID] = l.CreatedAt
				}
			}
		}
	}

	assignments := AssignColumns(ordered, DefaultCardHeight, CardSpacing)

	view := &MasonryView{}
	for _, a := range assignments {
		card := MasonryCard{
			Trip:       a.Trip,
			Index:      a.Index,
			Column:     a.Column,
			LogCount:   count[a.Trip.ID],
			CoverPhoto: a.Trip.CoverPhoto,
		}
		if t, ok := latest[a.Trip.ID]; ok {
			ts := t
			card.LatestLog = &ts
		}
		view.Columns[a.Column] = append(view.Columns[a.Column], card)
		view.Trail = append(view.Trail, a.Trip.ID)
	}
	view.Unassigned = unassigned
	return view, nil
}

// DefaultCardHeight estimates a masonry card's rendered height from the
// trip's display attributes. Pure presentation policy; the balancer just
// compares the numbers.
func DefaultCardHeight(t models.Trip) float64 {
	h := 140.0 // name + chrome
	if t.CoverPhoto != "" {
		h += 120
	}
	if t.StartDate != nil {
		h += 24 // date row
	}
	// long names wrap; roughly 18 chars per line at card width
	if extra := (len(t.Name) - 1) / 18; extra > 0 {
		h += float64(extra) * 22
	}
	return h
}

// ---------- Boarding pass ----------

type BoardingPassCard struct {
	Trip      models.Trip `json:"trip"`
	FromCity  string      `json:"from_city,omitempty"` // traveller's home city
	ToCity    string      `json:"to_city,omitempty"`   // derived destination
	LogCount  int         `json:"log_count"`
	StartDate *time.Time  `json:"start_date,omitempty"`
	EndDate   *time.Time  `json:"end_date,omitempty"`
}

type BoardingPassView struct {
	Cards      []BoardingPassCard `json:"cards"`
	Unassigned []models.Log       `json:"unassigned,omitempty"`
}

// BoardingPass renders each trip group as a ticket-style card with a
// derived destination city.
func (s *GalleryService) BoardingPass(userID uint) (*BoardingPassView, error) {
	groups, err := s.loadGroups(userID)
	if err != nil {
		return nil, err
	}
	places, err := s.placesFor(groups)
	if err != nil {
		return nil, err
	}

	var homeCity string
	var user models.User
	if err := config.DB.First(&user, userID).Error; err == nil {
		homeCity = user.HomeCity
	}

	view := &BoardingPassView{}
	for _, g := range groups {
		if g.Unassigned() {
			view.Unassigned = g.Logs
			continue
		}
		view.Cards = append(view.Cards, BoardingPassCard{
			Trip:      *g.Trip,
			FromCity:  homeCity,
			ToCity:    DestinationCity(g, places),
			LogCount:  len(g.Logs),
			StartDate: g.Trip.StartDate,
			EndDate:   g.Trip.EndDate,
		})
	}
	return view, nil
}

// DestinationCity derives a trip's destination from its logs' places: the
// city that appears most often wins, earliest-logged city breaking ties.
// Falls back to address parsing, then the place name, then "".
func DestinationCity(g TripGroup, places map[string]models.Place) string {
	counts := map[string]int{}
	var order []string
	for _, l := range g.Logs {
		p, ok := places[l.PlaceID]
		if !ok {
			continue
		}
		city := p.City
		if city == "" {
			city = utils.CityFromAddress(p.Address)
		}
		if city == "" {
			city = p.Name
		}
		if city == "" {
			continue
		}
		if _, seen := counts[city]; !seen {
			order = append(order, city)
		}
		counts[city]++
	}

	best := ""
	for _, city := range order {
		if best == "" || counts[city] > counts[best] {
			best = city
		}
	}
	return best
}

// ---------- Polaroid feed ----------

type FeedEntry struct {
	Log      models.Log    `json:"log"`
	Place    *models.Place `json:"place,omitempty"`
	TripName string        `json:"trip_name,omitempty"`
}

// Feed is the flat Polaroid presentation: every log newest first, with the
// place and owning trip name attached for the caption.
func (s *GalleryService) Feed(userID uint) ([]FeedEntry, error) {
	groups, err := s.loadGroups(userID)
	if err != nil {
		return nil, err
	}
	places, err := s.placesFor(groups)
	if err != nil {
		return nil, err
	}

	tripName := map[string]string{}
	var all []models.Log
	for _, g := range groups {
		for _, l := range g.Logs {
			all = append(all, l)
			if !g.Unassigned() {
				tripName[l.ID] = g.Trip.Name
			}
		}
	}

	// flatten back to pure recency across trips
	entries := make([]FeedEntry, 0, len(all))
	for _, l := range all {
		e := FeedEntry{Log: l, TripName: tripName[l.ID]}
		if p, ok := places[l.PlaceID]; ok {
			pp := p
			e.Place = &pp
		}
		entries = append(entries, e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Log.CreatedAt.After(entries[j].Log.CreatedAt)
	})
	return entries, nil
}

// ---------- shared loading ----------

// loadGroups snapshots the user's logs and accessible trips and runs the
// grouping core. Recomputed on every call; nothing here is cached.
func (s *GalleryService) loadGroups(userID uint) ([]TripGroup, error) {
	var logs []models.Log
	if err := config.DB.
		Preload("Photos").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}

	trips, err := s.trips.ListTrips(userID)
	if err != nil {
		return nil, err
	}

	return GroupLogsByTrip(logs, trips), nil
}

func (s *GalleryService) placesFor(groups []TripGroup) (map[string]models.Place, error) {
	idSet := map[string]struct{}{}
	var ids []string
	for _, g := range groups {
		for _, l := range g.Logs {
			if _, ok := idSet[l.PlaceID]; !ok {
				idSet[l.PlaceID] = struct{}{}
				ids = append(ids, l.PlaceID)
			}
		}
	}
	if len(ids) == 0 {
		return map[string]models.Place{}, nil
	}

	var rows []models.Place
	if err := config.DB.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]models.Place, len(rows))
	for _, p := range rows {
		out[p.ID] = p
	}
	return out, nil
}
