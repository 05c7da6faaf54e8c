package medicine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"medsaver/internal/generics"

	"go.uber.org/zap"
)

var (
	ErrNotFound     = errors.New("favorite not found")
	ErrInvalidInput = errors.New("invalid medicine input")
)

const catalogueLimit = 10

// quickSearches is the fixed list offered under the search box.
var quickSearches = []string{
	"Paracetamol",
	"Amoxicillin",
	"Metformin",
	"Aspirin",
	"Ibuprofen",
	"Omeprazole",
	"Atorvastatin",
	"Lisinopril",
	"Vitamin D3",
	"Vitamin B12",
}

type Service struct {
	catalogue CatalogueRepository
	searches  SearchRepository
	favorites FavoriteRepository
	log       *zap.Logger
}

func NewService(
	catalogue CatalogueRepository,
	searches SearchRepository,
	favorites FavoriteRepository,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		catalogue: catalogue,
		searches:  searches,
		favorites: favorites,
		log:       log,
	}
}

// Search looks the query up in the catalogue, builds the mock brand and
// alternatives, and records the search. Catalogue failures do not fail the
// search.
func (s *Service) Search(ctx context.Context, userID, query string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrInvalidInput)
	}

	s.log.Info("medicine search", zap.String("user_id", userID), zap.String("query", query))

	dbResults, err := s.catalogue.SearchByName(ctx, query, catalogueLimit)
	if err != nil {
		s.log.Warn("catalogue lookup failed", zap.String("query", query), zap.Error(err))
		dbResults = []CatalogueEntry{}
	}

	search := &Search{
		UserID:              userID,
		SearchQuery:         query,
		MedicineFound:       generics.MockBrand(query),
		GenericAlternatives: generics.ForSearch(query),
	}
	if err := s.searches.Create(ctx, search); err != nil {
		return nil, fmt.Errorf("save search: %w", err)
	}

	return &SearchResult{
		Success:             true,
		Found:               true,
		Medicine:            search.MedicineFound,
		GenericAlternatives: search.GenericAlternatives,
		DatabaseResults:     dbResults,
		SearchID:            search.ID,
	}, nil
}

func (s *Service) Suggestions() []string {
	out := make([]string, len(quickSearches))
	copy(out, quickSearches)
	return out
}

func (s *Service) ListSearches(ctx context.Context, userID string) ([]Search, error) {
	return s.searches.ListByUser(ctx, userID)
}

func (s *Service) AddFavorite(ctx context.Context, userID, name string, details json.RawMessage) (*Favorite, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: medicine_name is required", ErrInvalidInput)
	}
	if len(details) > 0 && !json.Valid(details) {
		return nil, fmt.Errorf("%w: medicine_details must be JSON", ErrInvalidInput)
	}

	f := &Favorite{
		UserID:          userID,
		MedicineName:    name,
		MedicineDetails: details,
	}
	if err := s.favorites.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) ListFavorites(ctx context.Context, userID string) ([]Favorite, error) {
	return s.favorites.ListByUser(ctx, userID)
}

func (s *Service) RemoveFavorite(ctx context.Context, userID, id string) error {
	return s.favorites.Delete(ctx, userID, id)
}
