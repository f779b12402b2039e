package catalog

import "context"

// ListingStore is the slice of the catalog store the service needs.
type ListingStore interface {
	ListListings(ctx context.Context) ([]FoodListing, error)
	ListRestaurants(ctx context.Context) ([]Restaurant, error)
	GetListing(ctx context.Context, id string) (*FoodListing, error)
	ReplaceSavedEntries(ctx context.Context, id string, entries []SavedEntry) error
}

type Service struct {
	Store ListingStore
}

func (s *Service) Listings(ctx context.Context) ([]FoodListing, error) {
	return s.Store.ListListings(ctx)
}

func (s *Service) Restaurants(ctx context.Context) ([]Restaurant, error) {
	return s.Store.ListRestaurants(ctx)
}

// SetSavedStatus records one user's saved/unsaved preference on a
// listing. The entries array holds at most one entry per user: an
// existing entry is replaced in place, otherwise a new one is
// appended, and the whole array is written back as one update.
// Concurrent toggles for the same user are last-write-wins.
func (s *Service) SetSavedStatus(ctx context.Context, listingID, userID string, isSaved bool) error {
	fl, err := s.Store.GetListing(ctx, listingID)
	if err != nil {
		return err
	}

	entry := SavedEntry{UserID: userID, IsSaved: isSaved, FoodListingID: listingID}

	entries := make([]SavedEntry, len(fl.IsSavedEntries))
	copy(entries, fl.IsSavedEntries)

	replaced := false
	for i, e := range entries {
		if e.UserID == userID {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}

	return s.Store.ReplaceSavedEntries(ctx, listingID, entries)
}
