package store

import (
	"context"
	"encoding/json"
	"log"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"portal/internal/model"
	"portal/internal/repository"
)

const idSuffixLen = 7

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// AssetStore owns the in-memory asset collection and is the only writer to
// the persisted slot. Every mutation rewrites the entire collection; at the
// expected scale (tens to low hundreds of records) that keeps the store
// simple and crash-consistent: the last successful persist wins.
//
// Persistence failures never fail a mutation: the in-memory state stays
// authoritative for the session and the error is logged as a warning.
type AssetStore struct {
	mu     sync.RWMutex
	assets []model.Asset
	kv     repository.KVRepository
}

func New(kv repository.KVRepository) *AssetStore {
	return &AssetStore{kv: kv}
}

// Load reads the persisted collection. An absent or unparseable blob
// initializes the store to an empty collection; Load never fails hard.
func (s *AssetStore) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.assets = []model.Asset{}

	blob, found, err := s.kv.Get(ctx, model.KeyAssets)
	if err != nil {
		log.Printf("WARNING: failed to load assets, starting empty: %v", err)
		return
	}
	if !found {
		return
	}

	var assets []model.Asset
	if err := json.Unmarshal(blob, &assets); err != nil {
		log.Printf("WARNING: stored asset collection is unparseable, starting empty: %v", err)
		return
	}
	s.assets = assets
}

// Add generates a fresh unique id, appends the asset and persists.
func (s *AssetStore) Add(ctx context.Context, name, status string) model.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()

	asset := model.Asset{ID: s.newID(), Name: name, Status: status}
	s.assets = append(s.assets, asset)
	s.persist(ctx)
	return asset
}

// Patch carries the mutable fields of an asset; nil means "leave unchanged".
type Patch struct {
	Name   *string
	Status *string
}

// Update merges patch into the asset with the given id and persists. When no
// asset matches, the collection is left untouched and found is false; callers
// decide whether that is an error.
func (s *AssetStore) Update(ctx context.Context, id string, patch Patch) (model.Asset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.assets {
		if s.assets[i].ID != id {
			continue
		}
		if patch.Name != nil {
			s.assets[i].Name = *patch.Name
		}
		if patch.Status != nil {
			s.assets[i].Status = *patch.Status
		}
		s.persist(ctx)
		return s.assets[i], true
	}
	return model.Asset{}, false
}

// Delete removes the matching asset, if any, and persists.
func (s *AssetStore) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.assets {
		if s.assets[i].ID == id {
			s.assets = append(s.assets[:i], s.assets[i+1:]...)
			s.persist(ctx)
			return true
		}
	}
	return false
}

// Get returns the asset with the given id.
func (s *AssetStore) Get(id string) (model.Asset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.assets {
		if a.ID == id {
			return a, true
		}
	}
	return model.Asset{}, false
}

// Snapshot returns a copy of the collection in insertion order. Readers never
// see the internal slice.
func (s *AssetStore) Snapshot() []model.Asset {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Asset, len(s.assets))
	copy(out, s.assets)
	return out
}

// persist writes the whole collection to the assets slot. Caller holds the
// write lock.
func (s *AssetStore) persist(ctx context.Context) {
	blob, err := json.Marshal(s.assets)
	if err != nil {
		log.Printf("WARNING: failed to serialize asset collection: %v", err)
		return
	}
	if err := s.kv.Set(ctx, model.KeyAssets, blob); err != nil {
		log.Printf("WARNING: failed to persist asset collection: %v", err)
	}
}

// newID builds a time-prefixed random id (unix-milli in base36 plus a 7-char
// random base36 suffix) and retries while it collides with a live id, so
// uniqueness is deterministic rather than merely probabilistic. Caller holds
// the write lock.
func (s *AssetStore) newID() string {
	for {
		id := generateID()
		if !s.idExists(id) {
			return id
		}
	}
}

func (s *AssetStore) idExists(id string) bool {
	for _, a := range s.assets {
		if a.ID == id {
			return true
		}
	}
	return false
}

func generateID() string {
	suffix := make([]byte, idSuffixLen)
	for i := range suffix {
		suffix[i] = base36[rand.IntN(len(base36))]
	}
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + string(suffix)
}
