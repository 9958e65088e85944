package catalog

import (
	"context"
	"encoding/json"
	"log"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/azulroute/tour-booking-api/internal/model"
	"github.com/azulroute/tour-booking-api/internal/repository"
)

// draftKeyPrefix namespaces the locally cached admin edits in Redis. A draft
// overlays the published record until the admin publishes (writes the row)
// or discards it.
const draftKeyPrefix = "tour:draft:"

// Service resolves effective tours by merging the static defaults, the
// database rows and the Redis draft store. The Redis client may be nil, in
// which case the draft source is simply absent.
type Service struct {
	tours    *repository.TourRepo
	rdb      *redis.Client
	static   map[string]model.TourContent
	baseLang string
}

// NewService constructs a catalog Service. tours must be non-nil; rdb may be
// nil to run without the draft overlay.
func NewService(tours *repository.TourRepo, rdb *redis.Client, baseLang string) *Service {
	if tours == nil {
		panic("nil tour repository passed to catalog.NewService")
	}
	return &Service{
		tours:    tours,
		rdb:      rdb,
		static:   StaticContents(),
		baseLang: baseLang,
	}
}

// BaseLang returns the fallback language every lookup resolves through.
func (s *Service) BaseLang() string { return s.baseLang }

// ListTours returns every tour known to at least one source, merged for the
// requested language and sorted by id for deterministic output.
func (s *Service) ListTours(ctx context.Context, lang string) ([]model.Tour, error) {
	dbContents, err := s.tours.ListContents(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*model.TourContent, len(dbContents))
	for i := range dbContents {
		byID[dbContents[i].ID] = &dbContents[i]
	}

	// The catalog id set is the union of ids present in any source.
	ids := make(map[string]struct{}, len(s.static)+len(byID))
	for id := range s.static {
		ids[id] = struct{}{}
	}
	for id := range byID {
		ids[id] = struct{}{}
	}
	for _, id := range s.draftIDs(ctx) {
		ids[id] = struct{}{}
	}

	sorted := make([]string, 0, len(ids))
	for id := range ids {
		sorted = append(sorted, id)
	}
	sort.Strings(sorted)

	out := make([]model.Tour, 0, len(sorted))
	for _, id := range sorted {
		out = append(out, Merge(id, s.staticContent(id), byID[id], s.draft(ctx, id), lang, s.baseLang))
	}
	return out, nil
}

// TourByID resolves a single tour. It returns repository.ErrTourNotFound
// when the id exists in no source.
func (s *Service) TourByID(ctx context.Context, id, lang string) (*model.Tour, error) {
	static := s.staticContent(id)

	db, err := s.tours.GetContent(ctx, id)
	if err != nil && err != repository.ErrTourNotFound {
		return nil, err
	}

	cached := s.draft(ctx, id)
	if static == nil && db == nil && cached == nil {
		return nil, repository.ErrTourNotFound
	}
	t := Merge(id, static, db, cached, lang, s.baseLang)
	return &t, nil
}

// SaveDraft stores an admin edit in the draft overlay. It is a no-op error
// when Redis is unavailable so the back office can tell the operator that
// live preview is off.
func (s *Service) SaveDraft(ctx context.Context, c model.TourContent) error {
	if s.rdb == nil {
		return redis.ErrClosed
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, draftKeyPrefix+c.ID, raw, 0).Err()
}

// ClearDraft discards the cached edit for a tour.
func (s *Service) ClearDraft(ctx context.Context, id string) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Del(ctx, draftKeyPrefix+id).Err()
}

func (s *Service) staticContent(id string) *model.TourContent {
	if c, ok := s.static[id]; ok {
		return &c
	}
	return nil
}

// draft loads the cached admin edit for a tour. Any Redis or decode failure
// is logged and treated as "no draft": a broken overlay must never take the
// public catalog down.
func (s *Service) draft(ctx context.Context, id string) *model.TourContent {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, draftKeyPrefix+id).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("catalog: draft lookup for %s failed: %v", id, err)
		}
		return nil
	}
	var c model.TourContent
	if err := json.Unmarshal(raw, &c); err != nil {
		log.Printf("catalog: draft for %s is corrupt: %v", id, err)
		return nil
	}
	c.ID = id
	return &c
}

// draftIDs scans the draft keyspace so drafts for tours absent from the
// other sources still appear in listings.
func (s *Service) draftIDs(ctx context.Context) []string {
	if s.rdb == nil {
		return nil
	}
	var ids []string
	iter := s.rdb.Scan(ctx, 0, draftKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, iter.Val()[len(draftKeyPrefix):])
	}
	if err := iter.Err(); err != nil {
		log.Printf("catalog: draft scan failed: %v", err)
	}
	return ids
}
