package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/inkwell-blog/inkwell-backend/internal/domain"
	"github.com/inkwell-blog/inkwell-backend/internal/repository"
	"github.com/inkwell-blog/inkwell-backend/pkg/cache"
	pkglogger "github.com/inkwell-blog/inkwell-backend/pkg/logger"
)

// FeedService assembles paginated feed pages: visibility filtering, tag and
// date filters, keyset pagination and per-post engagement aggregates.
type FeedService interface {
	Assemble(ctx context.Context, q domain.FeedQuery) (*domain.FeedPage, error)
}

type feedService struct {
	posts        repository.PostRepository
	comments     repository.CommentRepository
	tags         repository.TagRepository
	cache        cache.Service
	defaultLimit int
	maxLimit     int
}

// NewFeedService creates a new FeedService
func NewFeedService(posts repository.PostRepository, comments repository.CommentRepository, tags repository.TagRepository, cacheSvc cache.Service, defaultLimit, maxLimit int) FeedService {
	return &feedService{
		posts:        posts,
		comments:     comments,
		tags:         tags,
		cache:        cacheSvc,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
	}
}

func (s *feedService) Assemble(ctx context.Context, q domain.FeedQuery) (*domain.FeedPage, error) {
	if q.Limit <= 0 {
		q.Limit = s.defaultLimit
	}
	if q.Limit > s.maxLimit {
		q.Limit = s.maxLimit
	}
	if q.Match == "" {
		q.Match = domain.MatchAny
	}

	// Only the anonymous unfiltered feed is cached: it is identical for
	// every logged-out reader and carries the bulk of the traffic.
	cacheable := q.Viewer == nil && len(q.TagSlugs) == 0 && q.From == nil && q.To == nil
	var cacheKey string
	if cacheable && s.cache.IsAvailable() {
		cacheKey = feedCacheKey(q)
		if data, err := s.cache.GetFeedPage(ctx, cacheKey); err == nil {
			var page domain.FeedPage
			if err := json.Unmarshal(data, &page); err == nil {
				return &page, nil
			}
		}
	}

	var tagIDs []uint64
	if len(q.TagSlugs) > 0 {
		// The filter is a set; a repeated slug must not inflate the arity
		// checks below or the all-mode tag count in the query.
		q.TagSlugs = dedupeStrings(q.TagSlugs)
		matched, err := s.tags.FindBySlugs(q.TagSlugs)
		if err != nil {
			return nil, err
		}
		// An unresolvable slug can never match in all-mode, and in any-mode
		// it just contributes nothing. No matches at all means an empty page.
		if len(matched) == 0 || (q.Match == domain.MatchAll && len(matched) < len(q.TagSlugs)) {
			return &domain.FeedPage{Posts: []*domain.FeedPost{}}, nil
		}
		tagIDs = make([]uint64, 0, len(matched))
		for _, t := range matched {
			tagIDs = append(tagIDs, t.ID)
		}
	}

	rows, err := s.posts.ListFeed(q, tagIDs)
	if err != nil {
		return nil, err
	}

	// The limit+1 probe: an extra row means there is a next page, and the
	// cursor points at the last row actually returned.
	var nextCursor *domain.FeedCursor
	if len(rows) > q.Limit {
		rows = rows[:q.Limit]
		last := rows[len(rows)-1]
		nextCursor = &domain.FeedCursor{Date: last.SortDate(), ID: last.ID}
	}

	page, err := s.buildPage(rows, nextCursor)
	if err != nil {
		return nil, err
	}

	if cacheable && s.cache.IsAvailable() {
		if err := s.cache.SetFeedPage(ctx, cacheKey, page); err != nil {
			pkglogger.GetLogger().Warn().Err(err).Msg("feed cache write failed")
		}
	}
	return page, nil
}

// buildPage attaches tag names, comment counts and like counts, each fetched
// in a single grouped query for the whole page.
func (s *feedService) buildPage(rows []*domain.Post, nextCursor *domain.FeedCursor) (*domain.FeedPage, error) {
	ids := make([]uint64, 0, len(rows))
	for _, p := range rows {
		ids = append(ids, p.ID)
	}

	tagNames, err := s.posts.TagNamesByPostIDs(ids)
	if err != nil {
		return nil, err
	}
	commentCounts, err := s.comments.CountApprovedByPostIDs(ids)
	if err != nil {
		return nil, err
	}
	likeCounts, err := s.posts.LikeCounts(ids)
	if err != nil {
		return nil, err
	}

	posts := make([]*domain.FeedPost, 0, len(rows))
	for _, p := range rows {
		names := tagNames[p.ID]
		if names == nil {
			names = []string{}
		}
		posts = append(posts, &domain.FeedPost{
			ID:           p.ID,
			AuthorID:     p.AuthorID,
			Title:        p.Title,
			Excerpt:      p.Excerpt,
			Status:       p.Status,
			Tags:         names,
			CommentCount: commentCounts[p.ID],
			LikeCount:    likeCounts[p.ID],
			Edited:       p.Edited(),
			CreatedAt:    p.CreatedAt,
			PublishedAt:  p.PublishedAt,
			SortDate:     p.SortDate(),
		})
	}
	return &domain.FeedPage{Posts: posts, NextCursor: nextCursor}, nil
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// feedCacheKey encodes the page position; the anonymous-unfiltered guard
// already fixed every other query dimension.
func feedCacheKey(q domain.FeedQuery) string {
	if q.Cursor == nil {
		return fmt.Sprintf("anon:first:%d", q.Limit)
	}
	return fmt.Sprintf("anon:%d:%d:%d", q.Cursor.Date.UnixNano(), q.Cursor.ID, q.Limit)
}
