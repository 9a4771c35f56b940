package service

import (
	"context"
	"strconv"
	"time"

	"github.com/inkwell-blog/inkwell-backend/internal/domain"
	pkges "github.com/inkwell-blog/inkwell-backend/pkg/elasticsearch"
	pkglogger "github.com/inkwell-blog/inkwell-backend/pkg/logger"
)

// SearchIndexer is the boundary to the external search collaborator.
// Fire-and-forget: indexing failures are logged, never surfaced. The
// moderation transition that triggered the call is the source of truth and
// the index catches up via its own retries.
type SearchIndexer interface {
	UpsertPost(post *domain.Post)
	RemovePost(postID uint64)
}

const indexTimeout = 5 * time.Second

type esIndexer struct {
	client *pkges.Client
	index  string
}

// NewESIndexer creates an Elasticsearch-backed SearchIndexer
func NewESIndexer(client *pkges.Client, index string) SearchIndexer {
	return &esIndexer{client: client, index: index}
}

func (i *esIndexer) UpsertPost(post *domain.Post) {
	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()

	doc := map[string]interface{}{
		"id":           post.ID,
		"author_id":    post.AuthorID,
		"title":        post.Title,
		"excerpt":      post.Excerpt,
		"content":      post.Content,
		"status":       post.Status,
		"created_at":   post.CreatedAt,
		"published_at": post.PublishedAt,
	}
	if err := i.client.IndexDocument(ctx, i.index, strconv.FormatUint(post.ID, 10), doc); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Uint64("post_id", post.ID).Msg("search index upsert failed")
	}
}

func (i *esIndexer) RemovePost(postID uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()

	if err := i.client.DeleteDocument(ctx, i.index, strconv.FormatUint(postID, 10)); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Uint64("post_id", postID).Msg("search index remove failed")
	}
}

type noopIndexer struct{}

// NewNoopIndexer creates a SearchIndexer that does nothing, used when
// Elasticsearch is disabled.
func NewNoopIndexer() SearchIndexer {
	return noopIndexer{}
}

func (noopIndexer) UpsertPost(*domain.Post) {}
func (noopIndexer) RemovePost(uint64)       {}
