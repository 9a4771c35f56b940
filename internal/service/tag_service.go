package service

import (
	"errors"

	"github.com/inkwell-blog/inkwell-backend/internal/common"
	"github.com/inkwell-blog/inkwell-backend/internal/domain"
	"github.com/inkwell-blog/inkwell-backend/internal/repository"
	pkglogger "github.com/inkwell-blog/inkwell-backend/pkg/logger"
)

// TagService resolves tag references for content entities, moderates tag
// requests/revisions, and reconciles pending slugs when a tag gets approved.
type TagService interface {
	// Resolve turns tag ids and free-text names into the canonical set of
	// tag ids to link plus the slugs that have no approved tag yet.
	// Privileged actors create missing tags on the spot; unprivileged actors
	// queue tag requests.
	Resolve(actor *domain.Actor, tagIDs []uint64, tagNames []string) (*domain.TagResolution, error)

	// ResolveApprovedOnly links only tags that already exist; leftover names
	// become pending slugs. Used on revision approval, where force-creating
	// the contributor's tag proposals would bypass their separate review.
	ResolveApprovedOnly(tagIDs []uint64, tagNames []string) (*domain.TagResolution, error)

	// OnTagApproved retroactively links the tag to every post that
	// referenced it by pending slug. Both approval paths call this.
	OnTagApproved(tag *domain.Tag) error

	RequestNewTag(actor *domain.Actor, req *domain.NewTagRequest) (*domain.Tag, *domain.TagRequest, error)
	RequestEdit(actor *domain.Actor, tagID uint64, patch *domain.TagPatch) (*domain.TagRevision, error)

	ApproveRequest(actor *domain.Actor, requestID uint64) (*domain.Tag, error)
	RejectRequest(actor *domain.Actor, requestID uint64, note *string) (*domain.TagRequest, error)
	ApproveRevision(actor *domain.Actor, revisionID uint64) (*domain.Tag, error)
	RejectRevision(actor *domain.Actor, revisionID uint64, note *string) (*domain.TagRevision, error)
	Delete(actor *domain.Actor, tagID uint64) error

	List() ([]*domain.Tag, error)
	ListPendingRequests(actor *domain.Actor) ([]*domain.TagRequest, error)
	ListPendingRevisions(actor *domain.Actor) ([]*domain.TagRevision, error)
}

type tagService struct {
	tags  repository.TagRepository
	posts repository.PostRepository
}

// NewTagService creates a new TagService
func NewTagService(tags repository.TagRepository, posts repository.PostRepository) TagService {
	return &tagService{tags: tags, posts: posts}
}

// nameEntry is one deduplicated free-text tag name
type nameEntry struct {
	name string // original casing of the first occurrence
	slug string
}

// prepareNames normalizes, deduplicates (case-folded) and slugs the input
func prepareNames(tagNames []string) []nameEntry {
	seen := make(map[string]bool, len(tagNames))
	var entries []nameEntry
	for _, raw := range tagNames {
		name := NormalizeTagName(raw)
		if name == "" {
			continue
		}
		key := foldKey(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		entries = append(entries, nameEntry{name: name, slug: DeriveTagSlug(name)})
	}
	return entries
}

// validateIDs ensures every supplied tag id exists; unknown ids are a hard
// input error, never silently dropped.
func (s *tagService) validateIDs(tagIDs []uint64) ([]uint64, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}
	unique := make([]uint64, 0, len(tagIDs))
	seen := make(map[uint64]bool, len(tagIDs))
	for _, id := range tagIDs {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	found, err := s.tags.FindByIDs(unique)
	if err != nil {
		return nil, err
	}
	if len(found) != len(unique) {
		return nil, common.ErrUnknownTagID
	}
	return unique, nil
}

// lookupExisting fetches tags matching the prepared names by slug or by
// case-folded name in one pass and indexes them both ways.
func (s *tagService) lookupExisting(entries []nameEntry) (bySlug map[string]*domain.Tag, byName map[string]*domain.Tag, err error) {
	slugs := make([]string, 0, len(entries))
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		slugs = append(slugs, e.slug)
		names = append(names, foldKey(e.name))
	}
	existing, err := s.tags.FindBySlugsOrNames(slugs, names)
	if err != nil {
		return nil, nil, err
	}
	bySlug = make(map[string]*domain.Tag, len(existing))
	byName = make(map[string]*domain.Tag, len(existing))
	for _, t := range existing {
		bySlug[t.Slug] = t
		byName[foldKey(t.Name)] = t
	}
	return bySlug, byName, nil
}

func (s *tagService) Resolve(actor *domain.Actor, tagIDs []uint64, tagNames []string) (*domain.TagResolution, error) {
	resolved, err := s.validateIDs(tagIDs)
	if err != nil {
		return nil, err
	}

	entries := prepareNames(tagNames)
	res := &domain.TagResolution{ResolvedTagIDs: resolved}
	if len(entries) == 0 {
		return res, nil
	}

	bySlug, byName, err := s.lookupExisting(entries)
	if err != nil {
		return nil, err
	}

	linked := make(map[uint64]bool, len(resolved))
	for _, id := range resolved {
		linked[id] = true
	}

	for _, e := range entries {
		existing := bySlug[e.slug]
		if existing == nil {
			existing = byName[foldKey(e.name)]
		}
		if existing != nil {
			if !linked[existing.ID] {
				linked[existing.ID] = true
				res.ResolvedTagIDs = append(res.ResolvedTagIDs, existing.ID)
			}
			continue
		}

		if actor.IsAdmin() {
			tag, err := s.createApprovedTag(e.name, e.slug, actor.ID)
			if err != nil {
				return nil, err
			}
			if !linked[tag.ID] {
				linked[tag.ID] = true
				res.ResolvedTagIDs = append(res.ResolvedTagIDs, tag.ID)
			}
			continue
		}

		// Unprivileged: queue a request unless one is already pending for
		// this slug; the entity is linked only once the tag is approved.
		err := s.tags.CreateRequest(&domain.TagRequest{
			Name:        e.name,
			Slug:        e.slug,
			RequestedBy: actor.ID,
			Status:      domain.StatusPending,
		})
		if err != nil && !errors.Is(err, common.ErrDuplicateTagRequest) {
			return nil, err
		}
		res.PendingTagSlugs = append(res.PendingTagSlugs, e.slug)
	}

	return res, nil
}

func (s *tagService) ResolveApprovedOnly(tagIDs []uint64, tagNames []string) (*domain.TagResolution, error) {
	resolved, err := s.validateIDs(tagIDs)
	if err != nil {
		return nil, err
	}

	entries := prepareNames(tagNames)
	res := &domain.TagResolution{ResolvedTagIDs: resolved}
	if len(entries) == 0 {
		return res, nil
	}

	bySlug, byName, err := s.lookupExisting(entries)
	if err != nil {
		return nil, err
	}

	linked := make(map[uint64]bool, len(resolved))
	for _, id := range resolved {
		linked[id] = true
	}

	for _, e := range entries {
		existing := bySlug[e.slug]
		if existing == nil {
			existing = byName[foldKey(e.name)]
		}
		if existing != nil {
			if !linked[existing.ID] {
				linked[existing.ID] = true
				res.ResolvedTagIDs = append(res.ResolvedTagIDs, existing.ID)
			}
			continue
		}
		res.PendingTagSlugs = append(res.PendingTagSlugs, e.slug)
	}

	return res, nil
}

// createApprovedTag creates a tag on behalf of a privileged actor, closes
// out any pending request for the same slug and reconciles pending links.
func (s *tagService) createApprovedTag(name, slug, actorID string) (*domain.Tag, error) {
	tag := &domain.Tag{
		Name:       name,
		Slug:       slug,
		CreatedBy:  actorID,
		ApprovedBy: &actorID,
	}
	if err := s.tags.Create(tag); err != nil {
		return nil, err
	}
	if err := s.tags.ClosePendingRequestsBySlug(slug, actorID); err != nil {
		return nil, err
	}
	if err := s.OnTagApproved(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagService) OnTagApproved(tag *domain.Tag) error {
	affected, err := s.posts.ReconcilePendingSlug(tag)
	if err != nil {
		return err
	}
	if len(affected) > 0 {
		pkglogger.GetLogger().Info().
			Str("slug", tag.Slug).
			Int("posts", len(affected)).
			Msg("reconciled pending tag slug")
	}
	return nil
}

func (s *tagService) RequestNewTag(actor *domain.Actor, req *domain.NewTagRequest) (*domain.Tag, *domain.TagRequest, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}
	name := NormalizeTagName(req.Name)
	if name == "" {
		return nil, nil, common.ErrInvalidInput
	}
	slug := DeriveTagSlug(name)

	bySlug, byName, err := s.lookupExisting([]nameEntry{{name: name, slug: slug}})
	if err != nil {
		return nil, nil, err
	}
	if bySlug[slug] != nil || byName[foldKey(name)] != nil {
		return nil, nil, common.ErrSlugConflict
	}

	if actor.IsAdmin() {
		tag, err := s.createApprovedTag(name, slug, actor.ID)
		if err != nil {
			return nil, nil, err
		}
		return tag, nil, nil
	}

	request := &domain.TagRequest{
		Name:        name,
		Slug:        slug,
		RequestedBy: actor.ID,
		Status:      domain.StatusPending,
	}
	if err := s.tags.CreateRequest(request); err != nil {
		return nil, nil, err
	}
	return nil, request, nil
}

func (s *tagService) RequestEdit(actor *domain.Actor, tagID uint64, patch *domain.TagPatch) (*domain.TagRevision, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return nil, common.ErrEmptyPatch
	}
	if _, err := s.tags.FindByID(tagID); err != nil {
		return nil, err
	}

	rev := &domain.TagRevision{
		TagID:       tagID,
		RequestedBy: actor.ID,
		Status:      domain.StatusPending,
	}
	if patch.Name.Set {
		name := NormalizeTagName(patch.Name.Value)
		if name == "" {
			return nil, common.ErrInvalidInput
		}
		slug := DeriveTagSlug(name)
		rev.Name = &name
		rev.Slug = &slug
	}

	if actor.IsAdmin() {
		// Admin tag edits apply immediately via the same approval path
		if err := s.tags.CreateRevision(rev); err != nil {
			return nil, err
		}
		if _, err := s.approveRevision(actor, rev); err != nil {
			return nil, err
		}
		return rev, nil
	}

	if err := s.tags.CreateRevision(rev); err != nil {
		return nil, err
	}
	return rev, nil
}

func (s *tagService) ApproveRequest(actor *domain.Actor, requestID uint64) (*domain.Tag, error) {
	if !actor.IsAdmin() {
		return nil, common.ErrForbidden
	}
	req, err := s.tags.FindRequestByID(requestID)
	if err != nil {
		return nil, err
	}
	if err := ensureTransition(req.Status, domain.StatusApproved); err != nil {
		return nil, err
	}

	// The tag may exist by now (a privileged caller created it meanwhile);
	// the request then closes out against the existing tag.
	tag, err := s.tags.FindBySlug(req.Slug)
	if errors.Is(err, common.ErrTagNotFound) {
		tag = &domain.Tag{
			Name:       req.Name,
			Slug:       req.Slug,
			CreatedBy:  req.RequestedBy,
			ApprovedBy: &actor.ID,
		}
		if err := s.tags.Create(tag); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	req.Status = domain.StatusApproved
	req.ReviewedAt, req.ReviewedBy = reviewStamp(actor.ID)
	if err := s.tags.UpdateRequest(req); err != nil {
		return nil, err
	}

	if err := s.OnTagApproved(tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagService) RejectRequest(actor *domain.Actor, requestID uint64, note *string) (*domain.TagRequest, error) {
	if !actor.IsAdmin() {
		return nil, common.ErrForbidden
	}
	req, err := s.tags.FindRequestByID(requestID)
	if err != nil {
		return nil, err
	}
	if err := ensureTransition(req.Status, domain.StatusRejected); err != nil {
		return nil, err
	}

	req.Status = domain.StatusRejected
	req.ReviewedAt, req.ReviewedBy = reviewStamp(actor.ID)
	req.ReviewerNote = note
	if err := s.tags.UpdateRequest(req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *tagService) ApproveRevision(actor *domain.Actor, revisionID uint64) (*domain.Tag, error) {
	if !actor.IsAdmin() {
		return nil, common.ErrForbidden
	}
	rev, err := s.tags.FindRevisionByID(revisionID)
	if err != nil {
		return nil, err
	}
	return s.approveRevision(actor, rev)
}

func (s *tagService) approveRevision(actor *domain.Actor, rev *domain.TagRevision) (*domain.Tag, error) {
	if err := ensureTransition(rev.Status, domain.StatusApproved); err != nil {
		return nil, err
	}
	tag, err := s.tags.FindByID(rev.TagID)
	if err != nil {
		return nil, err
	}

	if rev.Name != nil {
		tag.Name = *rev.Name
	}
	if rev.Slug != nil {
		tag.Slug = *rev.Slug
	}
	if err := s.tags.Update(tag); err != nil {
		return nil, err
	}

	rev.Status = domain.StatusApproved
	rev.ReviewedAt, rev.ReviewedBy = reviewStamp(actor.ID)
	if err := s.tags.UpdateRevision(rev); err != nil {
		return nil, err
	}

	// A re-slug can make the tag match slugs still pending on posts
	if rev.Slug != nil {
		if err := s.OnTagApproved(tag); err != nil {
			return nil, err
		}
	}
	return tag, nil
}

func (s *tagService) RejectRevision(actor *domain.Actor, revisionID uint64, note *string) (*domain.TagRevision, error) {
	if !actor.IsAdmin() {
		return nil, common.ErrForbidden
	}
	rev, err := s.tags.FindRevisionByID(revisionID)
	if err != nil {
		return nil, err
	}
	if err := ensureTransition(rev.Status, domain.StatusRejected); err != nil {
		return nil, err
	}

	rev.Status = domain.StatusRejected
	rev.ReviewedAt, rev.ReviewedBy = reviewStamp(actor.ID)
	rev.ReviewerNote = note
	if err := s.tags.UpdateRevision(rev); err != nil {
		return nil, err
	}
	return rev, nil
}

func (s *tagService) Delete(actor *domain.Actor, tagID uint64) error {
	if !actor.IsAdmin() {
		return common.ErrForbidden
	}
	if _, err := s.tags.FindByID(tagID); err != nil {
		return err
	}
	return s.tags.DeleteCascade(tagID)
}

func (s *tagService) List() ([]*domain.Tag, error) {
	return s.tags.List()
}

func (s *tagService) ListPendingRequests(actor *domain.Actor) ([]*domain.TagRequest, error) {
	if !actor.IsAdmin() {
		return nil, common.ErrForbidden
	}
	return s.tags.ListPendingRequests()
}

func (s *tagService) ListPendingRevisions(actor *domain.Actor) ([]*domain.TagRevision, error) {
	if !actor.IsAdmin() {
		return nil, common.ErrForbidden
	}
	return s.tags.ListPendingRevisions()
}
