package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// fakePostRepo is an in-memory PostRepository for service tests.
type fakePostRepo struct {
	posts     map[uuid.UUID]*models.Post
	createErr error
	updateErr error
	listErr   error
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[uuid.UUID]*models.Post)}
}

func (f *fakePostRepo) Create(title, content string, coverImageKey *string, categoryIDs []uuid.UUID) (*models.Post, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	p := &models.Post{ID: uuid.New(), Title: title, Content: content, CoverImageKey: coverImageKey, Categories: []models.CategoryRef{}}
	f.posts[p.ID] = p
	return p, nil
}

func (f *fakePostRepo) Update(id uuid.UUID, title, content string, coverImageKey *string, categoryIDs []uuid.UUID) (*models.Post, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	p, ok := f.posts[id]
	if !ok {
		return nil, models.NewNotFound("post", id)
	}
	p.Title, p.Content, p.CoverImageKey = title, content, coverImageKey
	return p, nil
}

func (f *fakePostRepo) Delete(id uuid.UUID) error {
	if _, ok := f.posts[id]; !ok {
		return models.NewNotFound("post", id)
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) FindByID(id uuid.UUID) (*models.Post, error) {
	return f.posts[id], nil
}

func (f *fakePostRepo) List() ([]models.Post, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []models.Post{}
	for _, p := range f.posts {
		out = append(out, *p)
	}
	return out, nil
}

// fakeCategoryRepo is an in-memory CategoryRepository for service tests.
type fakeCategoryRepo struct {
	categories map[uuid.UUID]*models.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uuid.UUID]*models.Category)}
}

func (f *fakeCategoryRepo) Create(name string) (*models.Category, error) {
	for _, c := range f.categories {
		if c.Name == name {
			return nil, models.NewValidation("category name already exists")
		}
	}
	c := &models.Category{ID: uuid.New(), Name: name}
	f.categories[c.ID] = c
	return c, nil
}

func (f *fakeCategoryRepo) Delete(id uuid.UUID) error {
	if _, ok := f.categories[id]; !ok {
		return models.NewNotFound("category", id)
	}
	delete(f.categories, id)
	return nil
}

func (f *fakeCategoryRepo) List() ([]models.Category, error) {
	out := []models.Category{}
	for _, c := range f.categories {
		out = append(out, *c)
	}
	return out, nil
}

func newTestService() (*Service, *fakePostRepo, *fakeCategoryRepo) {
	posts := newFakePostRepo()
	categories := newFakeCategoryRepo()
	return NewService(posts, categories, nil), posts, categories
}

func TestServiceCreatePostValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		label string
		in    PostInput
	}{
		{"empty title", PostInput{Title: "", Content: "body"}},
		{"empty content", PostInput{Title: "title", Content: ""}},
	}
	for _, tc := range cases {
		_, err := svc.CreatePost(ctx, tc.in)
		if !models.IsKind(err, models.KindValidation) {
			t.Errorf("%s: kind got %q, want %q", tc.label, models.KindOf(err), models.KindValidation)
		}
	}
}

func TestServiceCreatePostCoverKeyShape(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	bad := []string{
		"covers/short",
		"covers/0123456789ABCDEF0123456789ABCDEF", // uppercase hex
		"images/0123456789abcdef0123456789abcdef", // wrong prefix
		"0123456789abcdef0123456789abcdef",        // no prefix
	}
	for _, key := range bad {
		k := key
		_, err := svc.CreatePost(ctx, PostInput{Title: "t", Content: "c", CoverImageKey: &k})
		if !models.IsKind(err, models.KindValidation) {
			t.Errorf("key %q: kind got %q, want %q", key, models.KindOf(err), models.KindValidation)
		}
	}

	good := "covers/0123456789abcdef0123456789abcdef"
	post, err := svc.CreatePost(ctx, PostInput{Title: "t", Content: "c", CoverImageKey: &good})
	if err != nil {
		t.Fatalf("valid key rejected: %v", err)
	}
	if post.CoverImageKey == nil || *post.CoverImageKey != good {
		t.Errorf("cover key: got %v, want %q", post.CoverImageKey, good)
	}
}

func TestServiceCreatePostEmptyCoverKeyAllowed(t *testing.T) {
	svc, _, _ := newTestService()

	empty := ""
	if _, err := svc.CreatePost(context.Background(), PostInput{Title: "t", Content: "c", CoverImageKey: &empty}); err != nil {
		t.Fatalf("empty cover key rejected: %v", err)
	}
}

func TestServiceGetPostMissing(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.GetPost(context.Background(), uuid.New())
	if !models.IsKind(err, models.KindNotFound) {
		t.Errorf("kind: got %q, want %q", models.KindOf(err), models.KindNotFound)
	}
}

func TestServiceErrorClassification(t *testing.T) {
	svc, posts, _ := newTestService()
	ctx := context.Background()

	// Typed errors pass through unchanged.
	posts.createErr = models.NewInvalidReference(uuid.New())
	_, err := svc.CreatePost(ctx, PostInput{Title: "t", Content: "c"})
	if !models.IsKind(err, models.KindInvalidReference) {
		t.Errorf("typed error: kind got %q, want %q", models.KindOf(err), models.KindInvalidReference)
	}

	// Untyped errors become database_unavailable, preserving the cause.
	cause := errors.New("connection refused")
	posts.createErr = cause
	_, err = svc.CreatePost(ctx, PostInput{Title: "t", Content: "c"})
	if !models.IsKind(err, models.KindDatabaseUnavailable) {
		t.Errorf("untyped error: kind got %q, want %q", models.KindOf(err), models.KindDatabaseUnavailable)
	}
	if !errors.Is(err, cause) {
		t.Error("classified error lost the underlying cause")
	}
}

func TestServiceCreateCategoryBounds(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.CreateCategory(ctx, "a"); !models.IsKind(err, models.KindValidation) {
		t.Errorf("1-rune: kind got %q, want %q", models.KindOf(err), models.KindValidation)
	}
	if _, err := svc.CreateCategory(ctx, "abcdefghijklmnopq"); !models.IsKind(err, models.KindValidation) {
		t.Errorf("17-rune: kind got %q, want %q", models.KindOf(err), models.KindValidation)
	}

	// Multibyte names count in runes.
	if _, err := svc.CreateCategory(ctx, "プログラミング"); err != nil {
		t.Errorf("7-rune multibyte name rejected: %v", err)
	}
}

func TestServiceDeleteCategoryMissing(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.DeleteCategory(context.Background(), uuid.New())
	if !models.IsKind(err, models.KindNotFound) {
		t.Errorf("kind: got %q, want %q", models.KindOf(err), models.KindNotFound)
	}
}

func TestServiceUpdatePostRoundTrip(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, PostInput{Title: "before", Content: "body"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	updated, err := svc.UpdatePost(ctx, post.ID, PostInput{Title: "after", Content: "body v2"})
	if err != nil {
		t.Fatalf("UpdatePost: %v", err)
	}
	if updated.Title != "after" || updated.Content != "body v2" {
		t.Errorf("updated post: got %q/%q", updated.Title, updated.Content)
	}
}
