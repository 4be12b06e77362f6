package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"linkfeed/internal/api"
	"linkfeed/internal/models"
	"linkfeed/internal/session"
)

type fakeAPI struct {
	posts   []models.Post
	listErr error

	created   *models.Post
	createErr error
	createReq api.CreatePostRequest

	liked   *models.Post
	likeErr error

	deleteErr error

	entered chan struct{} // when set, CreatePost signals entry and blocks on proceed
	proceed chan struct{}
}

func (f *fakeAPI) Posts(ctx context.Context) ([]models.Post, error) {
	return f.posts, f.listErr
}

func (f *fakeAPI) CreatePost(ctx context.Context, req api.CreatePostRequest) (*models.Post, error) {
	f.createReq = req
	if f.entered != nil {
		f.entered <- struct{}{}
		<-f.proceed
	}
	return f.created, f.createErr
}

func (f *fakeAPI) LikePost(ctx context.Context, postID, userID string) (*models.Post, error) {
	return f.liked, f.likeErr
}

func (f *fakeAPI) DeletePost(ctx context.Context, postID, userID string) error {
	return f.deleteErr
}

func testSession() *session.Session {
	return &session.Session{
		ID: "s1",
		User: models.User{
			ID:       "u1",
			Username: "alice",
			Email:    "alice@example.com",
			Headline: "Engineer",
		},
	}
}

func TestLoad_ReplacesWholesale(t *testing.T) {
	fake := &fakeAPI{posts: []models.Post{{ID: "p1"}}}
	c := NewController(fake)

	c.Load(context.Background())
	if len(c.Posts()) != 1 {
		t.Fatalf("expected 1 post, got %d", len(c.Posts()))
	}

	fake.posts = []models.Post{{ID: "p3"}, {ID: "p2"}}
	c.Load(context.Background())

	posts := c.Posts()
	if len(posts) != 2 || posts[0].ID != "p3" {
		t.Errorf("expected wholesale replacement, got %+v", posts)
	}
}

func TestLoad_FailureKeepsPrevious(t *testing.T) {
	fake := &fakeAPI{posts: []models.Post{{ID: "p1"}}}
	c := NewController(fake)
	c.Load(context.Background())

	fake.listErr = errors.New("network down")
	c.Load(context.Background())

	if len(c.Posts()) != 1 {
		t.Errorf("expected previous posts kept on failure, got %d", len(c.Posts()))
	}
}

func TestCreate_PrependsServerPost(t *testing.T) {
	fake := &fakeAPI{
		posts:   []models.Post{{ID: "p1"}},
		created: &models.Post{ID: "p2", Content: "hello"},
	}
	c := NewController(fake)
	c.Load(context.Background())

	post, err := c.Create(context.Background(), testSession(), "  hello  ")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if post.ID != "p2" {
		t.Errorf("expected server post returned, got %+v", post)
	}

	posts := c.Posts()
	if len(posts) != 2 {
		t.Fatalf("expected exactly one new entry, got %d posts", len(posts))
	}
	if posts[0].ID != "p2" {
		t.Errorf("expected new post prepended, got %q first", posts[0].ID)
	}

	// Author snapshot comes from the session profile.
	if fake.createReq.Author != "alice" || fake.createReq.Title != "Engineer" {
		t.Errorf("unexpected snapshot: %+v", fake.createReq)
	}
	if fake.createReq.Avatar != "AL" {
		t.Errorf("expected avatar AL, got %q", fake.createReq.Avatar)
	}
	if fake.createReq.Content != "hello" {
		t.Errorf("expected trimmed content, got %q", fake.createReq.Content)
	}
}

func TestCreate_EmptyHeadlineFallsBack(t *testing.T) {
	fake := &fakeAPI{created: &models.Post{ID: "p1"}}
	c := NewController(fake)

	sess := testSession()
	sess.User.Headline = ""
	if _, err := c.Create(context.Background(), sess, "hi"); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if fake.createReq.Title != "Professional" {
		t.Errorf("expected title fallback, got %q", fake.createReq.Title)
	}
}

func TestCreate_EmptyContent(t *testing.T) {
	c := NewController(&fakeAPI{})

	if _, err := c.Create(context.Background(), testSession(), "   "); !errors.Is(err, ErrEmptyContent) {
		t.Errorf("expected ErrEmptyContent, got %v", err)
	}
	if _, err := c.Create(context.Background(), nil, "hi"); !errors.Is(err, ErrNoUser) {
		t.Errorf("expected ErrNoUser, got %v", err)
	}
}

func TestCreate_FailureLeavesSequence(t *testing.T) {
	fake := &fakeAPI{
		posts:     []models.Post{{ID: "p1"}},
		createErr: errors.New("server error"),
	}
	c := NewController(fake)
	c.Load(context.Background())

	if _, err := c.Create(context.Background(), testSession(), "hi"); err == nil {
		t.Fatal("expected error")
	}
	if len(c.Posts()) != 1 {
		t.Errorf("expected sequence unchanged on failure, got %d posts", len(c.Posts()))
	}
}

func TestCreate_DuplicateSubmissionRejected(t *testing.T) {
	fake := &fakeAPI{
		created: &models.Post{ID: "p1"},
		entered: make(chan struct{}),
		proceed: make(chan struct{}),
	}
	c := NewController(fake)

	done := make(chan error, 1)
	go func() {
		_, err := c.Create(context.Background(), testSession(), "first click")
		done <- err
	}()

	<-fake.entered // first request is now in flight

	if _, err := c.Create(context.Background(), testSession(), "second click"); !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy for duplicate submission, got %v", err)
	}

	close(fake.proceed)
	if err := <-done; err != nil {
		t.Fatalf("first Create() error: %v", err)
	}

	// Once the first request resolved the action is free again.
	fake.entered = nil
	if _, err := c.Create(context.Background(), testSession(), "third"); err != nil {
		t.Errorf("expected action free after completion, got %v", err)
	}
}

func TestLike_ReplacesPostWholesale(t *testing.T) {
	fake := &fakeAPI{
		posts: []models.Post{
			{ID: "p1", Likes: 0},
			{ID: "p2", Likes: 5},
		},
		liked: &models.Post{ID: "p1", Likes: 1, LikedBy: []string{"u1"}},
	}
	c := NewController(fake)
	c.Load(context.Background())

	if _, err := c.Like(context.Background(), testSession(), "p1"); err != nil {
		t.Fatalf("Like() error: %v", err)
	}

	posts := c.Posts()
	if posts[0].Likes != 1 || !posts[0].LikedByUser("u1") {
		t.Errorf("expected server copy in place, got %+v", posts[0])
	}
	if posts[1].Likes != 5 {
		t.Errorf("expected other posts untouched, got %+v", posts[1])
	}
}

func TestDelete(t *testing.T) {
	fake := &fakeAPI{posts: []models.Post{{ID: "p1"}, {ID: "p2"}}}
	c := NewController(fake)
	c.Load(context.Background())

	if err := c.Delete(context.Background(), testSession(), "p1"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	posts := c.Posts()
	if len(posts) != 1 || posts[0].ID != "p2" {
		t.Errorf("expected p1 removed, got %+v", posts)
	}
}

func TestDelete_FailureLeavesSequence(t *testing.T) {
	fake := &fakeAPI{
		posts:     []models.Post{{ID: "p1"}},
		deleteErr: errors.New("not the author"),
	}
	c := NewController(fake)
	c.Load(context.Background())

	if err := c.Delete(context.Background(), testSession(), "p1"); err == nil {
		t.Fatal("expected error")
	}
	if len(c.Posts()) != 1 {
		t.Errorf("expected sequence unchanged, got %d posts", len(c.Posts()))
	}
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		ago  time.Duration
		want string
	}{
		{30 * time.Second, "Just now"},
		{5 * time.Minute, "5m"},
		{90 * time.Minute, "1h"},
		{3 * time.Hour, "3h"},
		{2 * 24 * time.Hour, "2d"},
		{6 * 24 * time.Hour, "6d"},
		{3 * 7 * 24 * time.Hour, "3w"},
	}
	for _, tt := range tests {
		if got := TimeAgo(now, now.Add(-tt.ago)); got != tt.want {
			t.Errorf("TimeAgo(-%v) = %q, want %q", tt.ago, got, tt.want)
		}
	}
}

func TestAvatarInitials(t *testing.T) {
	if got := AvatarInitials("alice"); got != "AL" {
		t.Errorf("expected AL, got %q", got)
	}
	if got := AvatarInitials("b"); got != "B" {
		t.Errorf("expected B, got %q", got)
	}
}
