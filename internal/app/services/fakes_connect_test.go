package services_test

import (
	"context"
	"sort"
	"time"

	"github.com/acodelab/backend/internal/app/models"
	"github.com/acodelab/backend/internal/pkg/apperrors"
)

// fakeFeedStore keeps posts, comments, and likes in memory.
type fakeFeedStore struct {
	posts    map[int64]*models.Post
	comments map[int64][]models.Comment
	likes    map[int64]map[int64]bool // postID -> userID
	nextID   int64
}

func newFakeFeedStore() *fakeFeedStore {
	return &fakeFeedStore{
		posts:    make(map[int64]*models.Post),
		comments: make(map[int64][]models.Comment),
		likes:    make(map[int64]map[int64]bool),
	}
}

func (f *fakeFeedStore) Create(_ context.Context, post *models.Post) error {
	f.nextID++
	post.ID = f.nextID
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	stored := *post
	f.posts[post.ID] = &stored
	return nil
}

func (f *fakeFeedStore) GetByID(_ context.Context, id int64) (*models.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, apperrors.ErrPostNotFound
	}
	copied := *post
	return &copied, nil
}

func (f *fakeFeedStore) List(_ context.Context, authorIDs []int64, offset uint64, limit int) ([]models.Post, int64, error) {
	allow := make(map[int64]bool, len(authorIDs))
	for _, id := range authorIDs {
		allow[id] = true
	}
	var out []models.Post
	for _, post := range f.posts {
		if len(authorIDs) > 0 && !allow[post.AuthorID] {
			continue
		}
		out = append(out, *post)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	total := int64(len(out))
	if offset >= uint64(len(out)) {
		return []models.Post{}, total, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, total, nil
}

func (f *fakeFeedStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.posts[id]; !ok {
		return apperrors.ErrPostNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakeFeedStore) CreateComment(_ context.Context, comment *models.Comment) error {
	post, ok := f.posts[comment.PostID]
	if !ok {
		return apperrors.ErrPostNotFound
	}
	f.nextID++
	comment.ID = f.nextID
	comment.CreatedAt = time.Now()
	f.comments[comment.PostID] = append(f.comments[comment.PostID], *comment)
	post.CommentsCount++
	return nil
}

func (f *fakeFeedStore) ListComments(_ context.Context, postID int64) ([]models.Comment, error) {
	return append([]models.Comment(nil), f.comments[postID]...), nil
}

func (f *fakeFeedStore) ToggleLike(_ context.Context, userID, postID int64) (bool, int, int64, error) {
	post, ok := f.posts[postID]
	if !ok {
		return false, 0, 0, apperrors.ErrPostNotFound
	}
	if f.likes[postID] == nil {
		f.likes[postID] = make(map[int64]bool)
	}
	liked := !f.likes[postID][userID]
	if liked {
		f.likes[postID][userID] = true
		post.Likes++
	} else {
		delete(f.likes[postID], userID)
		post.Likes--
	}
	return liked, post.Likes, post.AuthorID, nil
}

// fakeShowcaseStore keeps portfolio submissions in memory, enforcing one
// submission per user per week.
type fakeShowcaseStore struct {
	submissions map[int64]*models.PortfolioSubmission
	nextID      int64
}

func newFakeShowcaseStore() *fakeShowcaseStore {
	return &fakeShowcaseStore{submissions: make(map[int64]*models.PortfolioSubmission)}
}

func (f *fakeShowcaseStore) Create(_ context.Context, submission *models.PortfolioSubmission) error {
	for _, existing := range f.submissions {
		if existing.UserID == submission.UserID && existing.WeekYear == submission.WeekYear {
			return apperrors.NewConflictError("already submitted a project this week")
		}
	}
	f.nextID++
	submission.ID = f.nextID
	submission.CreatedAt = time.Now()
	stored := *submission
	f.submissions[submission.ID] = &stored
	return nil
}

func (f *fakeShowcaseStore) GetByID(_ context.Context, id int64) (*models.PortfolioSubmission, error) {
	submission, ok := f.submissions[id]
	if !ok {
		return nil, apperrors.ErrPortfolioNotFound
	}
	copied := *submission
	return &copied, nil
}

func (f *fakeShowcaseStore) ListByWeek(_ context.Context, weekYear string) ([]models.PortfolioSubmission, error) {
	var out []models.PortfolioSubmission
	for _, submission := range f.submissions {
		if submission.WeekYear == weekYear {
			out = append(out, *submission)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeShowcaseStore) SetFeatured(_ context.Context, id int64, featured bool) error {
	submission, ok := f.submissions[id]
	if !ok {
		return apperrors.ErrPortfolioNotFound
	}
	submission.IsFeatured = featured
	return nil
}

func (f *fakeShowcaseStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.submissions[id]; !ok {
		return apperrors.ErrPortfolioNotFound
	}
	delete(f.submissions, id)
	return nil
}
