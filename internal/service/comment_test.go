package service

import (
	"context"
	"errors"
	"testing"

	"socialnet/internal/model"
)

type mockCommentRepository struct {
	createFn     func(ctx context.Context, comment *model.Comment) error
	getByIDFn    func(ctx context.Context, commentID int64) (*model.Comment, error)
	listByPostFn func(ctx context.Context, postID int64, limit, offset int) ([]model.Comment, int, error)
	updateFn     func(ctx context.Context, comment *model.Comment) error
	deleteFn     func(ctx context.Context, commentID int64) error

	deleteCalls []int64
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if m.createFn != nil {
		return m.createFn(ctx, comment)
	}
	comment.ID = 1
	return nil
}

func (m *mockCommentRepository) GetByID(ctx context.Context, commentID int64) (*model.Comment, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, commentID)
	}
	return nil, model.ErrCommentNotFound
}

func (m *mockCommentRepository) ListByPost(ctx context.Context, postID int64, limit, offset int) ([]model.Comment, int, error) {
	if m.listByPostFn != nil {
		return m.listByPostFn(ctx, postID, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockCommentRepository) Update(ctx context.Context, comment *model.Comment) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, comment)
	}
	return nil
}

func (m *mockCommentRepository) Delete(ctx context.Context, commentID int64) error {
	m.deleteCalls = append(m.deleteCalls, commentID)
	if m.deleteFn != nil {
		return m.deleteFn(ctx, commentID)
	}
	return nil
}

func TestCommentService_ListByPost(t *testing.T) {
	t.Run("missing post", func(t *testing.T) {
		svc := NewCommentService(&mockCommentRepository{}, existingPost(false))
		_, _, err := svc.ListByPost(context.Background(), 404, 1, 20)
		if !errors.Is(err, model.ErrPostNotFound) {
			t.Errorf("error = %v, want %v", err, model.ErrPostNotFound)
		}
	})

	t.Run("passes offset", func(t *testing.T) {
		var gotLimit, gotOffset int
		mockComments := &mockCommentRepository{
			listByPostFn: func(ctx context.Context, postID int64, limit, offset int) ([]model.Comment, int, error) {
				gotLimit, gotOffset = limit, offset
				return []model.Comment{{ID: 1}}, 30, nil
			},
		}
		svc := NewCommentService(mockComments, existingPost(true))

		comments, total, err := svc.ListByPost(context.Background(), 1, 2, 20)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotLimit != 20 || gotOffset != 20 {
			t.Errorf("limit/offset = %d/%d, want 20/20", gotLimit, gotOffset)
		}
		if total != 30 || len(comments) != 1 {
			t.Errorf("total = %d, comments = %d", total, len(comments))
		}
	})
}

func TestCommentService_Create(t *testing.T) {
	t.Run("missing post", func(t *testing.T) {
		svc := NewCommentService(&mockCommentRepository{}, existingPost(false))
		_, err := svc.Create(context.Background(), 404, 7, "nice post")
		if !errors.Is(err, model.ErrPostNotFound) {
			t.Errorf("error = %v, want %v", err, model.ErrPostNotFound)
		}
	})

	t.Run("returns comment with author", func(t *testing.T) {
		mockComments := &mockCommentRepository{
			createFn: func(ctx context.Context, comment *model.Comment) error {
				comment.ID = 11
				return nil
			},
			getByIDFn: func(ctx context.Context, commentID int64) (*model.Comment, error) {
				return &model.Comment{
					ID: commentID, Content: "nice post", UserID: 7, PostID: 1,
					Author: &model.UserSummary{ID: 7, Username: "alice"},
				}, nil
			},
		}
		svc := NewCommentService(mockComments, existingPost(true))

		comment, err := svc.Create(context.Background(), 1, 7, "nice post")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if comment.Author == nil || comment.Author.Username != "alice" {
			t.Error("created comment should carry the author summary")
		}
	})
}

func TestCommentService_Update_Ownership(t *testing.T) {
	mockComments := &mockCommentRepository{
		getByIDFn: func(ctx context.Context, commentID int64) (*model.Comment, error) {
			return &model.Comment{ID: commentID, Content: "old", UserID: 7}, nil
		},
	}
	svc := NewCommentService(mockComments, existingPost(true))

	t.Run("owner can update", func(t *testing.T) {
		comment, err := svc.Update(context.Background(), 1, 7, "edited")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if comment.Content != "edited" {
			t.Errorf("content = %q, want edited", comment.Content)
		}
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		_, err := svc.Update(context.Background(), 1, 99, "hijacked")
		if !errors.Is(err, model.ErrNotCommentOwner) {
			t.Errorf("error = %v, want %v", err, model.ErrNotCommentOwner)
		}
	})

	t.Run("missing comment", func(t *testing.T) {
		svc := NewCommentService(&mockCommentRepository{}, existingPost(true))
		_, err := svc.Update(context.Background(), 404, 7, "edited")
		if !errors.Is(err, model.ErrCommentNotFound) {
			t.Errorf("error = %v, want %v", err, model.ErrCommentNotFound)
		}
	})
}

func TestCommentService_Delete_Ownership(t *testing.T) {
	mockComments := &mockCommentRepository{
		getByIDFn: func(ctx context.Context, commentID int64) (*model.Comment, error) {
			return &model.Comment{ID: commentID, UserID: 7}, nil
		},
	}
	svc := NewCommentService(mockComments, existingPost(true))

	if err := svc.Delete(context.Background(), 1, 99); !errors.Is(err, model.ErrNotCommentOwner) {
		t.Errorf("error = %v, want %v", err, model.ErrNotCommentOwner)
	}
	if len(mockComments.deleteCalls) != 0 {
		t.Error("Delete should not reach the repository for a non-owner")
	}

	if err := svc.Delete(context.Background(), 1, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mockComments.deleteCalls) != 1 {
		t.Errorf("Delete called %d times, want 1", len(mockComments.deleteCalls))
	}
}
