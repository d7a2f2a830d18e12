package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskboard/internal/auth"
	"taskboard/internal/model"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// BoardFilter selects a page of posts. Empty category or "all" disables the
// category filter; Search matches title or content case-insensitively.
type BoardFilter struct {
	Category string
	Search   string
	Page     int
	Limit    int
}

// Normalize fills defaults and clamps the page window.
func (f BoardFilter) Normalize() BoardFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageLimit
	}
	if f.Limit > MaxPageLimit {
		f.Limit = MaxPageLimit
	}
	return f
}

func (f BoardFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

type PostPatch struct {
	Title    *string
	Content  *string
	Category *string
	IsUrgent *bool
}

// LikeResult is the outcome of a like toggle.
type LikeResult struct {
	Liked      bool
	LikesCount int
}

type BoardRepositoryInterface interface {
	List(ctx context.Context, filter BoardFilter) ([]model.BoardPostSummary, int64, error)
	GetByID(ctx context.Context, id uint) (*model.BoardPost, error)
	Create(ctx context.Context, post *model.BoardPost) error
	Update(ctx context.Context, id uint, actorID string, patch PostPatch) (*model.BoardPost, error)
	Delete(ctx context.Context, id uint, actorID string) error
	IncrementViews(ctx context.Context, id uint) (int, error)
	ToggleLike(ctx context.Context, postID uint, userID string) (*LikeResult, error)
	ListComments(ctx context.Context, postID uint) ([]model.BoardComment, error)
	AddComment(ctx context.Context, comment *model.BoardComment) error
	DeleteComment(ctx context.Context, postID, commentID uint, actorID string) error
	Count(ctx context.Context) (int64, error)
}

var _ BoardRepositoryInterface = (*BoardRepository)(nil)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *BoardRepository) filtered(ctx context.Context, f BoardFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.BoardPost{})
	if f.Category != "" && f.Category != model.CategoryAll {
		q = q.Where("category = ?", f.Category)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
		q = q.Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	return q
}

// List returns one page of posts, newest first, with their comment counts and
// the total number of posts matching the filter.
func (r *BoardRepository) List(ctx context.Context, filter BoardFilter) ([]model.BoardPostSummary, int64, error) {
	f := filter.Normalize()

	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	posts := []model.BoardPostSummary{}
	err := r.filtered(ctx, f).
		Select("board_posts.*, (SELECT COUNT(*) FROM board_comments WHERE board_comments.post_id = board_posts.id) AS comments_count").
		Order("created_at DESC").
		Order("id DESC").
		Limit(f.Limit).
		Offset(f.Offset()).
		Scan(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *BoardRepository) GetByID(ctx context.Context, id uint) (*model.BoardPost, error) {
	var post model.BoardPost
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *BoardRepository) Create(ctx context.Context, post *model.BoardPost) error {
	post.LikesCount = 0
	post.ViewsCount = 0
	return r.db.WithContext(ctx).Create(post).Error
}

func lockPost(tx *gorm.DB, id uint) (*model.BoardPost, error) {
	var post model.BoardPost
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&post, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Update edits a post owned by actorID. Nil patch fields keep their value.
func (r *BoardRepository) Update(ctx context.Context, id uint, actorID string, patch PostPatch) (*model.BoardPost, error) {
	var post *model.BoardPost
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if post, err = lockPost(tx, id); err != nil {
			return err
		}
		if err := auth.RequireOwner(post.AuthorID, actorID); err != nil {
			return err
		}

		cols := map[string]interface{}{}
		if patch.Title != nil {
			cols["title"] = *patch.Title
		}
		if patch.Content != nil {
			cols["content"] = *patch.Content
		}
		if patch.Category != nil {
			cols["category"] = *patch.Category
		}
		if patch.IsUrgent != nil {
			cols["is_urgent"] = *patch.IsUrgent
		}
		if len(cols) == 0 {
			return nil
		}
		if err := tx.Model(post).Updates(cols).Error; err != nil {
			return err
		}
		return tx.First(post, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post owned by actorID together with its likes and comments.
func (r *BoardRepository) Delete(ctx context.Context, id uint, actorID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := lockPost(tx, id)
		if err != nil {
			return err
		}
		if err := auth.RequireOwner(post.AuthorID, actorID); err != nil {
			return err
		}

		if err := tx.Where("post_id = ?", id).Delete(&model.BoardLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.BoardComment{}).Error; err != nil {
			return err
		}
		return tx.Delete(post).Error
	})
}

// IncrementViews bumps views_count by one and returns the new value.
func (r *BoardRepository) IncrementViews(ctx context.Context, id uint) (int, error) {
	var views int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.BoardPost{}).
			Where("id = ?", id).
			UpdateColumn("views_count", gorm.Expr("views_count + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrPostNotFound
		}
		return tx.Model(&model.BoardPost{}).Where("id = ?", id).Pluck("views_count", &views).Error
	})
	return views, err
}

// ToggleLike flips the (post, user) like and moves likes_count with it inside
// one transaction. The post row lock serializes concurrent toggles.
func (r *BoardRepository) ToggleLike(ctx context.Context, postID uint, userID string) (*LikeResult, error) {
	res := &LikeResult{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post, err := lockPost(tx, postID)
		if err != nil {
			return err
		}

		removed := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&model.BoardLike{})
		if removed.Error != nil {
			return removed.Error
		}

		delta := -1
		if removed.RowsAffected == 0 {
			if err := tx.Create(&model.BoardLike{PostID: postID, UserID: userID}).Error; err != nil {
				return err
			}
			delta = 1
			res.Liked = true
		}

		if err := tx.Model(post).UpdateColumn("likes_count", gorm.Expr("likes_count + ?", delta)).Error; err != nil {
			return err
		}
		return tx.Model(&model.BoardPost{}).Where("id = ?", postID).Pluck("likes_count", &res.LikesCount).Error
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *BoardRepository) ListComments(ctx context.Context, postID uint) ([]model.BoardComment, error) {
	if _, err := r.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	comments := []model.BoardComment{}
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&comments).Error
	return comments, err
}

func (r *BoardRepository) AddComment(ctx context.Context, comment *model.BoardComment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := lockPost(tx, comment.PostID); err != nil {
			return err
		}
		return tx.Create(comment).Error
	})
}

func (r *BoardRepository) DeleteComment(ctx context.Context, postID, commentID uint, actorID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment model.BoardComment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&comment, "id = ? AND post_id = ?", commentID, postID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCommentNotFound
			}
			return err
		}
		if err := auth.RequireOwner(comment.AuthorID, actorID); err != nil {
			return err
		}
		return tx.Delete(&comment).Error
	})
}

func (r *BoardRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.BoardPost{}).Count(&count).Error
	return count, err
}
