package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"newsportal/internal/common"
	"newsportal/internal/domain/model"
)

// In-memory repository fakes backing the service tests.

type memUserRepo struct {
	byEmail map[string]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*model.User{}}
}

func (r *memUserRepo) Create(ctx context.Context, user *model.User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return fmt.Errorf("duplicate email: %w", common.ErrConflict)
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	clone := *user
	r.byEmail[user.Email] = &clone
	return nil
}

func (r *memUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memUserRepo) CountAll(ctx context.Context) (int, error) {
	return len(r.byEmail), nil
}

func (r *memUserRepo) CountByRole(ctx context.Context, role string) (int, error) {
	n := 0
	for _, u := range r.byEmail {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *memUserRepo) ListLatest(ctx context.Context, limit int) ([]model.User, error) {
	users := []model.User{}
	for _, u := range r.byEmail {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	if len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

type memNewsRepo struct {
	items map[string]*model.News
	clock time.Time

	lastMonthlySince time.Time
}

func newMemNewsRepo() *memNewsRepo {
	return &memNewsRepo{
		items: map[string]*model.News{},
		clock: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (r *memNewsRepo) Create(ctx context.Context, news *model.News) error {
	if news.CreatedAt.IsZero() {
		r.clock = r.clock.Add(time.Minute)
		news.CreatedAt, news.UpdatedAt = r.clock, r.clock
	}
	clone := *news
	r.items[news.ID] = &clone
	return nil
}

func (r *memNewsRepo) FindByID(ctx context.Context, id string) (*model.News, error) {
	n, ok := r.items[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *n
	clone.Author = &model.Author{ID: n.AuthorID}
	return &clone, nil
}

func (r *memNewsRepo) sorted() []model.News {
	out := []model.News{}
	for _, n := range r.items {
		out = append(out, *n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *memNewsRepo) ListAll(ctx context.Context) ([]model.News, error) {
	return r.sorted(), nil
}

func (r *memNewsRepo) ListByCategory(ctx context.Context, category string) ([]model.News, error) {
	out := []model.News{}
	for _, n := range r.sorted() {
		if n.Category == category {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *memNewsRepo) ListLatest(ctx context.Context, limit int) ([]model.News, error) {
	out := r.sorted()
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memNewsRepo) ListByAuthor(ctx context.Context, authorID string) ([]model.News, error) {
	out := []model.News{}
	for _, n := range r.sorted() {
		if n.AuthorID == authorID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *memNewsRepo) ListRecentByAuthor(ctx context.Context, authorID string, limit int) ([]model.News, error) {
	out, _ := r.ListByAuthor(ctx, authorID)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memNewsRepo) Update(ctx context.Context, news *model.News) error {
	if _, ok := r.items[news.ID]; !ok {
		return common.ErrNotFound
	}
	r.clock = r.clock.Add(time.Minute)
	news.UpdatedAt = r.clock
	clone := *news
	clone.Author = nil
	r.items[news.ID] = &clone
	return nil
}

func (r *memNewsRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memNewsRepo) CountAll(ctx context.Context) (int, error) {
	return len(r.items), nil
}

func (r *memNewsRepo) CountByAuthor(ctx context.Context, authorID string) (int, error) {
	n := 0
	for _, item := range r.items {
		if item.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

func (r *memNewsRepo) CountByCategory(ctx context.Context, authorID string) ([]model.CategoryCount, error) {
	counts := map[string]int{}
	for _, item := range r.items {
		if item.AuthorID == authorID {
			counts[item.Category]++
		}
	}
	out := []model.CategoryCount{}
	for cat, n := range counts {
		out = append(out, model.CategoryCount{Category: cat, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out, nil
}

func (r *memNewsRepo) CountByMonth(ctx context.Context, authorID string, since time.Time) ([]model.MonthCount, error) {
	r.lastMonthlySince = since
	counts := map[[2]int]int{}
	for _, item := range r.items {
		if item.AuthorID != authorID || item.CreatedAt.Before(since) {
			continue
		}
		counts[[2]int{item.CreatedAt.Year(), int(item.CreatedAt.Month())}]++
	}
	out := []model.MonthCount{}
	for key, n := range counts {
		out = append(out, model.MonthCount{Year: key[0], Month: key[1], Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out, nil
}
