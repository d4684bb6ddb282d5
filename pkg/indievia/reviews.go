package indievia

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/indievia/indievia-backend/pkg/pagination"
)

// PlaceholderReplyID ID ответа, пока сервер не вернул настоящий.
var PlaceholderReplyID = uuid.Nil

// ReviewKey ключ кэша одного отзыва.
func ReviewKey(id uuid.UUID) string {
	return "review:" + id.String()
}

const reviewListPrefix = "reviews"

// Review загружает отзыв через кэш.
func (c *Client) Review(ctx context.Context, id uuid.UUID) (*Review, error) {
	return Fetch(ctx, c.cache, ReviewKey(id), func(ctx context.Context) (*Review, error) {
		var review Review
		if err := c.Invoke(ctx, http.MethodGet, "reviews/"+id.String(), nil, &review); err != nil {
			return nil, err
		}
		return &review, nil
	})
}

// ProfessionalReviews публичная лента отзывов мастера. sort: newest, highest, lowest.
func (c *Client) ProfessionalReviews(slug, sort string, perPage int) *Infinite[Review] {
	return NewInfinite(func(ctx context.Context, page int) (*pagination.Page[Review], error) {
		filters := Filters{"page": strconv.Itoa(page), "per_page": strconv.Itoa(perPage), "sort": sort}
		key := Key(reviewListPrefix+":"+slug, filters)
		return Fetch(ctx, c.cache, key, func(ctx context.Context) (*pagination.Page[Review], error) {
			since := c.cache.begin()
			var p pagination.Page[Review]
			if err := c.Query(ctx, "professionals/"+slug+"/reviews", filters, &p); err != nil {
				return nil, err
			}
			c.primeReviews(p.Items, since)
			return &p, nil
		})
	})
}

// primeReviews раскладывает отзывы страницы по ключам отдельных отзывов,
// не затирая те, что изменились после начала загрузки страницы.
func (c *Client) primeReviews(items []Review, since uint64) {
	for i := range items {
		r := items[i]
		c.cache.setIfCurrent(ReviewKey(r.ID), &r, since)
	}
}

// CreateReview публикует отзыв. Вложения проверяются до отправки запроса.
func (c *Client) CreateReview(ctx context.Context, in CreateReviewInput, media []UploadFile) (*Review, error) {
	var review Review
	if len(media) == 0 {
		if err := c.Invoke(ctx, http.MethodPost, "review", in, &review); err != nil {
			return nil, err
		}
	} else {
		fields := map[string]string{
			"professional_id": in.ProfessionalID.String(),
			"rating":          strconv.Itoa(in.Rating),
			"body":            in.Body,
		}
		if err := c.upload(ctx, uploadReview, fields, media, &review); err != nil {
			return nil, err
		}
	}
	c.cache.Set(ReviewKey(review.ID), &review)
	c.cache.Invalidate(reviewListPrefix)
	return &review, nil
}

// PostReply публикует ответ мастера. Ответ сразу виден в кэше с
// PlaceholderReplyID и заменяется настоящим после ответа сервера.
func (c *Client) PostReply(ctx context.Context, reviewID uuid.UUID, body string) (*ReviewReply, error) {
	var created ReviewReply
	err := Optimistic(ctx, c.cache, Mutation[*Review]{
		Key: ReviewKey(reviewID),
		Patch: func(current *Review, _ bool) *Review {
			next := cloneReview(current, reviewID)
			now := time.Now()
			next.Reply = &ReviewReply{ID: PlaceholderReplyID, Body: body, CreatedAt: now, UpdatedAt: now}
			return next
		},
		Call: func(ctx context.Context) (func(*Review) *Review, error) {
			if err := c.Invoke(ctx, http.MethodPost, replyPath(reviewID), replyBody{Body: body}, &created); err != nil {
				return nil, err
			}
			return withReply(reviewID, &created), nil
		},
		Invalidate: []string{reviewListPrefix},
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// EditReply меняет текст ответа.
func (c *Client) EditReply(ctx context.Context, reviewID uuid.UUID, body string) (*ReviewReply, error) {
	var updated ReviewReply
	err := Optimistic(ctx, c.cache, Mutation[*Review]{
		Key: ReviewKey(reviewID),
		Patch: func(current *Review, _ bool) *Review {
			next := cloneReview(current, reviewID)
			reply := ReviewReply{ID: PlaceholderReplyID}
			if next.Reply != nil {
				reply = *next.Reply
			}
			reply.Body = body
			reply.UpdatedAt = time.Now()
			next.Reply = &reply
			return next
		},
		Call: func(ctx context.Context) (func(*Review) *Review, error) {
			if err := c.Invoke(ctx, http.MethodPatch, replyPath(reviewID), replyBody{Body: body}, &updated); err != nil {
				return nil, err
			}
			return withReply(reviewID, &updated), nil
		},
		Invalidate: []string{reviewListPrefix},
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteReply удаляет ответ.
func (c *Client) DeleteReply(ctx context.Context, reviewID uuid.UUID) error {
	return Optimistic(ctx, c.cache, Mutation[*Review]{
		Key: ReviewKey(reviewID),
		Patch: func(current *Review, _ bool) *Review {
			next := cloneReview(current, reviewID)
			next.Reply = nil
			return next
		},
		Call: func(ctx context.Context) (func(*Review) *Review, error) {
			return nil, c.Invoke(ctx, http.MethodDelete, replyPath(reviewID), nil, nil)
		},
		Invalidate: []string{reviewListPrefix},
	})
}

// ReportReview отправляет жалобу на отзыв.
func (c *Client) ReportReview(ctx context.Context, reviewID uuid.UUID, in ReportInput) (*Report, error) {
	var report Report
	if err := c.Invoke(ctx, http.MethodPost, "reviews/"+reviewID.String()+"/report", in, &report); err != nil {
		return nil, err
	}
	c.cache.Invalidate(ReviewKey(reviewID))
	return &report, nil
}

func replyPath(reviewID uuid.UUID) string {
	return "reviews/" + reviewID.String() + "/reply"
}

func withReply(reviewID uuid.UUID, reply *ReviewReply) func(*Review) *Review {
	return func(r *Review) *Review {
		next := cloneReview(r, reviewID)
		saved := *reply
		next.Reply = &saved
		return next
	}
}

// cloneReview копия для патча: значения в кэше не меняются на месте,
// иначе снимок увидел бы изменения.
func cloneReview(r *Review, id uuid.UUID) *Review {
	if r == nil {
		return &Review{ID: id}
	}
	next := *r
	if r.Reply != nil {
		reply := *r.Reply
		next.Reply = &reply
	}
	return &next
}
