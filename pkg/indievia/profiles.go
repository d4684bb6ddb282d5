package indievia

import (
	"context"
	"net/http"
	"strconv"

	"github.com/indievia/indievia-backend/pkg/pagination"
)

// Login входит и запоминает access токен.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	var result AuthResult
	if err := c.Invoke(ctx, http.MethodPost, "auth/login", loginBody{Email: email, Password: password}, &result); err != nil {
		return nil, err
	}
	if result.Tokens != nil {
		c.SetToken(result.Tokens.AccessToken)
	}
	c.cache.Invalidate("")
	return &result, nil
}

// Session текущий пользователь и куда его направить.
func (c *Client) Session(ctx context.Context) (*SessionInfo, error) {
	return Fetch(ctx, c.cache, "session", func(ctx context.Context) (*SessionInfo, error) {
		var info SessionInfo
		if err := c.Query(ctx, "auth/session", nil, &info); err != nil {
			return nil, err
		}
		return &info, nil
	})
}

// Professional публичная страница мастера.
func (c *Client) Professional(ctx context.Context, slug string) (*Professional, error) {
	return Fetch(ctx, c.cache, "professional:"+slug, func(ctx context.Context) (*Professional, error) {
		var p Professional
		if err := c.Query(ctx, "professionals/"+slug, nil, &p); err != nil {
			return nil, err
		}
		return &p, nil
	})
}

// SearchProfessionals поиск мастеров по тексту и городу.
func (c *Client) SearchProfessionals(query, city string, perPage int) *Infinite[Professional] {
	return NewInfinite(func(ctx context.Context, page int) (*pagination.Page[Professional], error) {
		filters := Filters{"q": query, "city": city, "page": strconv.Itoa(page), "per_page": strconv.Itoa(perPage)}
		return Fetch(ctx, c.cache, Key("professionals", filters), func(ctx context.Context) (*pagination.Page[Professional], error) {
			var p pagination.Page[Professional]
			if err := c.Query(ctx, "professionals", filters, &p); err != nil {
				return nil, err
			}
			return &p, nil
		})
	})
}

// Referrals прогресс мастера по реферальной программе.
func (c *Client) Referrals(ctx context.Context) (*ReferralProgress, error) {
	return Fetch(ctx, c.cache, "professional:referrals", func(ctx context.Context) (*ReferralProgress, error) {
		var p ReferralProgress
		if err := c.Query(ctx, "professional/referrals", nil, &p); err != nil {
			return nil, err
		}
		return &p, nil
	})
}
