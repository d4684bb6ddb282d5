package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestNew_Normalizes(t *testing.T) {
	assert.Equal(t, Params{Page: 1, PerPage: DefaultPerPage}, New(0, 0))
	assert.Equal(t, Params{Page: 3, PerPage: MaxPerPage}, New(3, 1000))
	assert.Equal(t, Params{Page: 1, PerPage: 5}, New(-2, 5))
}

func TestParse_Garbage(t *testing.T) {
	p := Parse("abc", "")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPerPage, p.PerPage)
}

func TestParams_Offset(t *testing.T) {
	p := New(3, 10)
	assert.Equal(t, 20, p.Offset())
	assert.Equal(t, 10, p.Limit())
}

func TestNewPage_Empty(t *testing.T) {
	page := NewPage[int](nil, New(1, 20), 0)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)
	assert.False(t, page.HasMore)
	_, ok := page.NextPage()
	assert.False(t, ok)
}

func TestNewPage_LastPage(t *testing.T) {
	page := NewPage([]int{41}, New(3, 20), 41)
	assert.Equal(t, 3, page.TotalPages)
	assert.False(t, page.HasMore)
}

func TestNewPage_HasMoreMatchesTotalPages(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(0, 5000).Draw(rt, "count")
		perPage := rapid.IntRange(1, MaxPerPage).Draw(rt, "perPage")
		page := rapid.IntRange(1, 300).Draw(rt, "page")

		p := NewPage[int](nil, New(page, perPage), count)
		if p.HasMore != (p.Page < p.TotalPages) {
			rt.Fatalf("has_more=%v page=%d total_pages=%d", p.HasMore, p.Page, p.TotalPages)
		}
		if p.TotalPages*perPage < count {
			rt.Fatalf("total_pages %d too small for count %d", p.TotalPages, count)
		}
		next, ok := p.NextPage()
		if ok && next != page+1 {
			rt.Fatalf("next page %d after %d", next, page)
		}
	})
}

// Последовательный обход страниц по детерминированно упорядоченному набору
// не возвращает уже виденные элементы и заканчивается ровно на последней странице.
func TestPages_NoRegression(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(0, 500).Draw(rt, "count")
		perPage := rapid.IntRange(1, 50).Draw(rt, "perPage")

		all := make([]int, count)
		for i := range all {
			all[i] = i
		}

		seen := make(map[int]struct{})
		pageNum := 1
		for {
			params := New(pageNum, perPage)
			end := params.Offset() + params.Limit()
			if end > count {
				end = count
			}
			var items []int
			if params.Offset() < count {
				items = all[params.Offset():end]
			}
			p := NewPage(items, params, count)
			for _, id := range p.Items {
				if _, dup := seen[id]; dup {
					rt.Fatalf("id %d returned twice", id)
				}
				seen[id] = struct{}{}
			}
			next, ok := p.NextPage()
			if !ok {
				break
			}
			pageNum = next
		}
		if len(seen) != count {
			rt.Fatalf("seen %d of %d", len(seen), count)
		}
	})
}
