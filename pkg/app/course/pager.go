package course

import (
	"context"
	"fmt"

	domainCourse "github.com/tarpaulin/tarpaulin/pkg/domain/course"
	"github.com/tarpaulin/tarpaulin/pkg/pagination"
)

const PageSize = 10

type Links struct {
	NextPage  string `json:"nextPage,omitempty"`
	LastPage  string `json:"lastPage,omitempty"`
	PrevPage  string `json:"prevPage,omitempty"`
	FirstPage string `json:"firstPage,omitempty"`
}

type Page struct {
	Courses    []domainCourse.Course `json:"courses"`
	Page       int                   `json:"page"`
	TotalPages int                   `json:"totalPages"`
	PageSize   int                   `json:"pageSize"`
	Count      int                   `json:"count"`
	Links      Links                 `json:"links"`
}

type Pager interface {
	Page(ctx context.Context, requested int) (*Page, error)
}

type pager struct {
	repo domainCourse.Repository
}

func NewPager(repo domainCourse.Repository) Pager {
	return &pager{repo: repo}
}

func (p *pager) Page(ctx context.Context, requested int) (*Page, error) {
	count, err := p.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count courses: %w", err)
	}
	window := pagination.NewWindow(requested, int(count), PageSize)

	courses, err := p.repo.List(ctx, window.Start, PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	if courses == nil {
		courses = []domainCourse.Course{}
	}

	var links Links
	if window.Page < window.TotalPages {
		links.NextPage = fmt.Sprintf("/courses?page=%d", window.Page+1)
		links.LastPage = fmt.Sprintf("/courses?page=%d", window.TotalPages)
	}
	if window.Page > 1 {
		links.PrevPage = fmt.Sprintf("/courses?page=%d", window.Page-1)
		links.FirstPage = "/courses?page=1"
	}

	return &Page{
		Courses:    courses,
		Page:       window.Page,
		TotalPages: window.TotalPages,
		PageSize:   PageSize,
		Count:      int(count),
		Links:      links,
	}, nil
}
