package handler

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pilotdata/project/internal/modules/repo"
	"github.com/pilotdata/project/internal/pkg/apperr"
	"github.com/samber/lo"
)

type PageParams struct {
	Page     int `form:"page,default=0" json:"page" binding:"min=0" example:"0"`
	PageSize int `form:"page_size,default=20" json:"page_size" binding:"min=1" example:"20"`
}

func (p PageParams) pagination() repo.Pagination {
	return repo.Pagination{Page: p.Page, PageSize: p.PageSize}
}

type SortParams struct {
	SortBy    *string `form:"sort_by" json:"sort_by"`
	SortOrder string  `form:"sort_order,default=asc" json:"sort_order" example:"asc"`
}

// sorting accepts only the listed fields.
func (p SortParams) sorting(fields []string) (repo.Sorting, error) {
	order, err := repo.ParseSortingOrder(p.SortOrder)
	if err != nil {
		return repo.Sorting{}, err
	}
	if p.SortBy != nil && !lo.Contains(fields, *p.SortBy) {
		return repo.Sorting{}, apperr.Validation(
			fmt.Sprintf("value is not a valid enumeration member; permitted: %s", strings.Join(fields, ", ")),
			"query", "sort_by")
	}
	return repo.Sorting{Field: p.SortBy, Order: order}, nil
}

// splitList parses a comma separated list. An empty value means no list.
func splitList(raw, param string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	values := lo.Map(strings.Split(raw, ","), func(v string, _ int) string { return strings.TrimSpace(v) })
	if lo.Contains(values, "") {
		return nil, apperr.Validation("invalid value in the comma-separated list", "query", param)
	}
	return values, nil
}

func splitIDs(raw, param string) ([]uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := uuid.Parse(strings.TrimSpace(part))
		if err != nil {
			return nil, apperr.Validation("value is not a valid uuid", "query", param)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// timeRange is set only when both ends are given.
func timeRange(start, end, param string) (*repo.TimeRange, error) {
	parse := func(raw, suffix string) (time.Time, error) {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, apperr.Validation("invalid datetime format", "query", param+suffix)
		}
		return t, nil
	}

	var tr repo.TimeRange
	var err error
	if start != "" {
		if tr.Start, err = parse(start, "_start"); err != nil {
			return nil, err
		}
	}
	if end != "" {
		if tr.End, err = parse(end, "_end"); err != nil {
			return nil, err
		}
	}
	if start == "" || end == "" {
		return nil, nil
	}
	return &tr, nil
}
