package handling

import (
	"net/http"
	"ouardatie_server/structs"
	"strconv"
	"time"
)

// ParseProductListOptions parses HTTP query parameters into ProductListOptions
func ParseProductListOptions(r *http.Request) (*structs.ProductListOptions, error) {
	query := r.URL.Query()

	// Early return if no query params
	if len(query) == 0 {
		return &structs.ProductListOptions{}, nil
	}

	opts := &structs.ProductListOptions{}
	var err error
	var valInt int
	var valBool bool

	// Parse pagination parameters
	if page := query.Get("page"); page != "" {
		if valInt, err = strconv.Atoi(page); err != nil {
			return nil, err
		}
		opts.Page = valInt
	}

	if pageSize := query.Get("page_size"); pageSize != "" {
		if valInt, err = strconv.Atoi(pageSize); err != nil {
			return nil, err
		}
		opts.PageSize = valInt
	}

	if searchTerm := query.Get("search"); searchTerm != "" {
		opts.SearchTerm = searchTerm
	}

	// Catalog filters; "all" means no filter and is resolved by the service
	if category := query.Get("category"); category != "" {
		opts.CategoryID = category
	}

	if size := query.Get("size"); size != "" {
		opts.Size = size
	}

	if color := query.Get("color"); color != "" {
		opts.Color = color
	}

	if bracket := query.Get("price"); bracket != "" {
		opts.PriceBracket = bracket
	}

	if sortBy := query.Get("sort"); sortBy != "" {
		opts.SortBy = sortBy
	}

	if featured := query.Get("featured"); featured != "" {
		if valBool, err = strconv.ParseBool(featured); err != nil {
			return nil, err
		}
		opts.FeaturedOnly = valBool
	}

	// Parse date filters
	if createdAfter := query.Get("created_after"); createdAfter != "" {
		t, err := time.Parse(time.RFC3339, createdAfter)
		if err != nil {
			return nil, err
		}
		opts.CreatedAfter = &t
	}

	if createdBefore := query.Get("created_before"); createdBefore != "" {
		t, err := time.Parse(time.RFC3339, createdBefore)
		if err != nil {
			return nil, err
		}
		opts.CreatedBefore = &t
	}

	return opts, nil
}
