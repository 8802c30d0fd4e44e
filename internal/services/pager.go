package services

import (
	"context"
	"fmt"

	"ridereport/internal/domain"
	"ridereport/internal/domain/models"
	"ridereport/internal/provider"
	"ridereport/internal/utils"
)

// ActivitySource is the upstream summary-activity listing.
type ActivitySource interface {
	FetchActivitiesPage(ctx context.Context, cred domain.Credential, window domain.DateWindow, limit int, pageToken string) (provider.ActivitiesPage, error)
}

// ActivityPager walks the activity listing across a date window, page by
// page. Page requests are strictly sequential: each request depends on the
// previous page's continuation token.
type ActivityPager struct {
	Source    ActivitySource
	PageSize  int
	RequestID string
}

// CollectActivities accumulates the full, unduplicated activity set for the
// window. Absence of a continuation token is the sole stopping signal. On a
// failed page request the accumulated set so far is returned together with
// the error; there is no retry and no partial-page re-fetch.
func (p ActivityPager) CollectActivities(ctx context.Context, cred domain.Credential, window domain.DateWindow) ([]models.RawActivity, error) {
	limit := p.PageSize
	if limit <= 0 {
		limit = 50
	}

	var out []models.RawActivity
	seen := map[string]bool{}
	token := ""
	pages := 0

	for {
		page, err := p.Source.FetchActivitiesPage(ctx, cred, window, limit, token)
		if err != nil {
			utils.LogEvent(p.RequestID, "pager", "page_failed", fmt.Sprintf("page=%d err=%v", pages+1, err))
			return out, err
		}
		pages++

		for _, a := range page.Activities {
			if a.ID == "" || seen[a.ID] {
				continue
			}
			seen[a.ID] = true
			a.CursorContext = token
			out = append(out, a)
		}

		if page.NextToken == "" {
			break
		}
		token = page.NextToken
	}

	utils.LogEvent(p.RequestID, "pager", "collected", fmt.Sprintf("pages=%d activities=%d", pages, len(out)))
	return out, nil
}
