package provider

import (
	"context"
	"strings"

	"ridereport/internal/domain"
	"ridereport/internal/domain/models"
)

// ActivitiesPage is one page of the summary-activity listing.
type ActivitiesPage struct {
	Activities []models.RawActivity
	NextToken  string
}

type activitiesEnvelope struct {
	Data struct {
		Activities struct {
			RideActivities []struct {
				UUID        string `json:"uuid"`
				Title       string `json:"title"`
				Subtitle    string `json:"subtitle"`
				Description string `json:"description"`
				ImageURL    struct {
					Light string `json:"light"`
					Dark  string `json:"dark"`
				} `json:"imageURL"`
				Buttons []struct {
					Text string `json:"text"`
					URL  string `json:"url"`
				} `json:"buttons"`
			} `json:"rideActivities"`
			NextPageToken string `json:"nextPageToken"`
		} `json:"activities"`
	} `json:"data"`
}

// FetchActivitiesPage requests one page of trip summaries inside the window.
// The continuation token is opaque; an empty token in the response is the
// sole "no more pages" signal.
func (c *Client) FetchActivitiesPage(ctx context.Context, cred domain.Credential, window domain.DateWindow, limit int, pageToken string) (ActivitiesPage, error) {
	variables := map[string]any{
		"startTimeMs": window.Start.UnixMilli(),
		"endTimeMs":   window.End.UnixMilli(),
		"limit":       limit,
	}
	if pageToken != "" {
		variables["nextPageToken"] = pageToken
	}

	var env activitiesEnvelope
	if err := c.postGraphQL(ctx, cred, "Activities", variables, &env); err != nil {
		return ActivitiesPage{}, err
	}

	page := ActivitiesPage{
		NextToken: strings.TrimSpace(env.Data.Activities.NextPageToken),
	}
	for _, a := range env.Data.Activities.RideActivities {
		act := models.RawActivity{
			ID:          a.UUID,
			Title:       a.Title,
			Subtitle:    a.Subtitle,
			Description: a.Description,
			ImageURL:    a.ImageURL.Light,
			MapImageURL: a.ImageURL.Dark,
		}
		for _, b := range a.Buttons {
			act.Buttons = append(act.Buttons, models.ActivityButton{Text: b.Text, URL: b.URL})
		}
		page.Activities = append(page.Activities, act)
	}
	return page, nil
}
