package blog

import (
	"context"

	"nalevel/internal/domain"
	models "nalevel/internal/domain/models/blog"
)

// IncrementPostViews bumps views by one, starting from a zeroed snapshot
// when the post has none
func (s *contentStore) IncrementPostViews(ctx context.Context, postID string) (*models.PostAnalytics, error) {
	var snapshot models.PostAnalytics

	err := s.commit(ctx, func(state *models.State) error {
		post := state.FindPost(postID)
		if post == nil {
			return &domain.NotFoundError{Resource: "post", ID: postID}
		}
		if post.Analytics == nil {
			post.Analytics = models.NewPostAnalytics()
		}
		post.Analytics.Views++
		snapshot = post.Analytics.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("post view recorded",
		"post_id", postID,
		"views", snapshot.Views,
	)

	return &snapshot, nil
}

// UpdatePostAnalytics deep-merges update over the stored snapshot and
// validates the merged result before committing it
func (s *contentStore) UpdatePostAnalytics(ctx context.Context, postID string, update *models.AnalyticsUpdate) (*models.PostAnalytics, error) {
	var snapshot models.PostAnalytics

	err := s.commit(ctx, func(state *models.State) error {
		post := state.FindPost(postID)
		if post == nil {
			return &domain.NotFoundError{Resource: "post", ID: postID}
		}

		merged := models.NewPostAnalytics()
		if post.Analytics != nil {
			*merged = post.Analytics.Clone()
			if merged.GeoData == nil {
				merged.GeoData = map[string]int{}
			}
		}
		mergeAnalytics(merged, update)

		if err := validateAnalytics(merged); err != nil {
			return err
		}

		post.Analytics = merged
		snapshot = merged.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("post analytics updated",
		"post_id", postID,
		"views", snapshot.Views,
	)

	return &snapshot, nil
}

func mergeAnalytics(a *models.PostAnalytics, u *models.AnalyticsUpdate) {
	if u == nil {
		return
	}

	setInt(&a.Views, u.Views)
	setInt(&a.UniqueVisitors, u.UniqueVisitors)
	if u.AvgTimeOnPage != nil {
		a.AvgTimeOnPage = *u.AvgTimeOnPage
	}
	if u.BounceRate != nil {
		a.BounceRate = *u.BounceRate
	}

	if u.Shares != nil {
		setInt(&a.Shares.Facebook, u.Shares.Facebook)
		setInt(&a.Shares.Twitter, u.Shares.Twitter)
		setInt(&a.Shares.LinkedIn, u.Shares.LinkedIn)
		setInt(&a.Shares.Email, u.Shares.Email)
	}

	if u.DeviceBreakdown != nil {
		setInt(&a.DeviceBreakdown.Desktop, u.DeviceBreakdown.Desktop)
		setInt(&a.DeviceBreakdown.Mobile, u.DeviceBreakdown.Mobile)
		setInt(&a.DeviceBreakdown.Tablet, u.DeviceBreakdown.Tablet)
	}

	for country, views := range u.GeoData {
		a.GeoData[country] = views
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
