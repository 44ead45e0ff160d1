package blog

import (
	"context"
	"errors"
	"testing"

	"nalevel/internal/domain"
	models "nalevel/internal/domain/models/blog"
	blogSvc "nalevel/internal/domain/services/blog"
	"nalevel/internal/repository/kv"
)

func TestIncrementPostViews(t *testing.T) {
	ctx := context.Background()

	// A post persisted without analytics starts counting from zero
	repo := kv.NewBlogStateRepository(kv.NewMemoryStore(), testStoreKey)
	state := models.NewState()
	state.Posts = append(state.Posts, models.Post{ID: "legacy", ProjectID: "p", Title: "Legacy", Slug: "legacy"})
	if err := repo.Save(ctx, state); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	store := newTestStoreWithRepo(t, repo)

	fresh := mustAddPost(t, store, &blogSvc.CreatePostRequest{Title: "Fresh"})
	if _, err := store.UpdatePostAnalytics(ctx, fresh.ID, &models.AnalyticsUpdate{Views: intPtr(10)}); err != nil {
		t.Fatalf("UpdatePostAnalytics failed: %v", err)
	}

	tests := []struct {
		name   string
		postID string
		prior  int
		times  int
	}{
		{"missing analytics", "legacy", 0, 5},
		{"existing views", fresh.ID, 10, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var last *models.PostAnalytics
			for i := 0; i < tt.times; i++ {
				a, err := store.IncrementPostViews(ctx, tt.postID)
				if err != nil {
					t.Fatalf("IncrementPostViews failed: %v", err)
				}
				last = a
			}
			if last.Views != tt.prior+tt.times {
				t.Errorf("views = %d, want %d", last.Views, tt.prior+tt.times)
			}

			post, _ := store.GetPost(ctx, tt.postID)
			if post.Analytics.Views != tt.prior+tt.times {
				t.Errorf("stored views = %d, want %d", post.Analytics.Views, tt.prior+tt.times)
			}
		})
	}

	if _, err := store.IncrementPostViews(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestUpdatePostAnalytics_DeepMerge(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	post := mustAddPost(t, store, &blogSvc.CreatePostRequest{Title: "Measured"})

	bounce := 42.5
	_, err := store.UpdatePostAnalytics(ctx, post.ID, &models.AnalyticsUpdate{
		UniqueVisitors:  intPtr(7),
		BounceRate:      &bounce,
		Shares:          &models.ShareCountsUpdate{Twitter: intPtr(3)},
		DeviceBreakdown: &models.DeviceBreakdownUpdate{Mobile: intPtr(5)},
		GeoData:         map[string]int{"NG": 4},
	})
	if err != nil {
		t.Fatalf("UpdatePostAnalytics failed: %v", err)
	}

	merged, err := store.UpdatePostAnalytics(ctx, post.ID, &models.AnalyticsUpdate{
		Shares:  &models.ShareCountsUpdate{Facebook: intPtr(2)},
		GeoData: map[string]int{"GH": 1},
	})
	if err != nil {
		t.Fatalf("UpdatePostAnalytics failed: %v", err)
	}

	if merged.UniqueVisitors != 7 || merged.BounceRate != 42.5 {
		t.Errorf("top-level fields lost: %+v", merged)
	}
	if merged.Shares.Twitter != 3 || merged.Shares.Facebook != 2 || merged.Shares.Email != 0 {
		t.Errorf("shares = %+v, want twitter 3, facebook 2", merged.Shares)
	}
	if merged.DeviceBreakdown.Mobile != 5 || merged.DeviceBreakdown.Desktop != 0 {
		t.Errorf("device breakdown = %+v", merged.DeviceBreakdown)
	}
	if merged.GeoData["NG"] != 4 || merged.GeoData["GH"] != 1 {
		t.Errorf("geo data = %v", merged.GeoData)
	}
}

func TestUpdatePostAnalytics_Validation(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	post := mustAddPost(t, store, &blogSvc.CreatePostRequest{Title: "Checked"})

	overflow := 150.0
	tests := []struct {
		name      string
		update    *models.AnalyticsUpdate
		wantField string
	}{
		{"negative views", &models.AnalyticsUpdate{Views: intPtr(-1)}, "views"},
		{"bounce rate above 100", &models.AnalyticsUpdate{BounceRate: &overflow}, "bounceRate"},
		{"negative share", &models.AnalyticsUpdate{Shares: &models.ShareCountsUpdate{Email: intPtr(-2)}}, "shares.email"},
		{"negative device", &models.AnalyticsUpdate{DeviceBreakdown: &models.DeviceBreakdownUpdate{Tablet: intPtr(-1)}}, "deviceBreakdown.tablet"},
		{"negative geo bucket", &models.AnalyticsUpdate{GeoData: map[string]int{"US": -3}}, "geoData.US"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.UpdatePostAnalytics(ctx, post.ID, tt.update)
			fields := validationFields(t, err)
			if _, ok := fields[tt.wantField]; !ok {
				t.Errorf("fields = %v, want entry for %q", fields, tt.wantField)
			}
		})
	}

	// Rejected updates leave the snapshot untouched
	got, _ := store.GetPost(ctx, post.ID)
	if got.Analytics.Views != 0 || got.Analytics.BounceRate != 0 || len(got.Analytics.GeoData) != 0 {
		t.Errorf("analytics changed by rejected updates: %+v", got.Analytics)
	}

	if _, err := store.UpdatePostAnalytics(ctx, "missing", &models.AnalyticsUpdate{}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}
