package blog

// ShareCounts is the per-network share tally of a post
type ShareCounts struct {
	Facebook int `json:"facebook"`
	Twitter  int `json:"twitter"`
	LinkedIn int `json:"linkedin"`
	Email    int `json:"email"`
}

// DeviceBreakdown counts views per device class
type DeviceBreakdown struct {
	Desktop int `json:"desktop"`
	Mobile  int `json:"mobile"`
	Tablet  int `json:"tablet"`
}

// PostAnalytics is the analytics snapshot kept on a post
type PostAnalytics struct {
	Views           int             `json:"views"`
	UniqueVisitors  int             `json:"uniqueVisitors"`
	AvgTimeOnPage   float64         `json:"avgTimeOnPage"` // seconds
	BounceRate      float64         `json:"bounceRate"`    // percent
	Shares          ShareCounts     `json:"shares"`
	DeviceBreakdown DeviceBreakdown `json:"deviceBreakdown"`
	GeoData         map[string]int  `json:"geoData"` // country code -> views
}

// Clone returns a deep copy of a
func (a *PostAnalytics) Clone() PostAnalytics {
	c := *a
	if a.GeoData != nil {
		c.GeoData = make(map[string]int, len(a.GeoData))
		for k, v := range a.GeoData {
			c.GeoData[k] = v
		}
	}
	return c
}

// NewPostAnalytics returns a zero-initialized snapshot
func NewPostAnalytics() *PostAnalytics {
	return &PostAnalytics{GeoData: map[string]int{}}
}

// ShareCountsUpdate carries a partial share tally; nil fields are left unchanged
type ShareCountsUpdate struct {
	Facebook *int `json:"facebook"`
	Twitter  *int `json:"twitter"`
	LinkedIn *int `json:"linkedin"`
	Email    *int `json:"email"`
}

// DeviceBreakdownUpdate carries a partial device breakdown
type DeviceBreakdownUpdate struct {
	Desktop *int `json:"desktop"`
	Mobile  *int `json:"mobile"`
	Tablet  *int `json:"tablet"`
}

// AnalyticsUpdate is a partial analytics snapshot merged over the stored one.
// GeoData entries overwrite the matching country buckets.
type AnalyticsUpdate struct {
	Views           *int                   `json:"views"`
	UniqueVisitors  *int                   `json:"uniqueVisitors"`
	AvgTimeOnPage   *float64               `json:"avgTimeOnPage"`
	BounceRate      *float64               `json:"bounceRate"`
	Shares          *ShareCountsUpdate     `json:"shares"`
	DeviceBreakdown *DeviceBreakdownUpdate `json:"deviceBreakdown"`
	GeoData         map[string]int         `json:"geoData"`
}
