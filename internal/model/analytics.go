package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MetricType tags an analytics event with the metric it contributes to.
type MetricType string

const (
	MetricUserSignup  MetricType = "user_signup"
	MetricUserLogin   MetricType = "user_login"
	MetricSales       MetricType = "sales"
	MetricPageView    MetricType = "page_view"
	MetricActiveUsers MetricType = "active_users"
)

func (m MetricType) Valid() bool {
	switch m {
	case MetricUserSignup, MetricUserLogin, MetricSales, MetricPageView, MetricActiveUsers:
		return true
	}
	return false
}

// AnalyticsEvent is one append-only metric record. Events are never
// mutated or deleted by the application.
type AnalyticsEvent struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	MetricType MetricType         `bson:"metricType" json:"metricType"`
	Value      float64            `bson:"value" json:"value"`
	Metadata   map[string]any     `bson:"metadata,omitempty" json:"metadata,omitempty"`
	Date       time.Time          `bson:"date" json:"date"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// TrendPoint is one day bucket in a count-based trend series.
// Day is a UTC calendar day key in YYYY-MM-DD form.
type TrendPoint struct {
	Day   string `bson:"_id" json:"day"`
	Count int64  `bson:"count" json:"count"`
}

// SalesTrendPoint is one day bucket in a value-summed trend series.
type SalesTrendPoint struct {
	Day        string  `bson:"_id" json:"day"`
	TotalSales float64 `bson:"totalSales" json:"totalSales"`
}

// Overview is the point-in-time dashboard snapshot.
type Overview struct {
	TotalUsers   int64     `json:"totalUsers"`
	ActiveUsers  int64     `json:"activeUsers"`
	TodaySignups int64     `json:"todaySignups"`
	TodayLogins  int64     `json:"todayLogins"`
	TotalSales   float64   `json:"totalSales"`
	Timestamp    time.Time `json:"timestamp"`
}
