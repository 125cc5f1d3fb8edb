package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Leaderboard periods
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
	PeriodAll   = "all"
)

// Leaderboard metrics
const (
	MetricTotalPoints = "totalPoints"
	MetricTotalSales  = "totalSales"
)

// LeaderboardEntry is a derived view over the sale ledger. It is
// recomputed on every query and never persisted.
type LeaderboardEntry struct {
	Rank         int                `json:"rank"`
	SalesRepID   primitive.ObjectID `json:"salesRepId"`
	SalesRepName string             `json:"salesRepName"`
	TotalSales   int                `json:"totalSales"`
	TotalPoints  int                `json:"totalPoints"`
}

// LeaderboardResult echoes the resolved period back to the caller along
// with the ranked entries.
type LeaderboardResult struct {
	Period    string             `json:"period"`
	Metric    string             `json:"metric"`
	StartDate time.Time          `json:"startDate"`
	Entries   []LeaderboardEntry `json:"entries"`
}
