package governance

import (
	"math"
	"sort"
	"time"
)

// trendDays is how many days the score trend covers.
const trendDays = 7

// Bucket is a labelled aggregate of history entries.
type Bucket struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// Analytics aggregates the analysis history for the admin dashboard.
type Analytics struct {
	TotalScans   int      `json:"totalScans"`
	AverageScore float64  `json:"averageScore"`
	CriticalRate float64  `json:"criticalRate"`
	TotalIssues  int      `json:"totalIssues"`
	ByStatus     []Bucket `json:"byStatus"`
	ByRegion     []Bucket `json:"byRegion"`
	ByAssetType  []Bucket `json:"byAssetType"`
	Trend        []Bucket `json:"trend"`
}

type accumulator struct {
	count int
	sum   float64
}

func (a *accumulator) add(score float64) {
	a.count++
	a.sum += score
}

func (a accumulator) bucket(label string) Bucket {
	return Bucket{Label: label, Count: a.count, Average: average(a.sum, a.count)}
}

// Aggregate computes the dashboard figures. The trend covers the trendDays
// days ending at now, oldest first, one bucket per day even without entries.
func Aggregate(items []HistoryItem, now time.Time) Analytics {
	out := Analytics{TotalScans: len(items)}

	var (
		sum      float64
		critical int
	)

	status := map[HistoryStatus]*accumulator{}
	region := map[string]*accumulator{}
	asset := map[AssetType]*accumulator{}
	days := map[string]*accumulator{}

	for _, item := range items {
		sum += item.Score
		out.TotalIssues += item.Issues

		if item.Status == StatusCritical {
			critical++
		}

		get(status, item.Status).add(item.Score)
		get(region, regionLabel(item.Region)).add(item.Score)
		get(asset, item.Type).add(item.Score)
		get(days, item.Date.In(now.Location()).Format(time.DateOnly)).add(item.Score)
	}

	out.AverageScore = average(sum, len(items))
	if len(items) > 0 {
		out.CriticalRate = round1(float64(critical) * 100 / float64(len(items)))
	}

	for _, s := range []HistoryStatus{StatusPass, StatusNeedsReview, StatusCritical} {
		a := accumulator{}
		if v, ok := status[s]; ok {
			a = *v
		}

		out.ByStatus = append(out.ByStatus, a.bucket(string(s)))
	}

	out.ByRegion = sorted(region, func(k string) string { return k })
	out.ByAssetType = sorted(asset, func(k AssetType) string { return string(k) })

	for i := trendDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format(time.DateOnly)

		a := accumulator{}
		if v, ok := days[day]; ok {
			a = *v
		}

		out.Trend = append(out.Trend, a.bucket(day))
	}

	return out
}

func get[K comparable](m map[K]*accumulator, k K) *accumulator {
	a, ok := m[k]
	if !ok {
		a = &accumulator{}
		m[k] = a
	}

	return a
}

// sorted orders buckets by count, then label.
func sorted[K comparable](m map[K]*accumulator, label func(K) string) []Bucket {
	out := make([]Bucket, 0, len(m))
	for k, a := range m {
		out = append(out, a.bucket(label(k)))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}

		return out[i].Label < out[j].Label
	})

	return out
}

func regionLabel(r string) string {
	if r == "" {
		return DefaultRegion
	}

	return r
}

func average(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}

	return round1(sum / float64(n))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
