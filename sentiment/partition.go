package sentiment

import (
	"sort"

	"newslens/config"
	"newslens/types"
)

// Partition buckets analyzed articles by sentiment score. Positive entries
// (score > 0.3) are ordered most positive first, negative entries
// (score < -0.3) most negative first, the rest are neutral in input order.
// Each bucket is capped.
func Partition(analyzed []*types.AnalyzedArticle) *types.AnalysisData {
	data := &types.AnalysisData{
		Positive:         []*types.AnalyzedArticle{},
		Negative:         []*types.AnalyzedArticle{},
		Neutral:          []*types.AnalyzedArticle{},
		TotalArticles:    len(analyzed),
		AnalyzedArticles: len(analyzed),
	}

	for _, a := range analyzed {
		if a.Degraded {
			data.DegradedArticles++
		}
		switch {
		case a.SentimentScore > config.PositiveThreshold:
			data.Positive = append(data.Positive, a)
		case a.SentimentScore < config.NegativeThreshold:
			data.Negative = append(data.Negative, a)
		default:
			data.Neutral = append(data.Neutral, a)
		}
	}

	sort.SliceStable(data.Positive, func(i, j int) bool {
		return data.Positive[i].SentimentScore > data.Positive[j].SentimentScore
	})
	sort.SliceStable(data.Negative, func(i, j int) bool {
		return data.Negative[i].SentimentScore < data.Negative[j].SentimentScore
	})

	data.Positive = capBucket(data.Positive)
	data.Negative = capBucket(data.Negative)
	data.Neutral = capBucket(data.Neutral)
	return data
}

func capBucket(bucket []*types.AnalyzedArticle) []*types.AnalyzedArticle {
	if len(bucket) > config.MaxPerBucket {
		return bucket[:config.MaxPerBucket]
	}
	return bucket
}
