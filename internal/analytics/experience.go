package analytics

import (
	"shoppulse/internal/dataset"
)

// deliveryBucketDef defines one display range of delivery times in days
type deliveryBucketDef struct {
	label string
	min   int
	max   int // inclusive; -1 means unbounded
}

var deliveryBucketDefs = []deliveryBucketDef{
	{"1-3 days", 0, 3},
	{"4-7 days", 4, 7},
	{"8-14 days", 8, 14},
	{"15-30 days", 15, 30},
	{"30+ days", 31, -1},
}

// Experience computes customer satisfaction and delivery performance.
// Averages skip rows where the underlying value is null; the correlation
// uses only rows where both review score and delivery days are present.
func Experience(set dataset.MasterSet) ExperienceMetrics {
	rows := qualifying(set)

	var scores, deliveryDays []float64
	var pairedScores, pairedDays []float64
	distribution := make(map[int]int)

	type bucketAgg struct {
		count    int
		scoreSum float64
		scored   int
	}
	buckets := make([]bucketAgg, len(deliveryBucketDefs))

	for _, rec := range rows {
		if rec.ReviewScore != nil {
			scores = append(scores, *rec.ReviewScore)
			distribution[int(*rec.ReviewScore)]++
		}
		if rec.DeliveryDays != nil {
			days := *rec.DeliveryDays
			deliveryDays = append(deliveryDays, float64(days))

			for i, def := range deliveryBucketDefs {
				if days >= def.min && (def.max < 0 || days <= def.max) {
					buckets[i].count++
					if rec.ReviewScore != nil {
						buckets[i].scoreSum += *rec.ReviewScore
						buckets[i].scored++
					}
					break
				}
			}
		}
		if rec.ReviewScore != nil && rec.DeliveryDays != nil {
			pairedScores = append(pairedScores, *rec.ReviewScore)
			pairedDays = append(pairedDays, float64(*rec.DeliveryDays))
		}
	}

	metrics := ExperienceMetrics{
		AvgReviewScore:     mean(scores),
		ReviewCount:        len(scores),
		ReviewDistribution: distribution,
		AvgDeliveryDays:    mean(deliveryDays),
		MedianDeliveryDays: median(deliveryDays),
		ScoreDeliveryCorr:  pearson(pairedScores, pairedDays),
	}

	if len(rows) > 0 {
		metrics.ReviewRate = Defined(float64(len(scores)) / float64(len(rows)))
	}

	for i, def := range deliveryBucketDefs {
		bucket := DeliveryBucket{Label: def.label, Count: buckets[i].count}
		if buckets[i].scored > 0 {
			bucket.AvgReviewScore = Defined(buckets[i].scoreSum / float64(buckets[i].scored))
		}
		metrics.DeliveryBuckets = append(metrics.DeliveryBuckets, bucket)
	}

	return metrics
}
