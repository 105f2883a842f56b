package wsd

import (
	"math"
	"slices"
)

// Sample is one labelled training example.
type Sample struct {
	Features FeatureSet
	Label    string
}

// NaiveBayes is a multi-label naive Bayes classifier over presence features.
// Probabilities use expected likelihood estimation (add 0.5). Features never
// seen in training are ignored at classification time, and a feature absent
// from the input does not contribute to the score.
type NaiveBayes struct {
	// Labels counts training samples per label.
	Labels map[string]int `json:"labels"`
	// Features counts, per label, the samples that contained each feature.
	Features map[string]map[string]int `json:"features"`
}

// TrainNaiveBayes fits a classifier on samples. It returns nil when there
// are no samples.
func TrainNaiveBayes(samples []Sample) *NaiveBayes {
	if len(samples) == 0 {
		return nil
	}
	nb := &NaiveBayes{
		Labels:   make(map[string]int),
		Features: make(map[string]map[string]int),
	}
	for _, s := range samples {
		nb.Labels[s.Label]++
		counts := nb.Features[s.Label]
		if counts == nil {
			counts = make(map[string]int)
			nb.Features[s.Label] = counts
		}
		for f := range s.Features {
			counts[f]++
		}
	}
	return nb
}

// Classify returns the most probable label. Ties go to the label that sorts
// first.
func (nb *NaiveBayes) Classify(fs FeatureSet) (string, bool) {
	if nb == nil || len(nb.Labels) == 0 {
		return "", false
	}

	labels := make([]string, 0, len(nb.Labels))
	total := 0
	for label, n := range nb.Labels {
		labels = append(labels, label)
		total += n
	}
	slices.Sort(labels)

	known := make([]string, 0, len(fs))
	for f := range fs {
		if nb.seen(f) {
			known = append(known, f)
		}
	}

	best, bestScore := "", math.Inf(-1)
	for _, label := range labels {
		n := float64(nb.Labels[label])
		score := math.Log((n + 0.5) / (float64(total) + 0.5*float64(len(labels))))
		for _, f := range known {
			c := float64(nb.Features[label][f])
			// two bins per feature: present and absent
			score += math.Log((c + 0.5) / (n + 1))
		}
		if score > bestScore {
			best, bestScore = label, score
		}
	}
	return best, true
}

func (nb *NaiveBayes) seen(feature string) bool {
	for _, counts := range nb.Features {
		if counts[feature] > 0 {
			return true
		}
	}
	return false
}
