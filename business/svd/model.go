// Package svd wraps an externally trained latent-factor rating model.
// The model is trained offline and exported as a JSON artifact; this
// package only looks up biases and factor vectors, it never learns.
package svd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-json"
)

// Model holds the trained factors, read-only after Load.
type Model struct {
	GlobalMean  float64
	MinRating   float64
	MaxRating   float64
	UserBias    map[int]float64
	ItemBias    map[int]float64
	UserFactors map[int][]float64
	ItemFactors map[int][]float64
}

type modelFile struct {
	RatingScale struct {
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	} `json:"rating_scale"`
	GlobalMean float64                `json:"global_mean"`
	Users      map[string]factorEntry `json:"users"`
	Items      map[string]factorEntry `json:"items"`
}

type factorEntry struct {
	Bias    float64   `json:"bias"`
	Factors []float64 `json:"factors"`
}

// Load reads a model export from disk.
func Load(path string) (*Model, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a model export.
func Parse(raw []byte) (*Model, error) {
	var file modelFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode model file: %w", err)
	}
	if file.RatingScale.Max <= file.RatingScale.Min {
		return nil, fmt.Errorf("invalid rating scale [%v, %v]", file.RatingScale.Min, file.RatingScale.Max)
	}

	m := &Model{
		GlobalMean:  file.GlobalMean,
		MinRating:   file.RatingScale.Min,
		MaxRating:   file.RatingScale.Max,
		UserBias:    make(map[int]float64, len(file.Users)),
		ItemBias:    make(map[int]float64, len(file.Items)),
		UserFactors: make(map[int][]float64, len(file.Users)),
		ItemFactors: make(map[int][]float64, len(file.Items)),
	}

	for key, entry := range file.Users {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("invalid user id %q in model file", key)
		}
		m.UserBias[id] = entry.Bias
		m.UserFactors[id] = entry.Factors
	}
	for key, entry := range file.Items {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("invalid item id %q in model file", key)
		}
		m.ItemBias[id] = entry.Bias
		m.ItemFactors[id] = entry.Factors
	}

	return m, nil
}

// KnownUser reports whether the user was in the training vocabulary.
func (m *Model) KnownUser(userID int) bool {
	_, ok := m.UserFactors[userID]
	return ok
}

// KnownItem reports whether the movie was in the training vocabulary.
func (m *Model) KnownItem(movieID int) bool {
	_, ok := m.ItemFactors[movieID]
	return ok
}

// estimate computes mean + user bias + item bias + p·q, clamped to the
// model's rating scale. Both ids must be known.
func (m *Model) estimate(userID, movieID int) float64 {
	est := m.GlobalMean + m.UserBias[userID] + m.ItemBias[movieID]

	p := m.UserFactors[userID]
	q := m.ItemFactors[movieID]
	n := len(p)
	if len(q) < n {
		n = len(q)
	}
	for i := 0; i < n; i++ {
		est += p[i] * q[i]
	}

	if est < m.MinRating {
		return m.MinRating
	}
	if est > m.MaxRating {
		return m.MaxRating
	}
	return est
}
