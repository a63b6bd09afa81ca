package review

import "testing"

func TestAverageRating(t *testing.T) {
	cases := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"empty", nil, 0},
		{"single", []int{4}, 4},
		{"exact mean", []int{5, 4}, 4.5},
		{"non terminating stays exact", []int{5, 4, 4}, 13.0 / 3.0},
		{"all ones", []int{1, 1, 1, 1}, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			reviews := make([]Review, 0, len(c.ratings))
			for _, r := range c.ratings {
				reviews = append(reviews, Review{Rating: r})
			}
			if got := AverageRating(reviews); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}
