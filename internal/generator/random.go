package generator

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// stream bundles the distribution samplers for a single producer,
// all drawing from one seeded source.
type stream struct {
	rng *rand.Rand
	src rand.Source
}

func newStream(seed uint64) *stream {
	src := rand.NewSource(seed)
	return &stream{
		rng: rand.New(src),
		src: src,
	}
}

// logNormal samples from LogNormal(mu, sigma).
func (s *stream) logNormal(mu, sigma float64) float64 {
	return distuv.LogNormal{Mu: mu, Sigma: sigma, Src: s.src}.Rand()
}

// uniform samples from U(min, max).
func (s *stream) uniform(min, max float64) float64 {
	return distuv.Uniform{Min: min, Max: max, Src: s.src}.Rand()
}

// poisson samples from Poisson(lambda) as an int64 count.
func (s *stream) poisson(lambda float64) int64 {
	return int64(distuv.Poisson{Lambda: lambda, Src: s.src}.Rand())
}

// exponential samples from Exponential with the given mean.
func (s *stream) exponential(mean float64) float64 {
	return distuv.Exponential{Rate: 1 / mean, Src: s.src}.Rand()
}

// intn samples an int in [min, max).
func (s *stream) intn(min, max int) int {
	return min + s.rng.Intn(max-min)
}

// choice picks one option uniformly.
func (s *stream) choice(options []string) string {
	return options[s.rng.Intn(len(options))]
}

// weightedChoice picks one option by cumulative weight. Weights must
// sum to 1 and match options in length.
func (s *stream) weightedChoice(options []string, weights []float64) string {
	r := s.rng.Float64()
	var cum float64
	for i, w := range weights {
		cum += w
		if r < cum {
			return options[i]
		}
	}
	return options[len(options)-1]
}
