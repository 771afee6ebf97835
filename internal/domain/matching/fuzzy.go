// Package matching concilia nombres de fabricante escritos a mano contra las empresas registradas.
// Es una función pura: (nombre, candidatos, umbral) -> candidatos ordenados por similitud.
package matching

import (
	"math"
	"sort"
	"strings"
)

const (
	// DefaultThreshold puntaje mínimo (exclusivo) para sugerir un candidato.
	DefaultThreshold = 65
	// MaxSuggestions cantidad de sugerencias que muestra un operador.
	MaxSuggestions = 10
)

// Match candidato sugerido con su puntaje (0-100, dos decimales).
type Match struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Ratio similitud 0-100 entre a y b: 100 * (1 - indel/(len(a)+len(b))).
// indel cuenta solo inserciones y borrados; una sustitución vale dos.
func Ratio(a, b string) float64 {
	return ratio([]rune(a), []rune(b))
}

func ratio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 100
	}
	return 100 * float64(total-indel(a, b)) / float64(total)
}

// indel = len(a) + len(b) - 2*LCS(a, b).
func indel(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				cur[j] = prev[j-1] + 1
			case prev[j] >= cur[j-1]:
				cur[j] = prev[j]
			default:
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return len(a) + len(b) - 2*prev[len(b)]
}

// PartialRatio mejor Ratio del texto corto contra las ventanas del largo.
// Además de las ventanas de igual largo se prueban los prefijos y sufijos más cortos,
// y solo se evalúan ventanas cuyo borde es una letra presente en el texto corto.
func PartialRatio(a, b string) float64 {
	short, long := []rune(a), []rune(b)
	if len(short) == 0 && len(long) == 0 {
		return 100
	}
	if len(short) == 0 || len(long) == 0 {
		return 0
	}
	if len(short) > len(long) {
		short, long = long, short
	}
	best := bestWindow(short, long)
	if best != 100 && len(short) == len(long) {
		if r := bestWindow(long, short); r > best {
			best = r
		}
	}
	return best
}

func bestWindow(needle, hay []rune) float64 {
	chars := make(map[rune]struct{}, len(needle))
	for _, r := range needle {
		chars[r] = struct{}{}
	}
	has := func(r rune) bool {
		_, ok := chars[r]
		return ok
	}
	best := 0.0
	try := func(window []rune) bool {
		if r := ratio(needle, window); r > best {
			best = r
		}
		return best == 100
	}
	n, m := len(needle), len(hay)
	for i := 1; i < n; i++ {
		if has(hay[i-1]) && try(hay[:i]) {
			return best
		}
	}
	for i := 0; i < m-n; i++ {
		if has(hay[i+n-1]) && try(hay[i:i+n]) {
			return best
		}
	}
	for i := m - n; i < m; i++ {
		if has(hay[i]) && try(hay[i:]) {
			return best
		}
	}
	return best
}

// FindMatches devuelve los candidatos con puntaje mayor a threshold, del más al menos parecido.
// La comparación no distingue mayúsculas. Con empates se conserva el orden de candidates.
func FindMatches(name string, candidates []string, threshold int) []Match {
	text := strings.ToLower(strings.TrimSpace(name))
	if text == "" {
		return nil
	}
	var out []Match
	for _, c := range candidates {
		score := PartialRatio(strings.ToLower(c), text)
		if score > float64(threshold) {
			out = append(out, Match{Name: c, Score: math.Round(score*100) / 100})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// ExactMatch busca un candidato con el mismo nombre (sin distinguir mayúsculas ni espacios extremos).
func ExactMatch(name string, candidates []string) (string, bool) {
	text := strings.TrimSpace(name)
	for _, c := range candidates {
		if strings.EqualFold(strings.TrimSpace(c), text) {
			return c, true
		}
	}
	return "", false
}

// Top limita la lista a las primeras n sugerencias.
func Top(matches []Match, n int) []Match {
	if n >= 0 && len(matches) > n {
		return matches[:n]
	}
	return matches
}
