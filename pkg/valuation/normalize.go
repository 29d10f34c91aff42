package valuation

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	domain "github.com/donaldgifford/dvf-estimator/pkg/types"
)

var municipalitySeparators = strings.NewReplacer("-", " ", "'", " ", "’", " ")

// NormalizeMunicipality canonicalizes a French commune name so that spellings
// from different sources compare equal: "Saint-Étienne", "ST ETIENNE" and
// "st-etienne" all become "saint etienne". The result is a fixed point.
func NormalizeMunicipality(s string) string {
	s = stripDiacritics(s)
	s = municipalitySeparators.Replace(s)
	s = strings.ToLower(s)

	words := strings.Fields(s)
	for i, w := range words {
		switch w {
		case "st":
			words[i] = "saint"
		case "ste":
			words[i] = "sainte"
		}
	}

	return strings.Join(words, " ")
}

// NormalizeKind canonicalizes a property kind ("Maison " -> "maison").
func NormalizeKind(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// stripDiacritics decomposes s and drops combining marks. The transformer
// chain is stateful, so one is built per call.
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// foldLabel lower-cases a form label and strips accents and separators so
// "Très clair", "tres_clair" and "TRES CLAIR" share one key.
func foldLabel(s string) string {
	s = stripDiacritics(s)
	s = strings.ReplaceAll(s, "_", " ")
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

var conditionLabels = map[string]domain.Condition{
	"comme neuf":         domain.ConditionLikeNew,
	"like new":           domain.ConditionLikeNew,
	"bon etat":           domain.ConditionGood,
	"good":               domain.ConditionGood,
	"quelques travaux":   domain.ConditionSomeWork,
	"some work":          domain.ConditionSomeWork,
	"travaux importants": domain.ConditionMajorWork,
	"major work":         domain.ConditionMajorWork,
}

var brightnessLabels = map[string]domain.Brightness{
	"sombre":      domain.BrightnessDark,
	"dark":        domain.BrightnessDark,
	"peu clair":   domain.BrightnessDim,
	"dim":         domain.BrightnessDim,
	"standard":    domain.BrightnessStandard,
	"clair":       domain.BrightnessBright,
	"bright":      domain.BrightnessBright,
	"tres clair":  domain.BrightnessVeryBright,
	"very bright": domain.BrightnessVeryBright,
}

var noiseLabels = map[string]domain.Noise{
	"tres bruyant": domain.NoiseVeryNoisy,
	"very noisy":   domain.NoiseVeryNoisy,
	"bruyant":      domain.NoiseNoisy,
	"noisy":        domain.NoiseNoisy,
	"standard":     domain.NoiseStandard,
	"calme":        domain.NoiseQuiet,
	"quiet":        domain.NoiseQuiet,
	"tres calme":   domain.NoiseVeryQuiet,
	"very quiet":   domain.NoiseVeryQuiet,
}

// ParseCondition maps a form label or slug to a Condition.
// Unknown labels return ConditionUnknown and false.
func ParseCondition(s string) (domain.Condition, bool) {
	c, ok := conditionLabels[foldLabel(s)]
	return c, ok
}

// ParseBrightness maps a form label or slug to a Brightness.
func ParseBrightness(s string) (domain.Brightness, bool) {
	b, ok := brightnessLabels[foldLabel(s)]
	return b, ok
}

// ParseNoise maps a form label or slug to a Noise tier.
func ParseNoise(s string) (domain.Noise, bool) {
	n, ok := noiseLabels[foldLabel(s)]
	return n, ok
}
