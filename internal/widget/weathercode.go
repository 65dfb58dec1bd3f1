package widget

import "fmt"

// IconCategory is the visual family a weather condition is drawn with.
type IconCategory string

const (
	IconSun   IconCategory = "sun"
	IconCloud IconCategory = "cloud"
	IconRain  IconCategory = "rain"
	IconSnow  IconCategory = "snow"
)

// Classification is the human-readable form of a WMO weather code.
type Classification struct {
	Condition string       `json:"condition"`
	Icon      IconCategory `json:"icon"`
}

func (c Classification) String() string {
	return fmt.Sprintf("%s (%s)", c.Condition, c.Icon)
}

type codeRule struct {
	codes []int
	class Classification
}

// Evaluated top to bottom, first match wins.
var codeRules = []codeRule{
	{[]int{0}, Classification{"Clear Sky", IconSun}},
	{[]int{1, 2}, Classification{"Mostly Clear", IconSun}},
	{[]int{3}, Classification{"Overcast", IconCloud}},
	{[]int{45, 48}, Classification{"Foggy", IconCloud}},
	{[]int{51, 53, 55}, Classification{"Light Drizzle", IconRain}},
	{[]int{61, 63, 65}, Classification{"Rainy", IconRain}},
	{[]int{71, 73, 75}, Classification{"Snowy", IconSnow}},
	{[]int{77}, Classification{"Snow Grains", IconSnow}},
	{[]int{80, 81, 82}, Classification{"Rain Showers", IconRain}},
	{[]int{85, 86}, Classification{"Snow Showers", IconSnow}},
	{[]int{95, 96, 99}, Classification{"Thunderstorm", IconRain}},
}

var defaultClassification = Classification{"Cloudy", IconCloud}

// Classify maps a WMO weather code to a condition and icon category.
// Every integer has an answer; unknown codes fall back to "Cloudy".
func Classify(code int) Classification {
	for _, rule := range codeRules {
		for _, c := range rule.codes {
			if c == code {
				return rule.class
			}
		}
	}
	return defaultClassification
}

// KnownCodes returns every code with an explicit rule, in table order.
func KnownCodes() []int {
	var out []int
	for _, rule := range codeRules {
		out = append(out, rule.codes...)
	}
	return out
}
