package weather

import (
	"fmt"
	"math"
	"strings"
)

// WindChill returns the felt temperature for temperatures below 10°C with
// measurable wind, using the standard North American wind chill formula;
// otherwise the input temperature is returned unchanged.
func WindChill(temperature, windSpeed float64) float64 {
	if temperature < 10 && windSpeed > 0 {
		chill := 13.12 + 0.6215*temperature - 11.37*math.Pow(windSpeed, 0.16) + 0.3965*temperature*math.Pow(windSpeed, 0.16)
		return math.Round(chill*100) / 100
	}
	return temperature
}

func clothingForTemperature(t float64) string {
	switch {
	case t < 0:
		return "Wear a heavy winter coat, thermal layers, gloves, scarf, hat, and warm boots."
	case t < 5:
		return "Wear a thick jacket, scarf, gloves, and warm layers."
	case t < 10:
		return "A jacket with a sweater or hoodie, and consider gloves."
	case t < 15:
		return "Wear a light jacket or sweater, with long sleeves and pants."
	case t < 20:
		return "A light sweater or jacket should be fine, maybe a T-shirt underneath."
	case t < 25:
		return "Comfortable clothing like a T-shirt and jeans. A light sweater for evenings."
	default:
		return "Light clothing like shorts and a T-shirt. Consider sunscreen if it's sunny."
	}
}

func hasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func buildSuggestions(r Reading, adjustForWindChill bool) []string {
	var suggestions []string

	temp := r.Temperature
	if adjustForWindChill {
		adjusted := WindChill(r.Temperature, r.WindSpeed)
		if adjusted != r.Temperature {
			suggestions = append(suggestions, fmt.Sprintf("Due to wind, it feels like %.1f°C.", adjusted))
			temp = adjusted
		}
	}

	suggestions = append(suggestions, clothingForTemperature(temp))

	if r.Precipitation > 0 {
		suggestions = append(suggestions, fmt.Sprintf("Precipitation expected: %.1f mm. Bring an umbrella or wear a waterproof jacket.", r.Precipitation))
		if r.Precipitation > 5 {
			suggestions = append(suggestions, "Wear waterproof shoes or boots.")
		}
	} else if hasAny(r.SymbolCode, "rain", "sleet", "snow") {
		suggestions = append(suggestions, "The forecast symbol hints at precipitation. An umbrella won't hurt.")
	}

	if r.WindSpeed > 5 {
		suggestions = append(suggestions, fmt.Sprintf("Wind speed: %.1f m/s. Wear a windproof jacket if you're cycling or walking outside.", r.WindSpeed))
	}

	if r.UVIndex > 3 {
		suggestions = append(suggestions, fmt.Sprintf("UV index: %.1f. Wear sunglasses and apply sunscreen, especially during midday.", r.UVIndex))
	}

	return suggestions
}

// SuggestToday builds the clothing suggestion string for the current reading.
func SuggestToday(r Reading) string {
	parts := []string{fmt.Sprintf("The actual temperature is %.1f°C.", r.Temperature)}
	parts = append(parts, buildSuggestions(r, true)...)
	return "Clothing Suggestions: " + strings.Join(parts, " ")
}

// SuggestTomorrow builds the clothing suggestion string for a forecast reading.
func SuggestTomorrow(r Reading) string {
	parts := []string{fmt.Sprintf("Tomorrow's temperature will be %.1f°C.", r.Temperature)}
	parts = append(parts, buildSuggestions(r, false)...)
	return "Clothing Suggestions for Tomorrow: " + strings.Join(parts, " ")
}
