package weather

import (
	"strings"
	"testing"
)

func TestWindChillUnchangedAtOrAboveTen(t *testing.T) {
	if got := WindChill(10, 8); got != 10 {
		t.Errorf("expected 10°C unchanged, got %v", got)
	}
	if got := WindChill(15.5, 12); got != 15.5 {
		t.Errorf("expected 15.5°C unchanged, got %v", got)
	}
}

func TestWindChillUnchangedWithoutWind(t *testing.T) {
	if got := WindChill(2, 0); got != 2 {
		t.Errorf("expected calm air to leave temperature unchanged, got %v", got)
	}
}

func TestWindChillBelowTenWithWind(t *testing.T) {
	got := WindChill(0, 5)
	if got >= 0 {
		t.Errorf("expected wind chill below 0°C at 0°C/5 m/s, got %v", got)
	}
	// Standard formula gives roughly -3.4°C here.
	if got < -5 || got > -2 {
		t.Errorf("wind chill %v outside plausible range for 0°C/5 m/s", got)
	}
}

func TestSuggestTodayMentionsWindChill(t *testing.T) {
	s := SuggestToday(Reading{Temperature: 2, WindSpeed: 8})
	if !strings.Contains(s, "feels like") {
		t.Errorf("expected felt-temperature note in %q", s)
	}
	if !strings.Contains(s, "The actual temperature is 2.0°C.") {
		t.Errorf("expected actual temperature in %q", s)
	}
}

func TestSuggestTomorrowSkipsWindChill(t *testing.T) {
	s := SuggestTomorrow(Reading{Temperature: 2, WindSpeed: 8})
	if strings.Contains(s, "feels like") {
		t.Errorf("forecast suggestion should not apply wind chill: %q", s)
	}
	if !strings.Contains(s, "Tomorrow's temperature will be 2.0°C.") {
		t.Errorf("expected forecast temperature in %q", s)
	}
}

func TestSuggestionsForPrecipitation(t *testing.T) {
	s := SuggestToday(Reading{Temperature: 18, Precipitation: 7.2})
	if !strings.Contains(s, "umbrella") {
		t.Errorf("expected umbrella advice in %q", s)
	}
	if !strings.Contains(s, "waterproof shoes") {
		t.Errorf("expected heavy-rain footwear advice in %q", s)
	}
}

func TestSuggestionsFromSymbolCode(t *testing.T) {
	s := SuggestToday(Reading{Temperature: 18, SymbolCode: "lightrainshowers_day"})
	if !strings.Contains(s, "umbrella") {
		t.Errorf("expected symbol-based precipitation hint in %q", s)
	}
}

func TestSuggestionsForWindAndUV(t *testing.T) {
	s := SuggestToday(Reading{Temperature: 22, WindSpeed: 9, UVIndex: 6})
	if !strings.Contains(s, "windproof") {
		t.Errorf("expected wind advice in %q", s)
	}
	if !strings.Contains(s, "sunscreen") {
		t.Errorf("expected UV advice in %q", s)
	}
}

func TestClothingBands(t *testing.T) {
	cold := clothingForTemperature(-5)
	if !strings.Contains(cold, "winter coat") {
		t.Errorf("expected winter advice below zero, got %q", cold)
	}
	hot := clothingForTemperature(28)
	if !strings.Contains(hot, "shorts") {
		t.Errorf("expected summer advice at 28°C, got %q", hot)
	}
}
