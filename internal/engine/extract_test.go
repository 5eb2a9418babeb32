package engine

import (
	"reflect"
	"testing"
)

func TestExtract_SkinTypeSynonyms(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"My skin is really oily", []string{"oily"}},
		{"it gets greasy and shiny by noon", []string{"oily"}},
		{"flaky and tight after washing", []string{"dry"}},
		{"I have a combo T-zone situation", []string{"combination"}},
		{"pretty balanced overall", []string{"normal"}},
		{"very reactive to new products", []string{"sensitive"}},
	}

	for _, tt := range tests {
		got := Extract(tt.text)[EntitySkinType]
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Extract(%q) skin_type = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestExtract_RepeatedSynonymNoDuplicate(t *testing.T) {
	got := Extract("oily oily oily, so greasy and shiny")
	if want := []string{"oily"}; !reflect.DeepEqual(got[EntitySkinType], want) {
		t.Errorf("Expected single oily label, got %v", got[EntitySkinType])
	}
}

func TestExtract_MultipleDistinctTypes(t *testing.T) {
	got := Extract("oily in summer but dry in winter")
	if want := []string{"oily", "dry"}; !reflect.DeepEqual(got[EntitySkinType], want) {
		t.Errorf("Expected [oily dry], got %v", got[EntitySkinType])
	}
}

func TestExtract_ConcernsAndProducts(t *testing.T) {
	got := Extract("I get breakouts and have large pores, I use a face wash and spf")

	if want := []string{"acne", "pores"}; !reflect.DeepEqual(got[EntityConcerns], want) {
		t.Errorf("concerns = %v, want %v", got[EntityConcerns], want)
	}
	if want := []string{"cleanser", "sunscreen"}; !reflect.DeepEqual(got[EntityProducts], want) {
		t.Errorf("products = %v, want %v", got[EntityProducts], want)
	}
}

func TestExtract_Ingredients(t *testing.T) {
	got := Extract("should I use retinol or vitamin c?")
	if want := []string{"retinol", "vitamin_c"}; !reflect.DeepEqual(got[EntityIngredients], want) {
		t.Errorf("ingredients = %v, want %v", got[EntityIngredients], want)
	}
}

func TestExtract_AgePatterns(t *testing.T) {
	tests := []struct {
		text     string
		category string
		want     []string
	}{
		{"I am 25 years old", EntityAge, []string{"25"}},
		{"27 y/o here", EntityAge, []string{"27"}},
		{"I'm under 20", EntityAgeUnder, []string{"20"}},
		{"somewhere in the 30-40 bracket", EntityAgeRange, []string{"30", "40"}},
		{"in my 40s", EntityAgeDecade, []string{"40"}},
	}

	for _, tt := range tests {
		got := Extract(tt.text)
		if !reflect.DeepEqual(got[tt.category], tt.want) {
			t.Errorf("Extract(%q)[%s] = %v, want %v", tt.text, tt.category, got[tt.category], tt.want)
		}
	}
}

func TestExtract_NoMatches(t *testing.T) {
	got := Extract("hello there")
	if len(got) != 0 {
		t.Errorf("Expected no entities, got %v", got)
	}
}

// Negation is intentionally not handled by the substring matcher.
func TestExtract_NegationBlind(t *testing.T) {
	got := Extract("I don't have acne")
	if want := []string{"acne"}; !reflect.DeepEqual(got[EntityConcerns], want) {
		t.Errorf("concerns = %v, want %v (negation is not interpreted)", got[EntityConcerns], want)
	}
}
