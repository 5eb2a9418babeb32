package engine

import (
	"reflect"
	"testing"

	"github.com/apsara-ai/apsara-server/internal/domain"
)

func TestAccumulate_SetsFields(t *testing.T) {
	p := domain.NewProfile()
	Accumulate(p, Extract("oily skin, acne and large pores, I'm 25 years old, I use a cleanser"))

	if p.SkinType != "oily" {
		t.Errorf("SkinType = %q, want oily", p.SkinType)
	}
	if want := []string{"acne", "pores"}; !reflect.DeepEqual(p.Concerns, want) {
		t.Errorf("Concerns = %v, want %v", p.Concerns, want)
	}
	if p.AgeRange != domain.Age20to30 {
		t.Errorf("AgeRange = %q, want %q", p.AgeRange, domain.Age20to30)
	}
	if want := []string{"cleanser"}; !reflect.DeepEqual(p.CurrentRoutine, want) {
		t.Errorf("CurrentRoutine = %v, want %v", p.CurrentRoutine, want)
	}
}

func TestAccumulate_Idempotent(t *testing.T) {
	entities := Extract("dry skin with wrinkles and dark spots")

	once := domain.NewProfile()
	Accumulate(once, entities)

	twice := domain.NewProfile()
	Accumulate(twice, entities)
	Accumulate(twice, entities)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Accumulate is not idempotent: once=%+v twice=%+v", once, twice)
	}
}

func TestAccumulate_SkinTypeLastDetectedWins(t *testing.T) {
	p := domain.NewProfile()
	Accumulate(p, Extract("my skin is oily"))
	Accumulate(p, Extract("actually it's more of a combination"))

	if p.SkinType != "combination" {
		t.Errorf("SkinType = %q, want combination", p.SkinType)
	}
}

func TestAccumulate_ConcernsNeverShrink(t *testing.T) {
	p := domain.NewProfile()
	Accumulate(p, Extract("acne is my main issue"))
	Accumulate(p, Extract("also some redness"))
	Accumulate(p, Extract("nothing else"))

	if want := []string{"acne", "redness"}; !reflect.DeepEqual(p.Concerns, want) {
		t.Errorf("Concerns = %v, want %v", p.Concerns, want)
	}
}

func TestAccumulate_AgeBrackets(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"I'm 17 years old", domain.AgeUnder20},
		{"I'm 20 years old", domain.Age20to30},
		{"35 y/o", domain.Age30to40},
		{"I am 45 years old", domain.Age40to50},
		{"62 years old", domain.Age50Plus},
		{"under 20", domain.AgeUnder20},
		{"in my 40s", domain.Age40to50},
		{"30-40", domain.Age30to40},
	}

	for _, tt := range tests {
		p := domain.NewProfile()
		Accumulate(p, Extract(tt.text))
		if p.AgeRange != tt.want {
			t.Errorf("Accumulate(%q) AgeRange = %q, want %q", tt.text, p.AgeRange, tt.want)
		}
	}
}

func TestAccumulate_NoAgeSignalLeavesBracketEmpty(t *testing.T) {
	p := domain.NewProfile()
	Accumulate(p, Extract("I'd rather not say"))
	if p.AgeRange != "" {
		t.Errorf("AgeRange = %q, want empty", p.AgeRange)
	}
}
