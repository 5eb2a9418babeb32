package engine

import (
	"strconv"

	"github.com/apsara-ai/apsara-server/internal/domain"
)

// Accumulate merges extracted entities into the profile in place. Concern and
// routine sets only grow; skin type and age bracket are overwritten by the
// latest detection. Applying the same entities twice is a no-op the second
// time, so the operation is idempotent.
func Accumulate(p *domain.Profile, entities Entities) {
	if v := entities[EntitySkinType]; len(v) > 0 {
		p.SkinType = v[0]
	}
	p.AddConcerns(entities[EntityConcerns]...)
	p.AddRoutineProducts(entities[EntityProducts]...)

	if bracket := bracketFromEntities(entities); bracket != "" {
		p.AgeRange = bracket
	}
}

// bracketFromEntities translates an age signal to an age bracket label.
// Explicit numeric ages win; decade ("40s"), range ("30-40") and "under N"
// forms are translated through the same boundaries using their first number.
func bracketFromEntities(entities Entities) string {
	if v := entities.First(EntityAge); v != "" {
		if age, err := strconv.Atoi(v); err == nil {
			return bracketAge(age)
		}
	}
	if v := entities.First(EntityAgeRange); v != "" {
		if age, err := strconv.Atoi(v); err == nil {
			return bracketAge(age)
		}
	}
	if v := entities.First(EntityAgeDecade); v != "" {
		if age, err := strconv.Atoi(v); err == nil {
			return bracketAge(age)
		}
	}
	if v := entities.First(EntityAgeUnder); v != "" {
		// "under 20" means strictly younger than the stated bound.
		if age, err := strconv.Atoi(v); err == nil {
			return bracketAge(age - 1)
		}
	}
	return ""
}

func bracketAge(age int) string {
	switch {
	case age < 20:
		return domain.AgeUnder20
	case age < 30:
		return domain.Age20to30
	case age < 40:
		return domain.Age30to40
	case age < 50:
		return domain.Age40to50
	default:
		return domain.Age50Plus
	}
}
