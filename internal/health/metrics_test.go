package health

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBMI(t *testing.T) {
	assert.Equal(t, 22.9, Round1(BMI(70, 175)))
	assert.Equal(t, 24.7, Round1(BMI(80, 180)))
}

func TestBMIInvalidInputs(t *testing.T) {
	assert.Equal(t, 0.0, BMI(0, 175))
	assert.Equal(t, 0.0, BMI(70, 0))
	assert.Equal(t, 0.0, BMI(-70, -175))
}

func TestBMRMale(t *testing.T) {
	// 10*70 + 6.25*175 - 5*25 + 5 = 1724
	assert.Equal(t, 1724.0, BMR(SexMale, 70, 175, 25))
}

func TestBMRFemale(t *testing.T) {
	// 10*60 + 6.25*165 - 5*30 - 161 = 1320.25
	assert.Equal(t, 1320.25, BMR(SexFemale, 60, 165, 30))
}

func TestBMRInvalidInputs(t *testing.T) {
	assert.Equal(t, 0.0, BMR(SexMale, 70, 175, 0))
	assert.Equal(t, 0.0, BMR(SexMale, 0, 175, 25))
}

func TestTDEE(t *testing.T) {
	bmr := BMR(SexMale, 70, 175, 25)
	assert.Equal(t, bmr*1.2, TDEE(bmr, "sedentary"))
	assert.Equal(t, bmr*1.55, TDEE(bmr, "moderate"))
	assert.Equal(t, bmr*1.9, TDEE(bmr, "very_active"))
	// unknown level falls back to sedentary
	assert.Equal(t, bmr*1.2, TDEE(bmr, "couch"))
	assert.Equal(t, 0.0, TDEE(0, "moderate"))
}

func TestIdealWeight(t *testing.T) {
	// 175cm = 68.9in, 8.9in over 5ft
	got := IdealWeight(SexMale, 175)
	assert.InDelta(t, 52+1.9*(175/2.54-60), got, 0.001)

	got = IdealWeight(SexFemale, 160)
	assert.InDelta(t, 49+1.7*(160/2.54-60), got, 0.001)

	// at or below 5ft the base weight applies
	assert.Equal(t, 52.0, IdealWeight(SexMale, 152.4))
	assert.Equal(t, 49.0, IdealWeight(SexFemale, 140))
	assert.Equal(t, 0.0, IdealWeight(SexMale, 0))
}

func TestIdempotence(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, BMI(70, 175), BMI(70, 175))
		assert.Equal(t, BMR(SexMale, 70, 175, 25), BMR(SexMale, 70, 175, 25))
	}
}
