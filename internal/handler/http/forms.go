package http

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"soil-advisor/internal/service"
)

// formReader pulls typed values out of a submitted form, remembering the
// first error. Field names are strict; field order is not.
type formReader struct {
	c   *gin.Context
	err error
}

func (f *formReader) text(name string) string {
	if f.err != nil {
		return ""
	}
	value, ok := f.c.GetPostForm(name)
	if !ok || value == "" {
		f.err = fmt.Errorf("%w: %s", ErrMissingField, name)
		return ""
	}
	return value
}

func (f *formReader) number(name string) float64 {
	raw := f.text(name)
	if f.err != nil {
		return 0
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		f.err = fmt.Errorf("%w: %s", ErrMalformedNumericField, name)
		return 0
	}
	return value
}

func parseFertilityForm(c *gin.Context) (service.FertilityInput, error) {
	f := &formReader{c: c}
	in := service.FertilityInput{
		Name:           f.text("Name"),
		Photoperiod:    f.text("Photoperiod"),
		Temperature:    f.number("Temperature"),
		Rainfall:       f.number("Rainfall"),
		PH:             f.number("pH"),
		LightHours:     f.number("Light_Hours"),
		LightIntensity: f.number("Light_Intensity"),
		Rh:             f.number("Rh"),
		Nitrogen:       f.number("Nitrogen"),
		Phosphorus:     f.number("Phosphorus"),
		Potassium:      f.number("Potassium"),
		Yield:          f.number("Yield"),
		CategoryPH:     f.text("Category_pH"),
		SoilType:       f.text("Soil_Type"),
		Season:         f.text("Season"),
		NRatio:         f.number("N_Ratio"),
		PRatio:         f.number("P_Ratio"),
		KRatio:         f.number("K_Ratio"),
	}
	return in, f.err
}

func parseFertilizerForm(c *gin.Context) (service.FertilizerInput, error) {
	f := &formReader{c: c}
	in := service.FertilizerInput{
		Temperature: f.number("Temparature"),
		Humidity:    f.number("Humidity"),
		Moisture:    f.number("Moisture"),
		SoilType:    f.text("Soil_Type"),
		CropType:    f.text("Crop_Type"),
		Nitrogen:    f.number("Nitrogen"),
		Potassium:   f.number("Potassium"),
		Phosphorous: f.number("Phosphorous"),
	}
	return in, f.err
}
