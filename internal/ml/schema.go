package ml

// Feature orders below are fixed by the trained models. Reordering a schema
// is a model-contract break, not a configuration change.

// FertilityFeatures is the 18-feature input order of the soil-fertility model.
// Form field names double as feature names.
var FertilityFeatures = []string{
	"Name",
	"Photoperiod",
	"Temperature",
	"Rainfall",
	"pH",
	"Light_Hours",
	"Light_Intensity",
	"Rh",
	"Nitrogen",
	"Phosphorus",
	"Potassium",
	"Yield",
	"Category_pH",
	"Soil_Type",
	"Season",
	"N_Ratio",
	"P_Ratio",
	"K_Ratio",
}

// FertilizerFeatures is the 8-feature input order of the fertilizer model.
// "Temparature" keeps the training data's spelling.
var FertilizerFeatures = []string{
	"Temparature",
	"Humidity",
	"Moisture",
	"Soil_Type",
	"Crop_Type",
	"Nitrogen",
	"Potassium",
	"Phosphorous",
}

// Categorical feature subsets, keyed by feature name. Only these features go
// through a label codec; everything else is parsed as a float.
var (
	FertilityCategorical  = []string{"Name", "Photoperiod", "Category_pH", "Soil_Type", "Season"}
	FertilizerCategorical = []string{"Soil_Type", "Crop_Type"}
)
