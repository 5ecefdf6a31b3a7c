package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"soil-advisor/internal/domain"
	"soil-advisor/internal/ml"
	"soil-advisor/internal/repository"
)

// FertilityInput is the typed form of one soil-fertility request. JSON tags
// match the submitted form field names, so the serialized history entry
// mirrors what the user sent.
type FertilityInput struct {
	Name           string  `json:"Name"`
	Photoperiod    string  `json:"Photoperiod"`
	Temperature    float64 `json:"Temperature"`
	Rainfall       float64 `json:"Rainfall"`
	PH             float64 `json:"pH"`
	LightHours     float64 `json:"Light_Hours"`
	LightIntensity float64 `json:"Light_Intensity"`
	Rh             float64 `json:"Rh"`
	Nitrogen       float64 `json:"Nitrogen"`
	Phosphorus     float64 `json:"Phosphorus"`
	Potassium      float64 `json:"Potassium"`
	Yield          float64 `json:"Yield"`
	CategoryPH     string  `json:"Category_pH"`
	SoilType       string  `json:"Soil_Type"`
	Season         string  `json:"Season"`
	NRatio         float64 `json:"N_Ratio"`
	PRatio         float64 `json:"P_Ratio"`
	KRatio         float64 `json:"K_Ratio"`
}

// FertilizerInput is the typed form of one fertilizer-recommendation request.
type FertilizerInput struct {
	Temperature float64 `json:"Temparature"`
	Humidity    float64 `json:"Humidity"`
	Moisture    float64 `json:"Moisture"`
	SoilType    string  `json:"Soil_Type"`
	CropType    string  `json:"Crop_Type"`
	Nitrogen    float64 `json:"Nitrogen"`
	Potassium   float64 `json:"Potassium"`
	Phosphorous float64 `json:"Phosphorous"`
}

// PredictionService composes the label codecs, the two classifiers and the
// history log into the two prediction flows.
type PredictionService struct {
	bundle  *ml.Bundle
	history repository.HistoryRepository
}

// NewPredictionService creates a PredictionService over loaded model
// artifacts.
func NewPredictionService(bundle *ml.Bundle, history repository.HistoryRepository) *PredictionService {
	if bundle == nil {
		panic("model bundle cannot be nil for PredictionService")
	}
	if history == nil {
		panic("HistoryRepository cannot be nil for PredictionService")
	}
	return &PredictionService{bundle: bundle, history: history}
}

// PredictFertility encodes the categorical fields, runs the fertility model
// and returns the decoded label. A successful prediction is appended to the
// user's history; append failures are logged and do not fail the request.
func (s *PredictionService) PredictFertility(ctx context.Context, username string, in FertilityInput) (string, error) {
	model := s.bundle.Fertility

	nameCode, err := encodeField(model, "Name", in.Name)
	if err != nil {
		return "", err
	}
	photoperiodCode, err := encodeField(model, "Photoperiod", in.Photoperiod)
	if err != nil {
		return "", err
	}
	categoryPHCode, err := encodeField(model, "Category_pH", in.CategoryPH)
	if err != nil {
		return "", err
	}
	soilTypeCode, err := encodeField(model, "Soil_Type", in.SoilType)
	if err != nil {
		return "", err
	}
	seasonCode, err := encodeField(model, "Season", in.Season)
	if err != nil {
		return "", err
	}

	features := []float64{
		float64(nameCode),
		float64(photoperiodCode),
		in.Temperature,
		in.Rainfall,
		in.PH,
		in.LightHours,
		in.LightIntensity,
		in.Rh,
		in.Nitrogen,
		in.Phosphorus,
		in.Potassium,
		in.Yield,
		float64(categoryPHCode),
		float64(soilTypeCode),
		float64(seasonCode),
		in.NRatio,
		in.PRatio,
		in.KRatio,
	}

	label, err := s.runModel(model, features)
	if err != nil {
		logrus.WithError(err).WithField("username", username).Error("Fertility prediction failed")
		return "", ErrInternalServer
	}

	s.appendHistory(ctx, username, domain.KindNutrition, in, label)
	return label, nil
}

// PredictFertilizer encodes the categorical fields, runs the fertilizer model
// and returns the recommended fertilizer name, appending to history on
// success.
func (s *PredictionService) PredictFertilizer(ctx context.Context, username string, in FertilizerInput) (string, error) {
	model := s.bundle.Fertilizer

	soilTypeCode, err := encodeField(model, "Soil_Type", in.SoilType)
	if err != nil {
		return "", err
	}
	cropTypeCode, err := encodeField(model, "Crop_Type", in.CropType)
	if err != nil {
		return "", err
	}

	features := []float64{
		in.Temperature,
		in.Humidity,
		in.Moisture,
		float64(soilTypeCode),
		float64(cropTypeCode),
		in.Nitrogen,
		in.Potassium,
		in.Phosphorous,
	}

	label, err := s.runModel(model, features)
	if err != nil {
		logrus.WithError(err).WithField("username", username).Error("Fertilizer prediction failed")
		return "", ErrInternalServer
	}

	s.appendHistory(ctx, username, domain.KindFertilizer, in, label)
	return label, nil
}

// History returns the user's past predictions in insertion order.
func (s *PredictionService) History(ctx context.Context, username string) ([]domain.PredictionRecord, error) {
	records, err := s.history.ListByUsername(ctx, username)
	if err != nil {
		logrus.WithError(err).WithField("username", username).Error("Failed to list prediction history")
		return nil, ErrInternalServer
	}
	return records, nil
}

// FertilityOptions returns the selectable values per categorical fertility
// field, for form rendering. The lists are exactly the encodable sets.
func (s *PredictionService) FertilityOptions() map[string][]string {
	return modelOptions(s.bundle.Fertility)
}

// FertilizerOptions returns the selectable values per categorical fertilizer
// field.
func (s *PredictionService) FertilizerOptions() map[string][]string {
	return modelOptions(s.bundle.Fertilizer)
}

func modelOptions(model *ml.Model) map[string][]string {
	options := make(map[string][]string, len(model.Encoders))
	for feature, codec := range model.Encoders {
		options[feature] = codec.Options()
	}
	return options
}

func encodeField(model *ml.Model, feature, value string) (int, error) {
	codec, err := model.Encoder(feature)
	if err != nil {
		// Encoder set is validated at load time; a miss here is a wiring bug.
		logrus.WithError(err).Error("Missing encoder for categorical feature")
		return 0, ErrInternalServer
	}
	code, err := codec.Encode(value)
	if err != nil {
		// Keep the field name in the message; it ends up user-visible.
		return 0, fmt.Errorf("%s: %w", feature, err)
	}
	return code, nil
}

// runModel feeds the ordered vector to the classifier and decodes the result.
// A decode failure means the model and its target codec disagree.
func (s *PredictionService) runModel(model *ml.Model, features []float64) (string, error) {
	code, err := model.Classifier.Predict(features)
	if err != nil {
		return "", fmt.Errorf("classifier: %w", err)
	}
	label, err := model.Target.Decode(code)
	if err != nil {
		return "", fmt.Errorf("decode predicted class: %w", err)
	}
	return label, nil
}

// appendHistory records one prediction. Logging is best-effort: a failed
// append keeps the prediction result intact and only leaves a warning.
func (s *PredictionService) appendHistory(ctx context.Context, username, kind string, input any, result string) {
	payload, err := json.Marshal(input)
	if err != nil {
		logrus.WithError(err).WithField("username", username).Warn("Failed to serialize prediction input for history")
		payload = []byte("{}")
	}
	record := &domain.PredictionRecord{
		Username:  username,
		Kind:      kind,
		InputData: string(payload),
		Result:    result,
	}
	if err := s.history.Append(ctx, record); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"username": username,
			"kind":     kind,
		}).Warn("Failed to append prediction history")
	}
}
