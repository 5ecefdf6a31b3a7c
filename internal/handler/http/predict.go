package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"soil-advisor/internal/middleware"
	"soil-advisor/internal/service"
)

// PredictHandler serves the two prediction forms and the history page.
type PredictHandler struct {
	predictionService *service.PredictionService
}

// NewPredictHandler creates a PredictHandler.
func NewPredictHandler(predictionService *service.PredictionService) *PredictHandler {
	return &PredictHandler{predictionService: predictionService}
}

// nutritionPage assembles the template data shared by GET and POST renders of
// the fertility form. Dropdown choices come straight from the codecs, so the
// displayed options are exactly the encodable values.
func (h *PredictHandler) nutritionPage(result, errMsg string) gin.H {
	options := h.predictionService.FertilityOptions()
	return gin.H{
		"Result":             result,
		"Error":              errMsg,
		"NameOptions":        options["Name"],
		"PhotoperiodOptions": options["Photoperiod"],
		"CategoryPHOptions":  options["Category_pH"],
		"SoilTypeOptions":    options["Soil_Type"],
		"SeasonOptions":      options["Season"],
	}
}

func (h *PredictHandler) fertilizerPage(result, errMsg string) gin.H {
	options := h.predictionService.FertilizerOptions()
	return gin.H{
		"Result":      result,
		"Error":       errMsg,
		"SoilOptions": options["Soil_Type"],
		"CropOptions": options["Crop_Type"],
	}
}

// ShowNutrition renders the empty fertility form.
func (h *PredictHandler) ShowNutrition(c *gin.Context) {
	c.HTML(http.StatusOK, "nutrition.html", h.nutritionPage("", ""))
}

// Nutrition handles a fertility form submission. Parse and encode failures
// re-render the form with a visible message and write nothing to history.
func (h *PredictHandler) Nutrition(c *gin.Context) {
	username, ok := middleware.CurrentUsername(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	input, err := parseFertilityForm(c)
	if err != nil {
		c.HTML(http.StatusBadRequest, "nutrition.html", h.nutritionPage("", userMessage(err)))
		return
	}

	result, err := h.predictionService.PredictFertility(c.Request.Context(), username, input)
	if err != nil {
		c.HTML(http.StatusBadRequest, "nutrition.html", h.nutritionPage("", userMessage(err)))
		return
	}

	logrus.WithFields(logrus.Fields{"username": username, "result": result}).Info("Fertility prediction served")
	c.HTML(http.StatusOK, "nutrition.html", h.nutritionPage(result, ""))
}

// ShowFertilizer renders the empty fertilizer form.
func (h *PredictHandler) ShowFertilizer(c *gin.Context) {
	c.HTML(http.StatusOK, "fertilizer.html", h.fertilizerPage("", ""))
}

// Fertilizer handles a fertilizer form submission.
func (h *PredictHandler) Fertilizer(c *gin.Context) {
	username, ok := middleware.CurrentUsername(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	input, err := parseFertilizerForm(c)
	if err != nil {
		c.HTML(http.StatusBadRequest, "fertilizer.html", h.fertilizerPage("", userMessage(err)))
		return
	}

	result, err := h.predictionService.PredictFertilizer(c.Request.Context(), username, input)
	if err != nil {
		c.HTML(http.StatusBadRequest, "fertilizer.html", h.fertilizerPage("", userMessage(err)))
		return
	}

	logrus.WithFields(logrus.Fields{"username": username, "result": result}).Info("Fertilizer prediction served")
	c.HTML(http.StatusOK, "fertilizer.html", h.fertilizerPage(result, ""))
}

// History lists the authenticated user's past predictions in insertion
// order.
func (h *PredictHandler) History(c *gin.Context) {
	username, ok := middleware.CurrentUsername(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	records, err := h.predictionService.History(c.Request.Context(), username)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "history.html", gin.H{
			"Username": username,
			"Error":    userMessage(err),
		})
		return
	}

	c.HTML(http.StatusOK, "history.html", gin.H{
		"Username": username,
		"Records":  records,
	})
}
