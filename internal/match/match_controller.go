package match

import (
	"net/http"
	"strconv"

	responses "github.com/DhavalSuthar-24/cricketclub/pkg/matchresponse"
	"github.com/gin-gonic/gin"
)

// MatchController handles match-related HTTP requests
type MatchController struct {
	service *Service
}

// NewMatchController creates a new match controller
func NewMatchController(service *Service) *MatchController {
	return &MatchController{service: service}
}

// ResultTextRequest carries the running or final result line.
type ResultTextRequest struct {
	ResultText string `json:"result_text" binding:"max=255"`
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid match ID")
		return 0, false
	}
	return uint(id), true
}

// @Summary      Schedule a match
// @Tags         Matches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        match  body  CreateMatchInput  true  "Teams, date and venue"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{} "Validation error"
// @Failure      500  {object}  map[string]interface{}
// @Router       /matches [post]
func (mc *MatchController) CreateMatch(c *gin.Context) {
	var req CreateMatchInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	m, err := mc.service.CreateMatch(c.Request.Context(), req)
	if err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusCreated, gin.H{"message": "Match created successfully", "match": m})
}

// @Summary      Live matches feed
// @Description  Matches with team names, current innings score and a status label, newest first.
// @Tags         Matches
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   LiveMatchSummary
// @Failure      500  {object}  map[string]interface{}
// @Router       /matches/live [get]
func (mc *MatchController) GetLiveMatches(c *gin.Context) {
	feed, err := mc.service.GetLiveMatches(c.Request.Context())
	if err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, feed)
}

// @Summary      Match setup status
// @Description  Match columns plus setupStatus (toss, playing XIs and the derived completion flags).
// @Tags         Matches
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Match ID"
// @Success      200  {object}  MatchWithSetupStatus
// @Failure      404  {object}  map[string]interface{} "Match not found"
// @Router       /matches/{id}/status [get]
func (mc *MatchController) GetStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	status, err := mc.service.GetStatus(c.Request.Context(), id)
	if err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, status)
}

// @Summary      Save innings setup
// @Description  Inserts or overwrites the toss, batting order and playing XIs of a match.
// @Tags         Matches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        setup  body  SetupInput  true  "Setup payload"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{} "Validation error"
// @Failure      404  {object}  map[string]interface{} "Match not found"
// @Router       /matches/setup [post]
func (mc *MatchController) UpsertSetup(c *gin.Context) {
	var req SetupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	setup, err := mc.service.UpsertSetup(c.Request.Context(), req)
	if err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Match setup saved successfully", "setup": setup})
}

// @Summary      Start a match
// @Tags         Matches
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Match ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{} "Match already completed"
// @Router       /matches/{id}/start [post]
func (mc *MatchController) StartMatch(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	m, err := mc.service.StartMatch(c.Request.Context(), id)
	if err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Match started", "match": m})
}

// @Summary      Complete a match
// @Tags         Matches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path  int                true   "Match ID"
// @Param        result  body  ResultTextRequest  false  "Final result line"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{} "Match already completed"
// @Router       /matches/{id}/complete [post]
func (mc *MatchController) CompleteMatch(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req ResultTextRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.ValidationErrorResponse(c, err)
			return
		}
	}

	m, err := mc.service.CompleteMatch(c.Request.Context(), id, req.ResultText)
	if err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Match completed", "match": m})
}

// @Summary      Update the result line
// @Tags         Matches
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path  int                true  "Match ID"
// @Param        result  body  ResultTextRequest  true  "Result line"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /matches/{id}/result [put]
func (mc *MatchController) UpdateResultText(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req ResultTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	m, err := mc.service.UpdateResultText(c.Request.Context(), id, req.ResultText)
	if err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, gin.H{"message": "Result updated", "match": m})
}
