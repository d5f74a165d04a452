package innings

import (
	"net/http"
	"strconv"

	"github.com/DhavalSuthar-24/cricketclub/internal/scoring"
	responses "github.com/DhavalSuthar-24/cricketclub/pkg/matchresponse"
	"github.com/gin-gonic/gin"
)

// InningsController handles the scoring endpoints of an innings.
type InningsController struct {
	service *Service
}

func NewInningsController(service *Service) *InningsController {
	return &InningsController{service: service}
}

func parseInningsID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid innings ID")
		return 0, false
	}
	return uint(id), true
}

// @Summary      Start an innings
// @Description  Opens the next innings of a match whose toss and playing XIs are set. Starting the first innings moves the match to live.
// @Tags         Innings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        innings  body  StartInningsInput  true  "Match, openers and opening bowler"
// @Success      201  {object}  ScoringState
// @Failure      400  {object}  map[string]interface{} "Validation error"
// @Failure      404  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{} "Setup incomplete or innings in progress"
// @Router       /innings [post]
func (ic *InningsController) StartInnings(c *gin.Context) {
	var req StartInningsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	state, err := ic.service.StartInnings(c.Request.Context(), req)
	if err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusCreated, state)
}

// @Summary      Scoring state
// @Tags         Innings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Innings ID"
// @Success      200  {object}  ScoringState
// @Failure      404  {object}  map[string]interface{}
// @Router       /innings/{id}/state [get]
func (ic *InningsController) GetState(c *gin.Context) {
	id, ok := parseInningsID(c)
	if !ok {
		return
	}
	state, err := ic.service.GetState(c.Request.Context(), id)
	if err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, state)
}

// @Summary      Apply a scorer action
// @Description  One button press (RUN, WD, NB, BYE, LB, OUT, CHANGE_BOWLER) or the answer to the open prompt (EXTRA_RUNS, NEW_BATTER).
// @Tags         Innings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path  int             true  "Innings ID"
// @Param        action  body  scoring.Action  true  "Scorer action"
// @Success      200  {object}  ScoringState
// @Failure      400  {object}  map[string]interface{} "Invalid action"
// @Failure      409  {object}  map[string]interface{} "Prompt pending or innings complete"
// @Router       /innings/{id}/actions [post]
func (ic *InningsController) ApplyAction(c *gin.Context) {
	id, ok := parseInningsID(c)
	if !ok {
		return
	}
	var action scoring.Action
	if err := c.ShouldBindJSON(&action); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	state, err := ic.service.ApplyAction(c.Request.Context(), id, action)
	if err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, state)
}

// @Summary      Reconcile with storage
// @Description  Drains the queued writes of the innings and reloads its state from the database.
// @Tags         Innings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Innings ID"
// @Success      200  {object}  ScoringState
// @Failure      404  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{} "Writes still queued"
// @Router       /innings/{id}/reconcile [post]
func (ic *InningsController) Reconcile(c *gin.Context) {
	id, ok := parseInningsID(c)
	if !ok {
		return
	}
	state, err := ic.service.Reconcile(c.Request.Context(), id)
	if err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, state)
}

// @Summary      End an innings
// @Tags         Innings
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Innings ID"
// @Success      200  {object}  ScoringState
// @Failure      404  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{} "Innings already complete"
// @Router       /innings/{id}/end [post]
func (ic *InningsController) EndInnings(c *gin.Context) {
	id, ok := parseInningsID(c)
	if !ok {
		return
	}
	state, err := ic.service.EndInnings(c.Request.Context(), id)
	if err != nil {
		responses.DomainErrorResponse(c, err)
		return
	}
	responses.SuccessResponse(c, http.StatusOK, state)
}
