package handlers

import (
	"net/http"
	"time"

	"ridereport/internal/domain"
	"ridereport/internal/domain/models"
	"ridereport/internal/http/middleware"
	"ridereport/internal/services"
	"ridereport/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type aggregateRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// AggregateRides runs the pager + enricher pipeline over a date window and
// stores the enriched set in a new ride session.
//
// POST /api/rides/aggregate
func (a API) AggregateRides(c *gin.Context) {
	var req aggregateRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "startDate", Msg: "expected YYYY-MM-DD", Err: err})
		return
	}
	end, err := utils.ParseDate(req.EndDate)
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "endDate", Msg: "expected YYYY-MM-DD", Err: err})
		return
	}
	window := domain.DateWindow{
		Start: start,
		End:   end.Add(24*time.Hour - time.Second),
	}

	reqID := middleware.GetRequestID(c)
	aggregator := services.RideAggregator{
		Pager: services.ActivityPager{
			Source:    a.Provider,
			PageSize:  a.Env.ActivityPageSize,
			RequestID: reqID,
		},
		Enricher: services.DetailEnricher{
			Source:    a.Provider,
			BatchSize: a.Env.EnrichBatchSize,
			RequestID: reqID,
		},
		RequestID: reqID,
	}

	result, err := aggregator.AggregateRides(c.Request.Context(), middleware.GetCredential(c), window)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	sessionID := uuid.NewString()
	if err := a.Sessions.SaveRides(sessionID, result.Rides); err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessionId": sessionID,
		"rides":     result.Rides,
		"errors":    result.Errors,
	})
}

// ListSessionRides returns a session's rides with amount overrides applied.
//
// GET /api/sessions/:id/rides
func (a API) ListSessionRides(c *gin.Context) {
	rides, edits, err := a.sessionRides(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rides": services.ApplyAmountEdits(rides, edits)})
}

type amountEditRequest struct {
	Amount float64 `json:"amount"`
}

// SetRideAmount records a local amount override as an edit-log entry. The
// stored ride snapshot stays untouched.
//
// PUT /api/sessions/:id/rides/:rideId/amount
func (a API) SetRideAmount(c *gin.Context) {
	var req amountEditRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Amount < 0 {
		RespondDomainError(c, domain.ValidationError{Field: "amount", Msg: "must not be negative"})
		return
	}

	sessionID := c.Param("id")
	rideID := c.Param("rideId")

	rides, err := a.Sessions.ListRides(sessionID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	var snapshot *models.EnrichedRide
	for i := range rides {
		if rides[i].ID == rideID {
			snapshot = &rides[i]
			break
		}
	}
	if snapshot == nil {
		RespondDomainError(c, domain.NotFoundError{Resource: "ride"})
		return
	}

	edit := models.AmountEdit{
		RideID:         rideID,
		Amount:         req.Amount,
		OriginalAmount: snapshot.Amount,
	}
	if err := a.Sessions.UpsertAmountEdit(sessionID, edit); err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "rides", "amount_override", "ride="+rideID)
	c.JSON(http.StatusOK, edit)
}

// RevertRideAmount deletes the edit-log entry for a ride.
//
// DELETE /api/sessions/:id/rides/:rideId/amount
func (a API) RevertRideAmount(c *gin.Context) {
	if err := a.Sessions.DeleteAmountEdit(c.Param("id"), c.Param("rideId")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reverted": true})
}

// sessionRides loads a session's snapshot and edit-log together.
func (a API) sessionRides(sessionID string) ([]models.EnrichedRide, map[string]models.AmountEdit, error) {
	rides, err := a.Sessions.ListRides(sessionID)
	if err != nil {
		return nil, nil, err
	}
	edits, err := a.Sessions.ListAmountEdits(sessionID)
	if err != nil {
		return nil, nil, err
	}
	return rides, edits, nil
}
