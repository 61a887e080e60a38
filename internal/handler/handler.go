package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/wb-go/wbf/ginext"

	"confbooker/internal/domain"
	"confbooker/internal/handler/dto"
)

type UserSvc interface {
	Register(ctx context.Context, input domain.RegisterUserInput) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

type ConferenceSvc interface {
	Register(ctx context.Context, input domain.RegisterConferenceInput) (*domain.Conference, error)
	GetDetails(ctx context.Context, name string) (*domain.ConferenceDetails, error)
	List(ctx context.Context) ([]*domain.Conference, error)
}

type AllocationSvc interface {
	Book(ctx context.Context, userID, conferenceName string) (*domain.BookResult, error)
	ConfirmWaitlist(ctx context.Context, waitlistID string) (*domain.Booking, error)
	Cancel(ctx context.Context, id string) (domain.CancelOutcome, error)
	Status(ctx context.Context, id string) (*domain.BookingStatus, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Booking, error)
}

type Handler struct {
	userService       UserSvc
	conferenceService ConferenceSvc
	allocationService AllocationSvc
}

func NewHandler(userService UserSvc, conferenceService ConferenceSvc, allocationService AllocationSvc) *Handler {
	return &Handler{
		userService:       userService,
		conferenceService: conferenceService,
		allocationService: allocationService,
	}
}

// Users

func (h *Handler) RegisterUser(c *ginext.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	user, err := h.userService.Register(c.Request.Context(), domain.RegisterUserInput{
		ID:     req.ID,
		Topics: req.Topics,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

func (h *Handler) ListUsers(c *ginext.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, dto.ToUserResponse(u))
	}

	c.JSON(http.StatusOK, resp)
}

// Conferences

func (h *Handler) RegisterConference(c *ginext.Context) {
	var req dto.RegisterConferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid start_time format, expected RFC3339"})
		return
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid end_time format, expected RFC3339"})
		return
	}

	conference, err := h.conferenceService.Register(c.Request.Context(), domain.RegisterConferenceInput{
		Name:      req.Name,
		Location:  req.Location,
		Topics:    req.Topics,
		StartTime: startTime,
		EndTime:   endTime,
		Capacity:  req.Capacity,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToConferenceResponse(conference))
}

func (h *Handler) GetConference(c *ginext.Context) {
	details, err := h.conferenceService.GetDetails(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConferenceDetailsResponse(details))
}

func (h *Handler) ListConferences(c *ginext.Context) {
	conferences, err := h.conferenceService.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.ConferenceResponse, 0, len(conferences))
	for _, conf := range conferences {
		resp = append(resp, dto.ToConferenceResponse(conf))
	}

	c.JSON(http.StatusOK, resp)
}

// Bookings

func (h *Handler) BookConference(c *ginext.Context) {
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.allocationService.Book(c.Request.Context(), req.UserID, c.Param("name"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBookResponse(result))
}

func (h *Handler) ConfirmWaitlist(c *ginext.Context) {
	booking, err := h.allocationService.ConfirmWaitlist(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *Handler) CancelBooking(c *ginext.Context) {
	outcome, err := h.allocationService.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CancelResponse{Result: string(outcome)})
}

func (h *Handler) GetStatus(c *ginext.Context) {
	status, err := h.allocationService.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{
		Status:         string(status.Status),
		ConferenceName: status.ConferenceName,
		UserID:         status.UserID,
	})
}

func (h *Handler) GetUserBookings(c *ginext.Context) {
	bookings, err := h.allocationService.ListByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		resp = append(resp, dto.ToBookingResponse(b))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) handleError(c *ginext.Context, err error) {
	c.Set("error", err.Error())

	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrConferenceNotFound),
		errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrWaitlistEntryNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrDuplicateBooking),
		errors.Is(err, domain.ErrNoSlotsAvailable),
		errors.Is(err, domain.ErrConfirmationExpired),
		errors.Is(err, domain.ErrDuplicateUser),
		errors.Is(err, domain.ErrDuplicateConference):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}
