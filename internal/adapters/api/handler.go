package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bidhall/auctionhouse/internal/domain/auctions"
	"github.com/bidhall/auctionhouse/internal/domain/bids"
	"github.com/bidhall/auctionhouse/internal/domain/users"
)

// Messages rendered to clients for the bid placement outcomes.
const (
	msgBidPlaced     = "Bid placed"
	msgAuctionClosed = "Auction is closed"
	msgBidFailed     = "Error placing bid"
	msgOK            = "ok"
)

// AuctionService is the slice of the auction lifecycle the adapter exposes
type AuctionService interface {
	Create(ctx context.Context, cmd auctions.CreateAuctionCommand) (*auctions.Auction, error)
	BrowseOpen(ctx context.Context, limit, offset int) ([]*auctions.Auction, error)
	BrowseClosed(ctx context.Context, limit, offset int) ([]*auctions.Auction, error)
	Buyout(ctx context.Context, auctionID int64, buyerName string) error
	Cancel(ctx context.Context, auctionID int64) error
}

// BidService is the slice of the bid engine the adapter exposes
type BidService interface {
	PlaceBid(ctx context.Context, cmd bids.PlaceBidCommand) (*bids.Bid, error)
	HighestBid(ctx context.Context, auctionID int64) (*bids.Bid, error)
	GetBid(ctx context.Context, bidID int64) (*bids.Bid, error)
}

// UserService is the user registry surface the adapter exposes
type UserService interface {
	Create(ctx context.Context, name string) error
	Get(ctx context.Context, name string) (*users.User, error)
}

// Handler renders domain outcomes as JSON responses. It performs request
// parsing and response mapping only; all rules live in the domain services.
type Handler struct {
	auctionService AuctionService
	bidService     BidService
	userService    UserService
	logger         *slog.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(auctionService AuctionService, bidService BidService, userService UserService, logger *slog.Logger) *Handler {
	return &Handler{
		auctionService: auctionService,
		bidService:     bidService,
		userService:    userService,
		logger:         logger,
	}
}

// Routes builds the router for the whole API surface
func (h *Handler) Routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(h.withRequestID)
	r.Use(h.logRequests)

	r.Route("/auction", func(r chi.Router) {
		r.Get("/open", h.browseOpen)
		r.Get("/closed", h.browseClosed)
		r.Post("/crt", h.createAuction)
		r.Patch("/upd", h.buyoutAuction)
		r.Delete("/dlt", h.cancelAuction)
		r.Get("/highest_bid/{auctionID}", h.highestBid)
	})

	r.Route("/bid", func(r chi.Router) {
		r.Post("/crt", h.placeBid)
		r.Get("/get/{bidID}", h.getBid)
	})

	r.Route("/auction_user", func(r chi.Router) {
		r.Post("/crt", h.createUser)
		r.Get("/get/{name}", h.getUser)
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}

type createAuctionRequest struct {
	ItemName    string  `json:"item_name"`
	OwnerName   string  `json:"owner_name"`
	BuyoutPrice float64 `json:"buyout_price"`
	Hours       int     `json:"hours"`
}

type buyoutRequest struct {
	AuctionID int64  `json:"auction_id"`
	BuyerName string `json:"buyer_name"`
}

type cancelRequest struct {
	AuctionID int64 `json:"auction_id"`
}

type placeBidRequest struct {
	AuctionID int64   `json:"auction_id"`
	OwnerName string  `json:"owner_name"`
	Amount    float64 `json:"amt"`
}

type userRequest struct {
	UserName string `json:"user_name"`
}

func (h *Handler) browseOpen(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	result, err := h.auctionService.BrowseOpen(r.Context(), limit, offset)
	if err != nil {
		h.domainError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, auctionList(result))
}

func (h *Handler) browseClosed(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	result, err := h.auctionService.BrowseClosed(r.Context(), limit, offset)
	if err != nil {
		h.domainError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, auctionList(result))
}

func (h *Handler) createAuction(w http.ResponseWriter, r *http.Request) {
	var req createAuctionRequest
	if !h.decode(w, r, &req) {
		return
	}

	_, err := h.auctionService.Create(r.Context(), auctions.CreateAuctionCommand{
		ItemName:    req.ItemName,
		OwnerName:   req.OwnerName,
		BuyoutPrice: req.BuyoutPrice,
		Hours:       req.Hours,
	})
	if err != nil {
		h.domainError(w, r, err)
		return
	}
	h.writeMessage(w, http.StatusOK, msgOK)
}

func (h *Handler) buyoutAuction(w http.ResponseWriter, r *http.Request) {
	var req buyoutRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.auctionService.Buyout(r.Context(), req.AuctionID, req.BuyerName); err != nil {
		h.domainError(w, r, err)
		return
	}
	h.writeMessage(w, http.StatusOK, msgOK)
}

func (h *Handler) cancelAuction(w http.ResponseWriter, r *http.Request) {
	var req cancelRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.auctionService.Cancel(r.Context(), req.AuctionID); err != nil {
		h.domainError(w, r, err)
		return
	}
	h.writeMessage(w, http.StatusOK, msgOK)
}

func (h *Handler) highestBid(w http.ResponseWriter, r *http.Request) {
	auctionID, ok := h.pathID(w, r, "auctionID")
	if !ok {
		return
	}

	bid, err := h.bidService.HighestBid(r.Context(), auctionID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}
	// bid is nil when the auction has no bids; clients receive null
	h.writeJSON(w, http.StatusOK, bid)
}

func (h *Handler) placeBid(w http.ResponseWriter, r *http.Request) {
	var req placeBidRequest
	if !h.decode(w, r, &req) {
		return
	}

	_, err := h.bidService.PlaceBid(r.Context(), bids.PlaceBidCommand{
		AuctionID:  req.AuctionID,
		BidderName: req.OwnerName,
		Amount:     req.Amount,
	})
	switch {
	case err == nil:
		h.writeMessage(w, http.StatusOK, msgBidPlaced)
	case errors.Is(err, bids.ErrAuctionClosed):
		h.writeMessage(w, http.StatusBadRequest, msgAuctionClosed)
	case errors.Is(err, bids.ErrInvalidBidAmount):
		h.writeMessage(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("placing bid failed", "error", err)
		h.writeMessage(w, http.StatusBadRequest, msgBidFailed)
	}
}

func (h *Handler) getBid(w http.ResponseWriter, r *http.Request) {
	bidID, ok := h.pathID(w, r, "bidID")
	if !ok {
		return
	}

	bid, err := h.bidService.GetBid(r.Context(), bidID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, bid)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.userService.Create(r.Context(), req.UserName); err != nil {
		h.domainError(w, r, err)
		return
	}
	h.writeMessage(w, http.StatusOK, msgOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.domainError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, user)
}

// domainError maps domain outcomes onto transport statuses. Typed conflicts
// and validation failures carry their own message; anything unexpected is
// logged and rendered generically.
func (h *Handler) domainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auctions.ErrAuctionNotOpen):
		h.writeMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, users.ErrUserNotFound),
		errors.Is(err, auctions.ErrAuctionNotFound),
		errors.Is(err, bids.ErrBidNotFound):
		h.writeMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, users.ErrUserExists),
		errors.Is(err, users.ErrInvalidName),
		errors.Is(err, auctions.ErrInvalidBuyoutPrice),
		errors.Is(err, auctions.ErrInvalidDuration),
		errors.Is(err, auctions.ErrUnknownOwner),
		errors.Is(err, auctions.ErrUnknownBuyer),
		errors.Is(err, bids.ErrInvalidBidAmount):
		h.writeMessage(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		h.writeMessage(w, http.StatusBadRequest, "unexpected error, check logs")
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		h.writeMessage(w, http.StatusBadRequest, "invalid "+param)
		return 0, false
	}
	return id, true
}

func (h *Handler) writeMessage(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"message": msg})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("writing response failed", "error", err)
	}
}

// pagination reads limit/offset query parameters. Limit defaults to 20 and
// is intentionally unbounded above; callers are expected to constrain it.
func pagination(r *http.Request) (limit, offset int) {
	limit = 20
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

// auctionList keeps empty results rendering as [] instead of null
func auctionList(list []*auctions.Auction) []*auctions.Auction {
	if list == nil {
		return []*auctions.Auction{}
	}
	return list
}
