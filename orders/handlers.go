package orders

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"broilers/models"
	"broilers/utils"

	"github.com/julienschmidt/httprouter"
)

const (
	requestTimeout = 10 * time.Second
	maxOrderBody   = 16 << 10
)

// ContactBook supplies the business's own WhatsApp number, which lives in
// the editable site content.
type ContactBook interface {
	WhatsAppNumber(ctx context.Context) string
}

type Handler struct {
	svc      *Service
	sweeper  *Sweeper
	contacts ContactBook
	business string
}

func NewHandler(svc *Service, sweeper *Sweeper, contacts ContactBook, business string) *Handler {
	return &Handler{svc: svc, sweeper: sweeper, contacts: contacts, business: business}
}

// OrderRequest is the public form body. hensCount may arrive as a JSON
// number or a string.
type OrderRequest struct {
	CustomerName        string          `json:"customerName"`
	HensCount           json.RawMessage `json:"hensCount"`
	WhatsApp            string          `json:"whatsapp"`
	DeliveryTime        string          `json:"deliveryTime"`
	Address             string          `json:"address"`
	SpecialInstructions string          `json:"specialInstructions"`
}

func (req OrderRequest) Form() models.OrderForm {
	return models.OrderForm{
		CustomerName:        req.CustomerName,
		HensCount:           rawToString(req.HensCount),
		WhatsApp:            req.WhatsApp,
		DeliveryTime:        req.DeliveryTime,
		Address:             req.Address,
		SpecialInstructions: req.SpecialInstructions,
	}
}

func rawToString(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}
	// 5.0 and 5e0 are whole numbers too.
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if _, err := n.Int64(); err == nil {
			return n.String()
		}
		if f, err := n.Float64(); err == nil && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return strconv.FormatInt(int64(f), 10)
		}
	}
	return s
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req OrderRequest
	if err := utils.DecodeJSON(w, r, maxOrderBody, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	order, err := h.svc.Submit(ctx, req.Form())
	if err != nil {
		var fe FieldErrors
		if errors.As(err, &fe) {
			utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"error": "validation failed", "fields": fe})
			return
		}
		log.Printf("create order: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to place order")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, order)
}

// ListOrders expires stale Pending orders and then returns every order,
// newest first.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if h.sweeper != nil {
		if _, err := h.sweeper.Sweep(ctx); err != nil {
			log.Printf("list orders: sweep: %v", err)
		}
	}

	list, err := h.svc.List(ctx)
	if err != nil {
		log.Printf("list orders: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load orders")
		return
	}

	if status := r.URL.Query().Get("status"); status != "" {
		filtered := make([]models.Order, 0, len(list))
		for _, o := range list {
			if string(o.Status) == status {
				filtered = append(filtered, o)
			}
		}
		list = filtered
	}

	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GetOrder serves the customer's confirmation page, so it returns the
// public view only.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	order, ok := h.load(w, r, ps.ByName("id"))
	if !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, order.Public())
}

type statusRequest struct {
	Status models.OrderStatus `json:"status"`
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var req statusRequest
	if err := utils.DecodeJSON(w, r, maxOrderBody, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	order, err := h.svc.UpdateStatus(ctx, ps.ByName("id"), req.Status)
	switch {
	case errors.Is(err, ErrInvalidStatus):
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid status")
		return
	case errors.Is(err, ErrInvalidTransition):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
		return
	case err != nil:
		log.Printf("update order %s: %v", ps.ByName("id"), err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update order")
		return
	case order == nil:
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, order)
}

func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.svc.Delete(ctx, id); err != nil {
		log.Printf("delete order %s: %v", id, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete order")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"message": "Order deleted", "id": id})
}

// NotifyCustomer returns the wa.me link for telling the customer about the
// order's current status.
func (h *Handler) NotifyCustomer(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	order, ok := h.load(w, r, ps.ByName("id"))
	if !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"url": h.svc.Messenger().CustomerLink(*order, false)})
}

func (h *Handler) OrderQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	order, ok := h.load(w, r, ps.ByName("id"))
	if !ok {
		return
	}

	size, _ := strconv.Atoi(r.URL.Query().Get("size"))
	if size <= 0 || size > 1024 {
		size = 256
	}

	png, err := QRCode(h.enquiryLink(r.Context(), *order), size)
	if err != nil {
		log.Printf("order qr %s: %v", order.ID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) OrderReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	order, ok := h.load(w, r, ps.ByName("id"))
	if !ok {
		return
	}

	pdf, err := Receipt(h.business, *order, h.enquiryLink(r.Context(), *order))
	if err != nil {
		log.Printf("order receipt %s: %v", order.ID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate receipt")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=receipt-"+order.ID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// Health reports whether the order store is reachable.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.svc.Ping(ctx); err != nil {
		log.Printf("health: %v", err)
		utils.RespondWithJSON(w, http.StatusServiceUnavailable, utils.M{"status": "unavailable"})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "ok"})
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request, id string) (*models.Order, bool) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	order, err := h.svc.Get(ctx, id)
	if err != nil {
		log.Printf("load order %s: %v", id, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load order")
		return nil, false
	}
	if order == nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return nil, false
	}
	return order, true
}

func (h *Handler) enquiryLink(ctx context.Context, o models.Order) string {
	number := ""
	if h.contacts != nil {
		number = utils.OnlyDigits(h.contacts.WhatsAppNumber(ctx))
	}
	return h.svc.Messenger().EnquiryLink(number, o)
}
