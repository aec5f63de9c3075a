package wallet

import (
	"context"
	"net/http"
	"time"

	"shotrewards/infra"
)

func NewHandler(client *Client) *Handler { return &Handler{client: client} }

type Handler struct {
	infra.BaseHandler
	client *Client
}

// operation deadlines; a stuck remote call becomes a reported failure
// instead of an open-ended wait
const (
	sendTimeout    = 2 * time.Minute
	receiveTimeout = 10 * time.Minute
	readTimeout    = 30 * time.Second
)

type ReqReceive struct {
	Address string `json:"address"`
	Secret  string `json:"secret"`
}

func (h *Handler) ReceiveAllPending(w http.ResponseWriter, req *http.Request) {
	var reqModel ReqReceive
	if !h.BindBody(w, req, &reqModel) {
		return
	}
	ctx, cancel := contextWithTimeout(req, receiveTimeout)
	defer cancel()
	result, err := h.client.ReceiveAllPending(ctx, reqModel.Address, reqModel.Secret)
	if err != nil {
		h.WriteErr(w, err)
		return
	}
	h.WriteJSON(w, result)
}

type ReqSend struct {
	From   string `json:"from"`
	Secret string `json:"secret"`
	To     string `json:"to"`
	Amount string `json:"amount"` // display units
}

func (h *Handler) Send(w http.ResponseWriter, req *http.Request) {
	var reqModel ReqSend
	if !h.BindBody(w, req, &reqModel) {
		return
	}
	ctx, cancel := contextWithTimeout(req, sendTimeout)
	defer cancel()
	hash, err := h.client.Send(ctx, reqModel.From, reqModel.Secret, reqModel.To, reqModel.Amount)
	if err != nil {
		h.WriteErr(w, err)
		return
	}
	h.WriteJSON(w, map[string]string{"hash": hash})
}

func (h *Handler) Balance(w http.ResponseWriter, req *http.Request) {
	address := req.URL.Query().Get("address")
	ctx, cancel := contextWithTimeout(req, readTimeout)
	defer cancel()
	info, err := h.client.Balance(ctx, address)
	if err != nil {
		h.WriteErr(w, err)
		return
	}
	h.WriteJSON(w, info)
}

func contextWithTimeout(req *http.Request, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(req.Context(), d)
}
