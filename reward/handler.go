package reward

import (
	"net/http"
	"time"

	"github.com/dabankio/civil"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"shotrewards/infra"
)

func NewHandler(engine *Engine, repo *Repo) *Handler {
	return &Handler{engine: engine, repo: repo}
}

type Handler struct {
	infra.BaseHandler
	engine *Engine
	repo   *Repo
}

// GetRewards serves the live figures, recomputed from current aggregates.
func (h *Handler) GetRewards(w http.ResponseWriter, req *http.Request) {
	wallet := req.URL.Query().Get("wallet")
	if wallet == "" {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("empty wallet param"))
		return
	}
	result, err := h.engine.TotalReward(req.Context(), wallet)
	if err != nil {
		h.WriteErr(w, err)
		return
	}
	h.WriteJSON(w, result)
}

type ReqSetPool struct {
	Day       string          `json:"day,omitempty"` // defaults to today
	TotalPool decimal.Decimal `json:"total_pool"`
	UploadPct int             `json:"upload_pct"`
	LikePct   int             `json:"like_pct"`
}

// SetPool creates or replaces a day's pool. Administrative.
func (h *Handler) SetPool(w http.ResponseWriter, req *http.Request) {
	var reqModel ReqSetPool
	if !h.BindBody(w, req, &reqModel) {
		return
	}
	day := civil.DateOf(time.Now())
	if reqModel.Day != "" {
		var err error
		day, err = civil.ParseDate(reqModel.Day)
		if err != nil {
			h.WriteErr(w, err)
			return
		}
	}
	if reqModel.UploadPct < 0 || reqModel.LikePct < 0 || reqModel.UploadPct+reqModel.LikePct > 100 {
		h.WriteErr(w, errors.Errorf("bad pool percentages %d + %d", reqModel.UploadPct, reqModel.LikePct))
		return
	}
	if reqModel.TotalPool.IsNegative() {
		h.WriteErr(w, errors.New("negative pool"))
		return
	}
	err := h.repo.UpsertPool(req.Context(), DailyPool{
		Day:       day,
		TotalPool: reqModel.TotalPool,
		UploadPct: reqModel.UploadPct,
		LikePct:   reqModel.LikePct,
	})
	if err != nil {
		h.WriteErr(w, err)
		return
	}
	h.WriteJSON(w, map[string]string{"day": day.String()})
}
