package infra

import (
	"encoding/json"
	"log"
	"net/http"
)

type BaseHandler struct{}

func (_ BaseHandler) WriteErr(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	w.WriteHeader(http.StatusInternalServerError)
	_, we := w.Write([]byte(err.Error()))
	if we != nil {
		log.Println("[err] write error response: ", we)
	}
}

func (_ BaseHandler) WriteJSON(w http.ResponseWriter, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		w.Write([]byte(err.Error()))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(b)
	if err != nil {
		log.Println("[err] write json response: ", err)
	}
}

// BindBody decodes the request body as JSON, writing a 400 and returning
// false when it fails.
func (_ BaseHandler) BindBody(w http.ResponseWriter, req *http.Request, v interface{}) bool {
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("bad request body: " + err.Error()))
		return false
	}
	return true
}
