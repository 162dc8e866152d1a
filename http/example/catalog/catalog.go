/*
Package catalog is a toy item catalog served over versioned routes.

Its route table, [Routes], names handlers [Handler.Map] provides.
A request for "/1.0/items/3" reaches one handler for an item,
while "/1.1/items/3" reaches another also pricing it.
*/
package catalog

import (
	"embed"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/req"
	. "github.com/xy-planning-network/switchback/http/resp"
)

// RouteTable names the route table in Routes.
const RouteTable = "routes.yaml"

// Routes holds the catalog's route table.
//
//go:embed routes.yaml
var Routes embed.FS

const (
	defaultLimit = 10
	itemName     = "bag"
	itemPrice    = 10.9
	userName     = "Kenny"
)

// An Item is the catalog's unpriced item.
type Item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// A PricedItem is an Item carrying its price.
type PricedItem struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// A User owns items in the catalog.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// A Page selects a window of a listing.
type Page struct {
	Page  int `schema:"page" validate:"min=1"`
	Limit int `schema:"limit" validate:"min=1,max=100"`
}

// Handler shares the initialized Responder across all catalog responses.
type Handler struct {
	*Responder
	parser *req.Parser
}

// NewHandler constructs a *Handler responding through responder.
func NewHandler(responder *Responder) *Handler {
	return &Handler{Responder: responder, parser: req.NewParser()}
}

// Map lists the handlers by the names Routes refers to them.
func (h *Handler) Map() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"items.get":        h.getItem,
		"items.get.priced": h.getPricedItem,
		"items.list":       h.listItems,
		"users.get":        h.getUser,
	}
}

func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	if err := h.Json(w, r, Data(Item{ID: id, Name: itemName})); err != nil {
		h.Err(w, r, err)
	}
}

func (h *Handler) getPricedItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	if err := h.Json(w, r, Data(PricedItem{ID: id, Name: itemName, Price: itemPrice})); err != nil {
		h.Err(w, r, err)
	}
}

// listItems pages through a catalog of 100 items.
func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	p := Page{Page: 1, Limit: defaultLimit}
	if err := h.parser.ParseQueryParams(r.URL.Query(), &p); err != nil {
		h.Err(w, r, err)
		return
	}

	const total = 100
	items := make([]PricedItem, 0, p.Limit)
	for id := int64((p.Page-1)*p.Limit + 1); id <= total && len(items) < p.Limit; id++ {
		items = append(items, PricedItem{ID: id, Name: itemName, Price: itemPrice})
	}

	if err := h.Json(w, r, Data(items)); err != nil {
		h.Err(w, r, err)
	}
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.Err(w, r, err)
		return
	}

	if err := h.Json(w, r, Data(User{ID: id, Name: userName})); err != nil {
		h.Err(w, r, err)
	}
}

func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id %q", switchback.ErrNotValid, raw)
	}

	return id, nil
}
