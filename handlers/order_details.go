package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"school-backend/docs"
	"school-backend/models"
)

const noOrderLines = "No order details found for this order"

// orderLines lists every product line of one order.
type orderLines struct {
	res *Resource[models.OrderDetail]
}

func (o *orderLines) List(w http.ResponseWriter, r *http.Request) {
	keys, err := parseKeys(mux.Vars(r), []string{"order_id"})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	lines, err := o.res.table.ListBy(r.Context(), "order_id", keys[0])
	if err != nil {
		o.res.fail(w, r, "list order", err)
		return
	}
	if len(lines) == 0 {
		writeError(w, http.StatusNotFound, noOrderLines)
		return
	}
	writeJSON(w, http.StatusOK, lines)
}

func (o *orderLines) Doc() docs.Operation {
	return docs.Operation{
		Method:   http.MethodGet,
		Path:     "/order-details/{order_id}",
		Summary:  "Lista todos os detalhes de um pedido específico",
		Params:   []string{"order_id"},
		Array:    true,
		NotFound: true,
	}
}
