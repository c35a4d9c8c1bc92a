package bank

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// SimulatorHandler stands in for the external bank. It accepts any payment
// and answers with a fresh transaction identifier as a plain-text body.
func SimulatorHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintf(w, "HSBC-%s", uuid.NewString())
}
