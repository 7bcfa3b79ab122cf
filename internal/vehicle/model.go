package vehicle

import (
	"net/http"
	"time"

	"github.com/Sapatchanon-Kh/CarTentManagement/internal/lifecycle"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/apperror"
)

var ErrNotFound = apperror.New(http.StatusNotFound, "vehicle not found")

// Vehicle is the catalog summary of one car plus its listing state.
// Catalog data is owned by the external catalog store; the engine only
// reads it. The listing state is owned here and mutated exclusively
// through lifecycle transitions.
type Vehicle struct {
	ID        string
	Name      string
	Brand     string
	Model     string
	SubModel  string
	Year      int
	Mileage   int
	Condition string
	State     lifecycle.State
	CreatedAt time.Time
	UpdatedAt time.Time
}
