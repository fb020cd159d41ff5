package contracts

import "github.com/julienschmidt/httprouter"

// Handler is what app.Application needs from a domain or health handler.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
